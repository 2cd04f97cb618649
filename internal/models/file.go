package models

// FileRole tags an uploaded file with its place in a submission.
type FileRole string

const (
	FileRoleReport       FileRole = "report"
	FileRolePresentation FileRole = "presentation"
	FileRoleCode         FileRole = "code"
	FileRoleDocument     FileRole = "document"
	FileRoleOther        FileRole = "other"
)

func IsValidFileRole(role string) bool {
	switch FileRole(role) {
	case FileRoleReport, FileRolePresentation, FileRoleCode, FileRoleDocument, FileRoleOther:
		return true
	default:
		return false
	}
}

// FileRef is an opaque reference to a stored binary. The file service owns
// the bytes; this service only carries the metadata around.
type FileRef struct {
	Filename     string   `json:"filename"`
	OriginalName string   `json:"original_name"`
	Mimetype     string   `json:"mimetype"`
	Size         int64    `json:"size"`
	Path         string   `json:"path"`
	Role         FileRole `json:"role"`
}

// CountByRole returns how many files in the set carry the given role.
func CountByRole(files []FileRef, role FileRole) int {
	n := 0
	for _, f := range files {
		if f.Role == role {
			n++
		}
	}
	return n
}

// SlotByRole returns the first file with the given role, if any. Used when
// re-slotting a submission's files into an artifact's typed slots.
func SlotByRole(files []FileRef, role FileRole) *FileRef {
	for i := range files {
		if files[i].Role == role {
			f := files[i]
			return &f
		}
	}
	return nil
}
