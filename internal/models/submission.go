package models

import (
	"regexp"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusReviewed  SubmissionStatus = "reviewed"
	SubmissionStatusAccepted  SubmissionStatus = "accepted"
	SubmissionStatusRejected  SubmissionStatus = "rejected"
	SubmissionStatusResubmit  SubmissionStatus = "resubmit"
)

func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValidDecision reports whether status is an acceptable review outcome.
// Review decisions are a closed set regardless of caller privilege.
func IsValidDecision(status string) bool {
	switch SubmissionStatus(status) {
	case SubmissionStatusReviewed, SubmissionStatusAccepted, SubmissionStatusRejected, SubmissionStatusResubmit:
		return true
	default:
		return false
	}
}

// VersionSnapshot captures the state of a submission immediately before a
// resubmission overwrites it. Snapshots are append-only.
type VersionSnapshot struct {
	Version     int       `json:"version"`
	Files       []FileRef `json:"files"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submission is one student's attempt at one assignment. The
// (assignment_id, student_id) pair is unique for live records.
type Submission struct {
	ID                   string            `json:"id" db:"id"`
	AssignmentID         string            `json:"assignment_id" db:"assignment_id"`
	StudentID            string            `json:"student_id" db:"student_id"`
	Description          string            `json:"description" db:"description"`
	Files                []FileRef         `json:"files" db:"files"`
	GithubLink           *string           `json:"github_link,omitempty" db:"github_link"`
	Status               SubmissionStatus  `json:"status" db:"status"`
	Version              int               `json:"version" db:"version"`
	PreviousVersions     []VersionSnapshot `json:"previous_versions" db:"previous_versions"`
	IsLate               bool              `json:"is_late" db:"is_late"`
	SubmittedAt          time.Time         `json:"submitted_at" db:"submitted_at"`
	Marks                *int              `json:"marks,omitempty" db:"marks"`
	Feedback             *string           `json:"feedback,omitempty" db:"feedback"`
	FeedbackFiles        []FileRef         `json:"feedback_files,omitempty" db:"feedback_files"`
	ReviewedBy           *string           `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt           *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	UploadedToRepository bool              `json:"uploaded_to_repository" db:"uploaded_to_repository"`
	RepositoryProjectID  *string           `json:"repository_project_id,omitempty" db:"repository_project_id"`
	CreatedAt            time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at" db:"updated_at"`
}

// CanReview reports whether a review decision may be applied. Already-reviewed
// submissions are terminal until the student goes through the resubmit gate.
func (s *Submission) CanReview() bool {
	return s.Status == SubmissionStatusSubmitted
}

// CanResubmit reports whether the owning student may submit a new version.
func (s *Submission) CanResubmit() bool {
	return s.Status == SubmissionStatusResubmit
}

// CanDelete reports whether the record may still be removed. Once a review
// decision exists the submission is audit history for every role.
func (s *Submission) CanDelete() bool {
	if s.ReviewedAt != nil {
		return false
	}
	return s.Status == SubmissionStatusPending || s.Status == SubmissionStatusSubmitted
}

// Snapshot returns the current version's archival record.
func (s *Submission) Snapshot() VersionSnapshot {
	return VersionSnapshot{
		Version:     s.Version,
		Files:       s.Files,
		SubmittedAt: s.SubmittedAt,
	}
}

var githubRepoPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+/?$`)

// IsGithubRepoURL checks that link has the shape of a GitHub repository URL.
// The repository itself is never fetched.
func IsGithubRepoURL(link string) bool {
	return githubRepoPattern.MatchString(link)
}
