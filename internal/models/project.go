package models

import (
	"time"
)

// RepositoryProject is the public artifact created when an accepted project
// submission is promoted. It holds a denormalized copy of the submission's
// content; engagement counters evolve independently after creation.
type RepositoryProject struct {
	ID           string    `json:"id" db:"id"`
	SubmissionID string    `json:"submission_id" db:"submission_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Category     string    `json:"category" db:"category"`
	ProjectType  string    `json:"project_type" db:"project_type"`
	Tags         []string  `json:"tags" db:"tags"`
	StudentID    string    `json:"student_id" db:"student_id"`
	FacultyID    string    `json:"faculty_id" db:"faculty_id"`
	ClassroomID  string    `json:"classroom_id" db:"classroom_id"`
	AcademicYear string    `json:"academic_year" db:"academic_year"`
	Semester     string    `json:"semester" db:"semester"`
	Report       *FileRef  `json:"report,omitempty" db:"report"`
	Presentation *FileRef  `json:"presentation,omitempty" db:"presentation"`
	Code         *FileRef  `json:"code,omitempty" db:"code"`
	GithubLink   *string   `json:"github_link,omitempty" db:"github_link"`
	Views        int       `json:"views" db:"views"`
	Downloads    int       `json:"downloads" db:"downloads"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
