package models

import (
	"time"
)

// AssignmentType distinguishes plain coursework from project work that can be
// promoted into the public repository.
type AssignmentType string

const (
	AssignmentTypeHomework AssignmentType = "homework"
	AssignmentTypeProject  AssignmentType = "project"
)

// Assignment is a read model owned by the classroom collaborator. This
// service never mutates it except for the atomic submission counter.
type Assignment struct {
	ID                  string         `json:"id" db:"id"`
	ClassroomID         string         `json:"classroom_id" db:"classroom_id"`
	FacultyID           string         `json:"faculty_id" db:"faculty_id"`
	Title               string         `json:"title" db:"title"`
	Description         string         `json:"description" db:"description"`
	Type                AssignmentType `json:"type" db:"type"`
	DueDate             time.Time      `json:"due_date" db:"due_date"`
	AllowLateSubmission bool           `json:"allow_late_submission" db:"allow_late_submission"`
	MaxMarks            int            `json:"max_marks" db:"max_marks"`
	IsStructured        bool           `json:"is_structured" db:"is_structured"`
	SubmissionCount     int            `json:"submission_count" db:"submission_count"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// Classroom is a read model owned by the classroom collaborator.
type Classroom struct {
	ID           string `json:"id" db:"id"`
	FacultyID    string `json:"faculty_id" db:"faculty_id"`
	AcademicYear string `json:"academic_year" db:"academic_year"`
	Semester     string `json:"semester" db:"semester"`
}
