package models

// Data Transfer Objects

type CreateSubmissionRequest struct {
	AssignmentID string    `json:"assignment_id" validate:"required,uuid"`
	Description  string    `json:"description" validate:"max=2000"`
	Files        []FileRef `json:"files" validate:"dive"`
	GithubLink   *string   `json:"github_link,omitempty"`
}

// ResubmitRequest carries a new attempt. A nil Files slice keeps the current
// set; a non-nil slice replaces it wholesale.
type ResubmitRequest struct {
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Files       []FileRef `json:"files,omitempty" validate:"dive"`
	GithubLink  *string   `json:"github_link,omitempty"`
}

type PromoteRequest struct {
	Category    string   `json:"category" validate:"required,min=2,max=100"`
	ProjectType string   `json:"project_type" validate:"required,min=2,max=100"`
	Tags        []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
}

type ReviewRequest struct {
	Decision            string          `json:"decision" validate:"required,oneof=reviewed accepted rejected resubmit"`
	Marks               *int            `json:"marks,omitempty" validate:"omitempty,min=0"`
	Feedback            *string         `json:"feedback,omitempty" validate:"omitempty,max=5000"`
	FeedbackFiles       []FileRef       `json:"feedback_files,omitempty" validate:"dive"`
	PromoteToRepository bool            `json:"promote_to_repository"`
	Promotion           *PromoteRequest `json:"promotion,omitempty"`
}

type ReviewResponse struct {
	Submission *Submission        `json:"submission"`
	Project    *RepositoryProject `json:"project,omitempty"`
}

type SubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
}

type ProjectsResponse struct {
	Projects []RepositoryProject `json:"projects"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	Limit    int                 `json:"limit"`
}
