package models

// TransitionKind names the lifecycle transitions that can produce
// notifications.
type TransitionKind string

const (
	TransitionCreated  TransitionKind = "created"
	TransitionReviewed TransitionKind = "reviewed"
	TransitionPromoted TransitionKind = "promoted"
)

// SubmissionTransition is the record handed to notification derivation after
// a lifecycle operation succeeds.
type SubmissionTransition struct {
	Kind       TransitionKind
	Submission *Submission
	Assignment *Assignment
	Actor      Identity
}

// NotificationEvent is what this service emits; persisting and delivering it
// is the notification collaborator's job.
type NotificationEvent struct {
	RecipientID string `json:"recipient_id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	RelatedType string `json:"related_type"`
	RelatedID   string `json:"related_id"`
	Link        string `json:"link"`
	Timestamp   int64  `json:"timestamp"`
}
