package service

import (
	"fmt"
	"time"

	"github.com/campushub/submission-service/internal/models"
)

const (
	NotificationSubmissionCreated  = "submission.created"
	NotificationSubmissionReviewed = "submission.reviewed"
)

// DeriveNotifications maps a lifecycle transition to the events the delivery
// collaborator should send. Pure function; no event is ever addressed to the
// acting user. Promotion stays silent beyond the review notification.
func DeriveNotifications(t models.SubmissionTransition) []models.NotificationEvent {
	var events []models.NotificationEvent

	switch t.Kind {
	case models.TransitionCreated:
		events = append(events, models.NotificationEvent{
			RecipientID: t.Assignment.FacultyID,
			Kind:        NotificationSubmissionCreated,
			Title:       "New submission",
			Message:     fmt.Sprintf("A new submission (version %d) was received for %q", t.Submission.Version, t.Assignment.Title),
			RelatedType: "submission",
			RelatedID:   t.Submission.ID,
			Link:        "/submissions/" + t.Submission.ID,
			Timestamp:   time.Now().Unix(),
		})
	case models.TransitionReviewed:
		events = append(events, models.NotificationEvent{
			RecipientID: t.Submission.StudentID,
			Kind:        NotificationSubmissionReviewed,
			Title:       "Submission reviewed",
			Message:     fmt.Sprintf("Your submission for %q was marked %s", t.Assignment.Title, t.Submission.Status),
			RelatedType: "submission",
			RelatedID:   t.Submission.ID,
			Link:        "/submissions/" + t.Submission.ID,
			Timestamp:   time.Now().Unix(),
		})
	case models.TransitionPromoted:
	}

	filtered := events[:0]
	for _, e := range events {
		if e.RecipientID == t.Actor.UserID {
			continue
		}
		filtered = append(filtered, e)
	}

	return filtered
}
