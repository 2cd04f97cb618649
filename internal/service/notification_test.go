package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/submission-service/internal/models"
)

func TestDeriveNotifications(t *testing.T) {
	assignment := testAssignment()
	submission := &models.Submission{
		ID:           "33333333-3333-3333-3333-333333333333",
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		Status:       models.SubmissionStatusSubmitted,
		Version:      1,
	}

	t.Run("created notifies the faculty", func(t *testing.T) {
		events := DeriveNotifications(models.SubmissionTransition{
			Kind:       models.TransitionCreated,
			Submission: submission,
			Assignment: assignment,
			Actor:      models.Identity{UserID: studentID, Role: models.RoleStudent},
		})

		require.Len(t, events, 1)
		assert.Equal(t, facultyID, events[0].RecipientID)
		assert.Equal(t, NotificationSubmissionCreated, events[0].Kind)
		assert.Equal(t, submission.ID, events[0].RelatedID)
		assert.Equal(t, "/submissions/"+submission.ID, events[0].Link)
	})

	t.Run("reviewed notifies the student", func(t *testing.T) {
		reviewed := *submission
		reviewed.Status = models.SubmissionStatusAccepted

		events := DeriveNotifications(models.SubmissionTransition{
			Kind:       models.TransitionReviewed,
			Submission: &reviewed,
			Assignment: assignment,
			Actor:      models.Identity{UserID: facultyID, Role: models.RoleFaculty},
		})

		require.Len(t, events, 1)
		assert.Equal(t, studentID, events[0].RecipientID)
		assert.Equal(t, NotificationSubmissionReviewed, events[0].Kind)
		assert.Contains(t, events[0].Message, "accepted")
	})

	t.Run("promoted stays silent", func(t *testing.T) {
		events := DeriveNotifications(models.SubmissionTransition{
			Kind:       models.TransitionPromoted,
			Submission: submission,
			Assignment: assignment,
			Actor:      models.Identity{UserID: facultyID, Role: models.RoleFaculty},
		})

		assert.Empty(t, events)
	})

	t.Run("never notifies the actor", func(t *testing.T) {
		// Faculty submitting on behalf of a student would otherwise
		// notify themselves.
		events := DeriveNotifications(models.SubmissionTransition{
			Kind:       models.TransitionCreated,
			Submission: submission,
			Assignment: assignment,
			Actor:      models.Identity{UserID: facultyID, Role: models.RoleFaculty},
		})
		assert.Empty(t, events)

		events = DeriveNotifications(models.SubmissionTransition{
			Kind:       models.TransitionReviewed,
			Submission: submission,
			Assignment: assignment,
			Actor:      models.Identity{UserID: studentID, Role: models.RoleStudent},
		})
		assert.Empty(t, events)
	})
}
