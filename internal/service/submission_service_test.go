package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campushub/submission-service/internal/apperrors"
	"github.com/campushub/submission-service/internal/models"
)

var (
	testDueDate = time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)

	facultyID = "f0000000-0000-0000-0000-000000000001"
	studentID = "a0000000-0000-0000-0000-000000000001"
	otherID   = "b0000000-0000-0000-0000-000000000002"
)

func testAssignment() *models.Assignment {
	return &models.Assignment{
		ID:          "11111111-1111-1111-1111-111111111111",
		ClassroomID: "22222222-2222-2222-2222-222222222222",
		FacultyID:   facultyID,
		Title:       "Distributed Systems Project",
		Description: "Build a replicated key-value store",
		Type:        models.AssignmentTypeProject,
		DueDate:     testDueDate,
		MaxMarks:    100,
	}
}

func structuredFiles() []models.FileRef {
	return []models.FileRef{
		{Filename: "report.pdf", Role: models.FileRoleReport},
		{Filename: "slides.pptx", Role: models.FileRolePresentation},
		{Filename: "code.zip", Role: models.FileRoleCode},
	}
}

func newTestSubmissionService(subRepo *MockSubmissionRepository, asgRepo *MockAssignmentRepository, pub *MockNotificationPublisher, now time.Time) *submissionService {
	svc := &submissionService{
		submissionRepo: subRepo,
		assignmentRepo: asgRepo,
		logger:         zerolog.Nop(),
		now:            func() time.Time { return now },
	}
	if pub != nil {
		svc.publisher = pub
	}
	return svc
}

func TestCreateSubmission(t *testing.T) {
	ctx := context.Background()
	student := models.Identity{UserID: studentID, Role: models.RoleStudent}

	t.Run("creates submission before deadline", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		pub := new(MockNotificationPublisher)
		assignment := testAssignment()

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("GetByAssignmentAndStudent", ctx, assignment.ID, studentID).Return(nil, nil)
		subRepo.On("Create", ctx, mock.AnythingOfType("*models.Submission")).Return(nil)
		pub.On("PublishNotification", mock.Anything, mock.MatchedBy(func(e *models.NotificationEvent) bool {
			return e.RecipientID == facultyID && e.Kind == NotificationSubmissionCreated
		})).Return(nil)

		svc := newTestSubmissionService(subRepo, asgRepo, pub, testDueDate.Add(-time.Hour))

		submission, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{
			AssignmentID: assignment.ID,
			Description:  "my project",
			Files:        structuredFiles(),
		})

		require.NoError(t, err)
		assert.Equal(t, models.SubmissionStatusSubmitted, submission.Status)
		assert.Equal(t, 1, submission.Version)
		assert.Empty(t, submission.PreviousVersions)
		assert.False(t, submission.IsLate)
		assert.Equal(t, studentID, submission.StudentID)
		subRepo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("marks late submission when allowed", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()
		assignment.AllowLateSubmission = true

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("GetByAssignmentAndStudent", ctx, assignment.ID, studentID).Return(nil, nil)
		subRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(time.Hour))

		submission, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{
			AssignmentID: assignment.ID,
			Files:        structuredFiles(),
		})

		require.NoError(t, err)
		assert.True(t, submission.IsLate)
	})

	t.Run("rejects late submission when disallowed", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(time.Minute))

		_, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{AssignmentID: assignment.ID})

		assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
		subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown assignment", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)

		asgRepo.On("GetByID", ctx, "missing").Return(nil, nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(-time.Hour))

		_, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{AssignmentID: "missing"})

		assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	})

	t.Run("rejects duplicate submission", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("GetByAssignmentAndStudent", ctx, assignment.ID, studentID).
			Return(&models.Submission{ID: "existing"}, nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(-time.Hour))

		_, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{
			AssignmentID: assignment.ID,
			Files:        structuredFiles(),
		})

		assert.ErrorIs(t, err, apperrors.ErrDuplicateSubmission)
	})

	t.Run("surfaces duplicate from storage constraint on race", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("GetByAssignmentAndStudent", ctx, assignment.ID, studentID).Return(nil, nil)
		subRepo.On("Create", ctx, mock.Anything).Return(apperrors.ErrDuplicateSubmission)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(-time.Hour))

		_, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{
			AssignmentID: assignment.ID,
			Files:        structuredFiles(),
		})

		assert.ErrorIs(t, err, apperrors.ErrDuplicateSubmission)
	})

	t.Run("requires exactly one of each slot for structured assignments", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()
		assignment.IsStructured = true

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(-time.Hour))

		_, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{
			AssignmentID: assignment.ID,
			Files: []models.FileRef{
				{Filename: "report.pdf", Role: models.FileRoleReport},
				{Filename: "notes.txt", Role: models.FileRoleDocument},
			},
		})

		kind, ok := apperrors.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindValidation, kind)
	})

	t.Run("rejects malformed github link", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()

		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(-time.Hour))

		link := "https://example.com/not-github"
		_, err := svc.Create(ctx, student, &models.CreateSubmissionRequest{
			AssignmentID: assignment.ID,
			GithubLink:   &link,
		})

		kind, ok := apperrors.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindValidation, kind)
	})
}

func resubmittableSubmission(assignment *models.Assignment) *models.Submission {
	return &models.Submission{
		ID:               "33333333-3333-3333-3333-333333333333",
		AssignmentID:     assignment.ID,
		StudentID:        studentID,
		Files:            []models.FileRef{{Filename: "v1.pdf", Role: models.FileRoleReport}},
		Status:           models.SubmissionStatusResubmit,
		Version:          1,
		PreviousVersions: []models.VersionSnapshot{},
		IsLate:           false,
		SubmittedAt:      testDueDate.Add(-48 * time.Hour),
	}
}

func TestResubmit(t *testing.T) {
	ctx := context.Background()
	student := models.Identity{UserID: studentID, Role: models.RoleStudent}

	t.Run("archives previous version and bumps", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		pub := new(MockNotificationPublisher)
		assignment := testAssignment()
		submission := resubmittableSubmission(assignment)
		oldFiles := submission.Files
		oldSubmittedAt := submission.SubmittedAt

		subRepo.On("GetByID", ctx, submission.ID).Return(submission, nil)
		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("UpdateResubmitted", ctx, mock.Anything).Return(nil)
		pub.On("PublishNotification", mock.Anything, mock.Anything).Return(nil)

		now := testDueDate.Add(-time.Hour)
		svc := newTestSubmissionService(subRepo, asgRepo, pub, now)

		newFiles := []models.FileRef{{Filename: "v2.pdf", Role: models.FileRoleReport}}
		updated, err := svc.Resubmit(ctx, student, submission.ID, &models.ResubmitRequest{Files: newFiles})

		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)
		assert.Equal(t, models.SubmissionStatusSubmitted, updated.Status)
		assert.Equal(t, newFiles, updated.Files)
		assert.Equal(t, now, updated.SubmittedAt)
		require.Len(t, updated.PreviousVersions, 1)
		assert.Equal(t, 1, updated.PreviousVersions[0].Version)
		assert.Equal(t, oldFiles, updated.PreviousVersions[0].Files)
		assert.Equal(t, oldSubmittedAt, updated.PreviousVersions[0].SubmittedAt)
	})

	t.Run("keeps files when none supplied", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()
		submission := resubmittableSubmission(assignment)
		oldFiles := submission.Files

		subRepo.On("GetByID", ctx, submission.ID).Return(submission, nil)
		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("UpdateResubmitted", ctx, mock.Anything).Return(nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(-time.Hour))

		updated, err := svc.Resubmit(ctx, student, submission.ID, &models.ResubmitRequest{})

		require.NoError(t, err)
		assert.Equal(t, oldFiles, updated.Files)
	})

	t.Run("lateness is never recomputed", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()
		assignment.AllowLateSubmission = true
		submission := resubmittableSubmission(assignment)
		submission.IsLate = false

		subRepo.On("GetByID", ctx, submission.ID).Return(submission, nil)
		asgRepo.On("GetByID", ctx, assignment.ID).Return(assignment, nil)
		subRepo.On("UpdateResubmitted", ctx, mock.Anything).Return(nil)

		// Resubmission lands well past the deadline.
		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate.Add(72*time.Hour))

		updated, err := svc.Resubmit(ctx, student, submission.ID, &models.ResubmitRequest{})

		require.NoError(t, err)
		assert.False(t, updated.IsLate)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		asgRepo := new(MockAssignmentRepository)
		assignment := testAssignment()
		submission := resubmittableSubmission(assignment)

		subRepo.On("GetByID", ctx, submission.ID).Return(submission, nil)

		svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate)

		other := models.Identity{UserID: otherID, Role: models.RoleStudent}
		_, err := svc.Resubmit(ctx, other, submission.ID, &models.ResubmitRequest{})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("rejects when status is not resubmit", func(t *testing.T) {
		for _, status := range []models.SubmissionStatus{
			models.SubmissionStatusSubmitted,
			models.SubmissionStatusReviewed,
			models.SubmissionStatusAccepted,
			models.SubmissionStatusRejected,
		} {
			subRepo := new(MockSubmissionRepository)
			asgRepo := new(MockAssignmentRepository)
			assignment := testAssignment()
			submission := resubmittableSubmission(assignment)
			submission.Status = status

			subRepo.On("GetByID", ctx, submission.ID).Return(submission, nil)

			svc := newTestSubmissionService(subRepo, asgRepo, nil, testDueDate)

			_, err := svc.Resubmit(ctx, student, submission.ID, &models.ResubmitRequest{})

			assert.ErrorIs(t, err, apperrors.ErrInvalidState, "status %s", status)
		}
	})
}

func TestDeleteSubmission(t *testing.T) {
	ctx := context.Background()
	student := models.Identity{UserID: studentID, Role: models.RoleStudent}
	admin := models.Identity{UserID: otherID, Role: models.RoleAdmin}

	t.Run("owner deletes pre-review submission", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		submission := &models.Submission{ID: "s1", StudentID: studentID, Status: models.SubmissionStatusSubmitted}

		subRepo.On("GetByID", ctx, "s1").Return(submission, nil)
		subRepo.On("Delete", ctx, "s1").Return(nil)

		svc := newTestSubmissionService(subRepo, new(MockAssignmentRepository), nil, testDueDate)

		assert.NoError(t, svc.Delete(ctx, student, "s1"))
		subRepo.AssertExpectations(t)
	})

	t.Run("admin deletes another student's pre-review submission", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		submission := &models.Submission{ID: "s1", StudentID: studentID, Status: models.SubmissionStatusSubmitted}

		subRepo.On("GetByID", ctx, "s1").Return(submission, nil)
		subRepo.On("Delete", ctx, "s1").Return(nil)

		svc := newTestSubmissionService(subRepo, new(MockAssignmentRepository), nil, testDueDate)

		assert.NoError(t, svc.Delete(ctx, admin, "s1"))
	})

	t.Run("rejects non-owner non-admin", func(t *testing.T) {
		subRepo := new(MockSubmissionRepository)
		submission := &models.Submission{ID: "s1", StudentID: studentID, Status: models.SubmissionStatusSubmitted}

		subRepo.On("GetByID", ctx, "s1").Return(submission, nil)

		svc := newTestSubmissionService(subRepo, new(MockAssignmentRepository), nil, testDueDate)

		other := models.Identity{UserID: otherID, Role: models.RoleStudent}
		assert.ErrorIs(t, svc.Delete(ctx, other, "s1"), apperrors.ErrForbidden)
	})

	t.Run("reviewed submissions are immutable for every role", func(t *testing.T) {
		reviewedAt := testDueDate
		submission := &models.Submission{
			ID:         "s1",
			StudentID:  studentID,
			Status:     models.SubmissionStatusAccepted,
			ReviewedAt: &reviewedAt,
		}

		for _, actor := range []models.Identity{student, admin} {
			subRepo := new(MockSubmissionRepository)
			subRepo.On("GetByID", ctx, "s1").Return(submission, nil)

			svc := newTestSubmissionService(subRepo, new(MockAssignmentRepository), nil, testDueDate)

			assert.ErrorIs(t, svc.Delete(ctx, actor, "s1"), apperrors.ErrInvalidState)
			subRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		}
	})
}
