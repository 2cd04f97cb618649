package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/apperrors"
	"github.com/campushub/submission-service/internal/models"
	"github.com/campushub/submission-service/internal/repository"
	"github.com/campushub/submission-service/internal/service/integration"
)

// ReviewService applies a faculty decision to a submission. Acceptance alone
// never publishes anything; promotion requires the explicit opt-in flag on
// top of an accepted project submission.
type ReviewService interface {
	Review(ctx context.Context, actor models.Identity, submissionID string, req *models.ReviewRequest) (*models.ReviewResponse, error)
}

type reviewService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	promotion      PromotionService
	publisher      integration.NotificationPublisher
	logger         zerolog.Logger
	now            func() time.Time
}

func NewReviewService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	promotion PromotionService,
	publisher integration.NotificationPublisher,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		promotion:      promotion,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *reviewService) Review(ctx context.Context, actor models.Identity, submissionID string, req *models.ReviewRequest) (*models.ReviewResponse, error) {
	if !models.IsValidDecision(req.Decision) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid review decision %q", req.Decision))
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	if !actor.IsAdmin() && actor.UserID != assignment.FacultyID {
		return nil, apperrors.ErrForbidden
	}

	if !submission.CanReview() {
		return nil, apperrors.ErrInvalidState
	}

	if req.Marks != nil && (*req.Marks < 0 || *req.Marks > assignment.MaxMarks) {
		return nil, apperrors.Validation(fmt.Sprintf("marks must be between 0 and %d", assignment.MaxMarks))
	}

	now := s.now()
	submission.Status = models.SubmissionStatus(req.Decision)
	submission.Marks = req.Marks
	submission.Feedback = req.Feedback
	submission.FeedbackFiles = req.FeedbackFiles
	submission.ReviewedBy = &actor.UserID
	submission.ReviewedAt = &now
	submission.UpdatedAt = now

	if err := s.submissionRepo.UpdateReview(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("decision", req.Decision).
		Str("reviewed_by", actor.UserID).
		Msg("Submission reviewed")

	// The student hears about the decision regardless of promotion.
	publishTransition(ctx, s.publisher, s.logger, models.SubmissionTransition{
		Kind:       models.TransitionReviewed,
		Submission: submission,
		Assignment: assignment,
		Actor:      actor,
	})

	response := &models.ReviewResponse{Submission: submission}

	if submission.Status == models.SubmissionStatusAccepted &&
		req.PromoteToRepository &&
		assignment.Type == models.AssignmentTypeProject {
		project, err := s.promotion.Promote(ctx, actor, submission.ID, req.Promotion)
		if err != nil {
			return nil, fmt.Errorf("review applied but promotion failed: %w", err)
		}
		response.Project = project
		submission.UploadedToRepository = true
		submission.RepositoryProjectID = &project.ID
	}

	return response, nil
}
