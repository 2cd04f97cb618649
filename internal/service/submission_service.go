package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/apperrors"
	"github.com/campushub/submission-service/internal/models"
	"github.com/campushub/submission-service/internal/repository"
	"github.com/campushub/submission-service/internal/service/integration"
)

type SubmissionService interface {
	Create(ctx context.Context, actor models.Identity, req *models.CreateSubmissionRequest) (*models.Submission, error)
	Resubmit(ctx context.Context, actor models.Identity, submissionID string, req *models.ResubmitRequest) (*models.Submission, error)
	Delete(ctx context.Context, actor models.Identity, submissionID string) error
	GetByID(ctx context.Context, actor models.Identity, submissionID string) (*models.Submission, error)
	GetAll(ctx context.Context, actor models.Identity, page, limit int) (*models.SubmissionsResponse, error)
	GetByAssignment(ctx context.Context, actor models.Identity, assignmentID string, page, limit int) (*models.SubmissionsResponse, error)
	GetByStudent(ctx context.Context, actor models.Identity, studentID string, page, limit int) (*models.SubmissionsResponse, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	publisher      integration.NotificationPublisher
	logger         zerolog.Logger
	now            func() time.Time
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	publisher integration.NotificationPublisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, actor models.Identity, req *models.CreateSubmissionRequest) (*models.Submission, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	now := s.now()
	if now.After(assignment.DueDate) && !assignment.AllowLateSubmission {
		return nil, apperrors.ErrDeadlinePassed
	}

	if err := validateSubmissionContent(assignment, req.Files, req.GithubLink); err != nil {
		return nil, err
	}

	// Fast path; the unique constraint is the race-safe backstop.
	existing, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, req.AssignmentID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateSubmission
	}

	submission := &models.Submission{
		ID:               uuid.New().String(),
		AssignmentID:     req.AssignmentID,
		StudentID:        actor.UserID,
		Description:      req.Description,
		Files:            req.Files,
		GithubLink:       req.GithubLink,
		Status:           models.SubmissionStatusSubmitted,
		Version:          1,
		PreviousVersions: []models.VersionSnapshot{},
		IsLate:           now.After(assignment.DueDate),
		SubmittedAt:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("assignment_id", submission.AssignmentID).
		Str("student_id", submission.StudentID).
		Bool("is_late", submission.IsLate).
		Msg("Submission created")

	s.publishTransition(ctx, models.SubmissionTransition{
		Kind:       models.TransitionCreated,
		Submission: submission,
		Assignment: assignment,
		Actor:      actor,
	})

	return submission, nil
}

// Resubmit archives the current version and replaces it with a new attempt.
// Only the owning student may resubmit, and only from resubmit status. The
// file set, when supplied, replaces the old one wholesale so stale flagged
// files cannot survive into the new attempt.
func (s *submissionService) Resubmit(ctx context.Context, actor models.Identity, submissionID string, req *models.ResubmitRequest) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if submission.StudentID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	if !submission.CanResubmit() {
		return nil, apperrors.ErrInvalidState
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	newFiles := submission.Files
	if req.Files != nil {
		newFiles = req.Files
	}
	newLink := submission.GithubLink
	if req.GithubLink != nil {
		newLink = req.GithubLink
	}
	if err := validateSubmissionContent(assignment, newFiles, newLink); err != nil {
		return nil, err
	}

	now := s.now()
	submission.PreviousVersions = append(submission.PreviousVersions, submission.Snapshot())
	submission.Version++
	submission.Status = models.SubmissionStatusSubmitted
	submission.SubmittedAt = now
	submission.UpdatedAt = now
	submission.Files = newFiles
	submission.GithubLink = newLink
	if req.Description != nil {
		submission.Description = *req.Description
	}
	// is_late was computed at creation and is never recomputed.

	if err := s.submissionRepo.UpdateResubmitted(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Int("version", submission.Version).
		Msg("Submission resubmitted")

	// A resubmission re-enters submitted, so the faculty gets the same
	// "new submission" notification as on first creation.
	s.publishTransition(ctx, models.SubmissionTransition{
		Kind:       models.TransitionCreated,
		Submission: submission,
		Assignment: assignment,
		Actor:      actor,
	})

	return submission, nil
}

// Delete removes a pre-review submission. Reviewed submissions carry grades
// and feedback and are never deletable, admin or not.
func (s *submissionService) Delete(ctx context.Context, actor models.Identity, submissionID string) error {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return apperrors.ErrSubmissionNotFound
	}

	if submission.StudentID != actor.UserID && !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if !submission.CanDelete() {
		return apperrors.ErrInvalidState
	}

	if err := s.submissionRepo.Delete(ctx, submissionID); err != nil {
		return err
	}

	s.logger.Info().
		Str("submission_id", submissionID).
		Str("deleted_by", actor.UserID).
		Msg("Submission deleted")

	return nil
}

func (s *submissionService) GetByID(ctx context.Context, actor models.Identity, submissionID string) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if submission.StudentID == actor.UserID || actor.IsAdmin() {
		return submission, nil
	}

	if actor.Role == models.RoleFaculty {
		assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get assignment: %w", err)
		}
		if assignment != nil && assignment.FacultyID == actor.UserID {
			return submission, nil
		}
	}

	return nil, apperrors.ErrForbidden
}

func (s *submissionService) GetAll(ctx context.Context, actor models.Identity, page, limit int) (*models.SubmissionsResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	page, limit, offset := normalizePage(page, limit)

	submissions, total, err := s.submissionRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	return &models.SubmissionsResponse{Submissions: submissions, Total: total, Page: page, Limit: limit}, nil
}

func (s *submissionService) GetByAssignment(ctx context.Context, actor models.Identity, assignmentID string, page, limit int) (*models.SubmissionsResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	if !actor.IsAdmin() && actor.UserID != assignment.FacultyID {
		return nil, apperrors.ErrForbidden
	}

	page, limit, offset := normalizePage(page, limit)

	submissions, total, err := s.submissionRepo.GetByAssignmentID(ctx, assignmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by assignment: %w", err)
	}

	return &models.SubmissionsResponse{Submissions: submissions, Total: total, Page: page, Limit: limit}, nil
}

func (s *submissionService) GetByStudent(ctx context.Context, actor models.Identity, studentID string, page, limit int) (*models.SubmissionsResponse, error) {
	if actor.UserID != studentID && actor.Role != models.RoleFaculty && !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	page, limit, offset := normalizePage(page, limit)

	submissions, total, err := s.submissionRepo.GetByStudentID(ctx, studentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by student: %w", err)
	}

	return &models.SubmissionsResponse{Submissions: submissions, Total: total, Page: page, Limit: limit}, nil
}

func (s *submissionService) publishTransition(ctx context.Context, t models.SubmissionTransition) {
	publishTransition(ctx, s.publisher, s.logger, t)
}

// validateSubmissionContent checks the file bag and the optional repository
// link. Structured assignments require exactly one report, presentation and
// code file; freeform assignments accept any combination.
func validateSubmissionContent(assignment *models.Assignment, files []models.FileRef, githubLink *string) error {
	for _, f := range files {
		if !models.IsValidFileRole(string(f.Role)) {
			return apperrors.Validation(fmt.Sprintf("invalid file role %q", f.Role))
		}
	}

	if assignment.IsStructured {
		for _, role := range []models.FileRole{models.FileRoleReport, models.FileRolePresentation, models.FileRoleCode} {
			if models.CountByRole(files, role) != 1 {
				return apperrors.Validation(fmt.Sprintf("structured assignment requires exactly one %s file", role))
			}
		}
	}

	if githubLink != nil && *githubLink != "" && !models.IsGithubRepoURL(*githubLink) {
		return apperrors.Validation("github_link must be a GitHub repository URL")
	}

	return nil
}

func normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}
