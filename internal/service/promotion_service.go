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
)

// PromotionService converts an accepted project submission into a standalone
// public artifact. Promotion happens at most once per submission.
type PromotionService interface {
	Promote(ctx context.Context, actor models.Identity, submissionID string, req *models.PromoteRequest) (*models.RepositoryProject, error)
	GetProject(ctx context.Context, id string) (*models.RepositoryProject, error)
	ListProjects(ctx context.Context, page, limit int) (*models.ProjectsResponse, error)
}

type promotionService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	classroomRepo  repository.ClassroomRepository
	projectRepo    repository.ProjectRepository
	logger         zerolog.Logger
	now            func() time.Time
}

func NewPromotionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	classroomRepo repository.ClassroomRepository,
	projectRepo repository.ProjectRepository,
	logger zerolog.Logger,
) PromotionService {
	return &promotionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		classroomRepo:  classroomRepo,
		projectRepo:    projectRepo,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *promotionService) Promote(ctx context.Context, actor models.Identity, submissionID string, req *models.PromoteRequest) (*models.RepositoryProject, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if submission.UploadedToRepository {
		return nil, apperrors.ErrAlreadyPromoted
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

	// Only accepted project work goes public.
	if submission.Status != models.SubmissionStatusAccepted || assignment.Type != models.AssignmentTypeProject {
		return nil, apperrors.ErrInvalidState
	}

	classroom, err := s.classroomRepo.GetByID(ctx, assignment.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}

	now := s.now()

	academicYear := ""
	semester := ""
	if classroom != nil {
		academicYear = classroom.AcademicYear
		semester = classroom.Semester
	}
	if academicYear == "" {
		academicYear = fmt.Sprintf("%d-%d", now.Year(), now.Year()+1)
	}

	description := submission.Description
	if description == "" {
		description = assignment.Description
	}

	if req == nil {
		req = &models.PromoteRequest{}
	}

	// Files tagged document/other are not copied into the typed slots; they
	// remain reachable through the submission itself.
	project := &models.RepositoryProject{
		ID:           uuid.New().String(),
		SubmissionID: submission.ID,
		Title:        assignment.Title,
		Description:  description,
		Category:     req.Category,
		ProjectType:  req.ProjectType,
		Tags:         req.Tags,
		StudentID:    submission.StudentID,
		FacultyID:    assignment.FacultyID,
		ClassroomID:  assignment.ClassroomID,
		AcademicYear: academicYear,
		Semester:     semester,
		Report:       models.SlotByRole(submission.Files, models.FileRoleReport),
		Presentation: models.SlotByRole(submission.Files, models.FileRolePresentation),
		Code:         models.SlotByRole(submission.Files, models.FileRoleCode),
		GithubLink:   submission.GithubLink,
		CreatedAt:    now,
	}

	if err := s.projectRepo.CreatePromotion(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("submission_id", submission.ID).
		Str("promoted_by", actor.UserID).
		Msg("Submission promoted to repository")

	return project, nil
}

func (s *promotionService) GetProject(ctx context.Context, id string) (*models.RepositoryProject, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	return project, nil
}

func (s *promotionService) ListProjects(ctx context.Context, page, limit int) (*models.ProjectsResponse, error) {
	page, limit, offset := normalizePage(page, limit)

	projects, total, err := s.projectRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &models.ProjectsResponse{Projects: projects, Total: total, Page: page, Limit: limit}, nil
}
