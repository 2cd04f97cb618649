package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campushub/submission-service/internal/models"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*models.Submission, error) {
	args := m.Called(ctx, assignmentID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByAssignmentID(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, int, error) {
	args := m.Called(ctx, assignmentID, limit, offset)
	return args.Get(0).([]models.Submission), args.Int(1), args.Error(2)
}

func (m *MockSubmissionRepository) GetByStudentID(ctx context.Context, studentID string, limit, offset int) ([]models.Submission, int, error) {
	args := m.Called(ctx, studentID, limit, offset)
	return args.Get(0).([]models.Submission), args.Int(1), args.Error(2)
}

func (m *MockSubmissionRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Submission, int, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Submission), args.Int(1), args.Error(2)
}

func (m *MockSubmissionRepository) UpdateResubmitted(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) UpdateReview(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockClassroomRepository struct {
	mock.Mock
}

func (m *MockClassroomRepository) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreatePromotion(ctx context.Context, project *models.RepositoryProject) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*models.RepositoryProject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepositoryProject), args.Error(1)
}

func (m *MockProjectRepository) GetAll(ctx context.Context, limit, offset int) ([]models.RepositoryProject, int, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.RepositoryProject), args.Int(1), args.Error(2)
}

type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) PublishNotification(ctx context.Context, event *models.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotificationPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockPromotionService struct {
	mock.Mock
}

func (m *MockPromotionService) Promote(ctx context.Context, actor models.Identity, submissionID string, req *models.PromoteRequest) (*models.RepositoryProject, error) {
	args := m.Called(ctx, actor, submissionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepositoryProject), args.Error(1)
}

func (m *MockPromotionService) GetProject(ctx context.Context, id string) (*models.RepositoryProject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepositoryProject), args.Error(1)
}

func (m *MockPromotionService) ListProjects(ctx context.Context, page, limit int) (*models.ProjectsResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectsResponse), args.Error(1)
}
