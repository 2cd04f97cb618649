package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/models"
)

// AssignmentRepository reads the assignment configuration owned by the
// classroom collaborator. The submission counter increment happens inside the
// submission creation transaction.
type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := `
		SELECT id, classroom_id, faculty_id, title, description, type, due_date,
			allow_late_submission, max_marks, is_structured, submission_count,
			created_at, updated_at
		FROM assignments
		WHERE id = $1
	`

	assignment := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.ClassroomID,
		&assignment.FacultyID,
		&assignment.Title,
		&assignment.Description,
		&assignment.Type,
		&assignment.DueDate,
		&assignment.AllowLateSubmission,
		&assignment.MaxMarks,
		&assignment.IsStructured,
		&assignment.SubmissionCount,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return assignment, err
}

func (r *assignmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM assignments WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
