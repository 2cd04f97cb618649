package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/models"
)

// ClassroomRepository reads the classroom record owned by the classroom
// collaborator. Only promotion needs it, for academic year and semester.
type ClassroomRepository interface {
	GetByID(ctx context.Context, id string) (*models.Classroom, error)
}

type classroomRepository struct {
	*PostgresRepository
}

func NewClassroomRepository(db *sql.DB, logger zerolog.Logger) ClassroomRepository {
	return &classroomRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *classroomRepository) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	query := `
		SELECT id, faculty_id, COALESCE(academic_year, ''), COALESCE(semester, '')
		FROM classrooms
		WHERE id = $1
	`

	classroom := &models.Classroom{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&classroom.ID,
		&classroom.FacultyID,
		&classroom.AcademicYear,
		&classroom.Semester,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return classroom, err
}
