package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/apperrors"
	"github.com/campushub/submission-service/internal/models"
)

type ProjectRepository interface {
	CreatePromotion(ctx context.Context, project *models.RepositoryProject) error
	GetByID(ctx context.Context, id string) (*models.RepositoryProject, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.RepositoryProject, int, error)
}

type projectRepository struct {
	*PostgresRepository
}

func NewProjectRepository(db *sql.DB, logger zerolog.Logger) ProjectRepository {
	return &projectRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const projectColumns = `
	id, submission_id, title, description, category, project_type, tags,
	student_id, faculty_id, classroom_id, academic_year, semester,
	report, presentation, code, github_link, views, downloads, created_at
`

// CreatePromotion inserts the artifact and flips the submission's promotion
// flag in one transaction. The flag update is a check-and-set on
// uploaded_to_repository, so two racing promotions produce exactly one
// artifact; the loser gets AlreadyPromoted and the insert rolls back.
func (r *projectRepository) CreatePromotion(ctx context.Context, project *models.RepositoryProject) error {
	report, err := fileSlotToJSON(project.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report slot: %w", err)
	}
	presentation, err := fileSlotToJSON(project.Presentation)
	if err != nil {
		return fmt.Errorf("failed to encode presentation slot: %w", err)
	}
	code, err := fileSlotToJSON(project.Code)
	if err != nil {
		return fmt.Errorf("failed to encode code slot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// CAS first: if the flag is already set there is nothing to insert.
	flagQuery := `
		UPDATE submissions
		SET uploaded_to_repository = TRUE, repository_project_id = $1, updated_at = $2
		WHERE id = $3 AND uploaded_to_repository = FALSE
	`
	result, err := tx.ExecContext(ctx, flagQuery, project.ID, project.CreatedAt, project.SubmissionID)
	if err != nil {
		return fmt.Errorf("failed to mark submission as promoted: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrAlreadyPromoted
	}

	query := `
		INSERT INTO repository_projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = tx.ExecContext(ctx, query,
		project.ID,
		project.SubmissionID,
		project.Title,
		project.Description,
		project.Category,
		project.ProjectType,
		pq.Array(project.Tags),
		project.StudentID,
		project.FacultyID,
		project.ClassroomID,
		project.AcademicYear,
		project.Semester,
		report,
		presentation,
		code,
		project.GithubLink,
		project.Views,
		project.Downloads,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert repository project: %w", err)
	}

	return tx.Commit()
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.RepositoryProject, error) {
	query := `SELECT ` + projectColumns + ` FROM repository_projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return project, err
}

func (r *projectRepository) GetAll(ctx context.Context, limit, offset int) ([]models.RepositoryProject, int, error) {
	countQuery := `SELECT COUNT(*) FROM repository_projects`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + projectColumns + `
		FROM repository_projects
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []models.RepositoryProject
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *project)
	}

	return projects, total, rows.Err()
}

func scanProject(row rowScanner) (*models.RepositoryProject, error) {
	var (
		project      models.RepositoryProject
		report       []byte
		presentation []byte
		code         []byte
	)

	err := row.Scan(
		&project.ID,
		&project.SubmissionID,
		&project.Title,
		&project.Description,
		&project.Category,
		&project.ProjectType,
		pq.Array(&project.Tags),
		&project.StudentID,
		&project.FacultyID,
		&project.ClassroomID,
		&project.AcademicYear,
		&project.Semester,
		&report,
		&presentation,
		&code,
		&project.GithubLink,
		&project.Views,
		&project.Downloads,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if project.Report, err = fileSlotFromJSON(report); err != nil {
		return nil, fmt.Errorf("failed to decode report slot: %w", err)
	}
	if project.Presentation, err = fileSlotFromJSON(presentation); err != nil {
		return nil, fmt.Errorf("failed to decode presentation slot: %w", err)
	}
	if project.Code, err = fileSlotFromJSON(code); err != nil {
		return nil, fmt.Errorf("failed to decode code slot: %w", err)
	}

	return &project, nil
}
