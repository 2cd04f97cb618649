package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/apperrors"
	"github.com/campushub/submission-service/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*models.Submission, error)
	GetByAssignmentID(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, int, error)
	GetByStudentID(ctx context.Context, studentID string, limit, offset int) ([]models.Submission, int, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Submission, int, error)
	UpdateResubmitted(ctx context.Context, submission *models.Submission) error
	UpdateReview(ctx context.Context, submission *models.Submission) error
	Delete(ctx context.Context, id string) error
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const submissionColumns = `
	id, assignment_id, student_id, description, files, github_link,
	status, version, previous_versions, is_late, submitted_at,
	marks, feedback, feedback_files, reviewed_by, reviewed_at,
	uploaded_to_repository, repository_project_id, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		submission    models.Submission
		files         []byte
		snapshots     []byte
		feedbackFiles []byte
	)

	err := row.Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.StudentID,
		&submission.Description,
		&files,
		&submission.GithubLink,
		&submission.Status,
		&submission.Version,
		&snapshots,
		&submission.IsLate,
		&submission.SubmittedAt,
		&submission.Marks,
		&submission.Feedback,
		&feedbackFiles,
		&submission.ReviewedBy,
		&submission.ReviewedAt,
		&submission.UploadedToRepository,
		&submission.RepositoryProjectID,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if submission.Files, err = filesFromJSON(files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	if submission.PreviousVersions, err = snapshotsFromJSON(snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode previous versions: %w", err)
	}
	if submission.FeedbackFiles, err = filesFromJSON(feedbackFiles); err != nil {
		return nil, fmt.Errorf("failed to decode feedback files: %w", err)
	}

	return &submission, nil
}

// Create inserts the submission and bumps the assignment's submission counter
// in one transaction. The counter update is a single SQL increment so
// concurrent creations for different students never lose updates; the unique
// (assignment_id, student_id) constraint makes concurrent creations for the
// same student yield exactly one success.
func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	files, err := filesToJSON(submission.Files)
	if err != nil {
		return fmt.Errorf("failed to encode files: %w", err)
	}
	snapshots, err := snapshotsToJSON(submission.PreviousVersions)
	if err != nil {
		return fmt.Errorf("failed to encode previous versions: %w", err)
	}
	feedbackFiles, err := filesToJSON(submission.FeedbackFiles)
	if err != nil {
		return fmt.Errorf("failed to encode feedback files: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err = tx.ExecContext(ctx, query,
		submission.ID,
		submission.AssignmentID,
		submission.StudentID,
		submission.Description,
		files,
		submission.GithubLink,
		submission.Status,
		submission.Version,
		snapshots,
		submission.IsLate,
		submission.SubmittedAt,
		submission.Marks,
		submission.Feedback,
		feedbackFiles,
		submission.ReviewedBy,
		submission.ReviewedAt,
		submission.UploadedToRepository,
		submission.RepositoryProjectID,
		submission.CreatedAt,
		submission.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return apperrors.ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	counterQuery := `
		UPDATE assignments
		SET submission_count = submission_count + 1, updated_at = $1
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, counterQuery, time.Now(), submission.AssignmentID); err != nil {
		return fmt.Errorf("failed to increment submission counter: %w", err)
	}

	return tx.Commit()
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return submission, err
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE assignment_id = $1 AND student_id = $2`

	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, assignmentID, studentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return submission, err
}

func (r *submissionRepository) GetByAssignmentID(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions WHERE assignment_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, assignmentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.querySubmissions(ctx, query, total, assignmentID, limit, offset)
}

func (r *submissionRepository) GetByStudentID(ctx context.Context, studentID string, limit, offset int) ([]models.Submission, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions WHERE student_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, studentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE student_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.querySubmissions(ctx, query, total, studentID, limit, offset)
}

func (r *submissionRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Submission, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.querySubmissions(ctx, query, total, limit, offset)
}

func (r *submissionRepository) querySubmissions(ctx context.Context, query string, total int, args ...interface{}) ([]models.Submission, int, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, *submission)
	}

	return submissions, total, rows.Err()
}

// UpdateResubmitted persists a new attempt. The WHERE clause checks the
// pre-bump status and version so two racing resubmissions cannot both land.
func (r *submissionRepository) UpdateResubmitted(ctx context.Context, submission *models.Submission) error {
	files, err := filesToJSON(submission.Files)
	if err != nil {
		return fmt.Errorf("failed to encode files: %w", err)
	}
	snapshots, err := snapshotsToJSON(submission.PreviousVersions)
	if err != nil {
		return fmt.Errorf("failed to encode previous versions: %w", err)
	}

	query := `
		UPDATE submissions
		SET description = $1, files = $2, github_link = $3, status = $4,
			version = $5, previous_versions = $6, submitted_at = $7, updated_at = $8
		WHERE id = $9 AND status = $10 AND version = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		submission.Description,
		files,
		submission.GithubLink,
		submission.Status,
		submission.Version,
		snapshots,
		submission.SubmittedAt,
		submission.UpdatedAt,
		submission.ID,
		models.SubmissionStatusResubmit,
		submission.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update resubmitted submission: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrInvalidState
	}

	return nil
}

// UpdateReview applies a review decision. Conditional on the submission still
// being in submitted state, so a decision is applied at most once.
func (r *submissionRepository) UpdateReview(ctx context.Context, submission *models.Submission) error {
	feedbackFiles, err := filesToJSON(submission.FeedbackFiles)
	if err != nil {
		return fmt.Errorf("failed to encode feedback files: %w", err)
	}

	query := `
		UPDATE submissions
		SET status = $1, marks = $2, feedback = $3, feedback_files = $4,
			reviewed_by = $5, reviewed_at = $6, updated_at = $7
		WHERE id = $8 AND status = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		submission.Status,
		submission.Marks,
		submission.Feedback,
		feedbackFiles,
		submission.ReviewedBy,
		submission.ReviewedAt,
		submission.UpdatedAt,
		submission.ID,
		models.SubmissionStatusSubmitted,
	)
	if err != nil {
		return fmt.Errorf("failed to update reviewed submission: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrInvalidState
	}

	return nil
}

// Delete removes a pre-review submission. The guard is repeated in SQL so a
// concurrent review cannot race the deletion.
func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM submissions
		WHERE id = $1 AND reviewed_at IS NULL AND status IN ($2, $3)
	`

	result, err := r.db.ExecContext(ctx, query, id,
		models.SubmissionStatusPending,
		models.SubmissionStatusSubmitted,
	)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrInvalidState
	}

	return nil
}
