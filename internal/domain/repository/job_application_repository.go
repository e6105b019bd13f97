package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campus_connect/internal/common"
	"campus_connect/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type JobApplicationRepository interface {
	Create(ctx context.Context, app *model.JobApplication) error
	ListByJob(ctx context.Context, jobID string) ([]model.JobApplication, error)
	ExistsForStudent(ctx context.Context, jobID, studentID string) (bool, error)
}

type pgJobApplicationRepository struct {
	db *sql.DB
}

func NewPgJobApplicationRepository(db *sql.DB) JobApplicationRepository {
	return &pgJobApplicationRepository{db: db}
}

func (r *pgJobApplicationRepository) Create(ctx context.Context, app *model.JobApplication) error {
	query := `INSERT INTO job_applications (id, job_id, student_id, alumni_id, name,
	          email, department, batch, phone, resume_url, message)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.JobID, app.StudentID, app.AlumniID, app.Name, app.Email,
		app.Department, app.Batch, app.Phone, app.ResumeURL, app.Message,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("already applied to this job: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgJobApplicationRepository.Create: %w", err)
	}
	return nil
}

func (r *pgJobApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]model.JobApplication, error) {
	query := `SELECT id, job_id, student_id, alumni_id, name, email, department,
	          batch, phone, resume_url, message, created_at
	          FROM job_applications WHERE job_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("pgJobApplicationRepository.ListByJob: %w", err)
	}
	defer rows.Close()

	var apps []model.JobApplication
	for rows.Next() {
		var a model.JobApplication
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.StudentID, &a.AlumniID, &a.Name, &a.Email,
			&a.Department, &a.Batch, &a.Phone, &a.ResumeURL, &a.Message,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgJobApplicationRepository.ListByJob scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *pgJobApplicationRepository) ExistsForStudent(ctx context.Context, jobID, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_applications WHERE job_id = $1 AND student_id = $2)`,
		jobID, studentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgJobApplicationRepository.ExistsForStudent: %w", err)
	}
	return exists, nil
}
