package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	// Create returns ErrDuplicateApplication when the applicant already
	// applied to the job.
	Create(ctx context.Context, a application.Application) (application.Application, error)
	Exists(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Detail, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Detail, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Detail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error
}

const applicationDetailSelect = `SELECT a.id, a.applicant_id, a.job_id, a.status, a.applied_at,
	j.title, j.company, j.posted_by, u.name, u.email
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.applicant_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}

	var status string
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, applicant_id, job_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, applicant_id, job_id, status, applied_at`,
		a.ID, a.ApplicantID, a.JobID, string(a.Status),
	)
	var out application.Application
	if err := row.Scan(&out.ID, &out.ApplicantID, &out.JobID, &status, &out.AppliedAt); err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, ErrDuplicateApplication
		}
		return application.Application{}, err
	}
	out.Status = application.Status(status)
	return out, nil
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE applicant_id = $1 AND job_id = $2)`,
		applicantID, jobID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Detail, error) {
	row := r.db.QueryRow(ctx, applicationDetailSelect+` WHERE a.id = $1`, id)
	d, err := scanApplicationDetail(row)
	if err != nil {
		if isNoRows(err) {
			return application.Detail{}, ErrApplicationNotFound
		}
		return application.Detail{}, err
	}
	return d, nil
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Detail, error) {
	return r.queryDetails(ctx, applicationDetailSelect+` WHERE a.applicant_id = $1 ORDER BY a.applied_at DESC`, applicantID)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Detail, error) {
	return r.queryDetails(ctx, applicationDetailSelect+` WHERE a.job_id = $1 ORDER BY a.applied_at DESC`, jobID)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) queryDetails(ctx context.Context, query string, args ...any) ([]application.Detail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Detail, 0)
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplicationDetail(row database.Row) (application.Detail, error) {
	var d application.Detail
	var status string
	if err := row.Scan(
		&d.ID, &d.ApplicantID, &d.JobID, &status, &d.AppliedAt,
		&d.JobTitle, &d.JobCompany, &d.JobPostedBy, &d.ApplicantName, &d.ApplicantEmail,
	); err != nil {
		return application.Detail{}, err
	}
	d.Status = application.Status(status)
	return d, nil
}
