package repository

import (
	"context"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context) ([]job.Job, error)
	ListOpen(ctx context.Context) ([]job.Job, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Job, error)
	ListWithOwner(ctx context.Context) ([]job.WithOwner, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) error
	// TransitionByOwner moves every job of ownerID in status from to status to
	// and returns how many rows changed.
	TransitionByOwner(ctx context.Context, ownerID uuid.UUID, from, to job.Status) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsExternal(ctx context.Context, source, externalID string) (bool, error)
	ExistsByTitleCompany(ctx context.Context, title, company string) (bool, error)
}

const jobColumns = `id, title, company, skills, location, description, salary_min, salary_max,
	experience_required, job_type, posted_by, status, external_source, external_id, external_url, created_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	if j.JobType == "" {
		j.JobType = job.TypeFullTime
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, title, company, skills, location, description, salary_min, salary_max,
			experience_required, job_type, posted_by, status, external_source, external_id, external_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING `+jobColumns,
		j.ID, j.Title, j.Company, j.Skills, j.Location, j.Description, j.SalaryMin, j.SalaryMax,
		j.ExperienceRequired, string(j.JobType), j.PostedBy, string(j.Status),
		j.ExternalSource, j.ExternalID, j.ExternalURL,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context) ([]job.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC`, string(job.StatusOpen))
}

func (r *PostgresJobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *PostgresJobRepository) ListWithOwner(ctx context.Context) ([]job.WithOwner, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id, j.title, j.company, j.skills, j.location, j.description, j.salary_min, j.salary_max,
			j.experience_required, j.job_type, j.posted_by, j.status, j.external_source, j.external_id,
			j.external_url, j.created_at, u.name, u.email, u.status
		 FROM jobs j
		 LEFT JOIN users u ON u.id = j.posted_by
		 ORDER BY j.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.WithOwner, 0)
	for rows.Next() {
		var w job.WithOwner
		var jobType, status string
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Company, &w.Skills, &w.Location, &w.Description, &w.SalaryMin, &w.SalaryMax,
			&w.ExperienceRequired, &jobType, &w.PostedBy, &status, &w.ExternalSource, &w.ExternalID,
			&w.ExternalURL, &w.CreatedAt, &w.RecruiterName, &w.RecruiterEmail, &w.RecruiterStatus,
		); err != nil {
			return nil, err
		}
		w.JobType = job.Type(jobType)
		w.Status = job.Status(status)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) TransitionByOwner(ctx context.Context, ownerID uuid.UUID, from, to job.Status) (int, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $3 WHERE posted_by = $1 AND status = $2`,
		ownerID, string(from), string(to),
	)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ExistsExternal(ctx context.Context, source, externalID string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE external_source = $1 AND external_id = $2)`,
		source, externalID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ExistsByTitleCompany(ctx context.Context, title, company string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE lower(title) = lower($1) AND lower(company) = lower($2))`,
		title, company,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var jobType, status string
	if err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Skills, &j.Location, &j.Description, &j.SalaryMin, &j.SalaryMax,
		&j.ExperienceRequired, &jobType, &j.PostedBy, &status, &j.ExternalSource, &j.ExternalID,
		&j.ExternalURL, &j.CreatedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.JobType = job.Type(jobType)
	j.Status = job.Status(status)
	return j, nil
}

// prefixed qualifies every column in a comma separated list with alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
