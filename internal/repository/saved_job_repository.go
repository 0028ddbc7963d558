package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type SavedJobRepository interface {
	// SaveIfAbsent returns the existing bookmark when one is already there.
	SaveIfAbsent(ctx context.Context, userID, jobID uuid.UUID) (job.Saved, error)
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Saved, error)
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) SaveIfAbsent(ctx context.Context, userID, jobID uuid.UUID) (job.Saved, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		uuid.New(), userID, jobID,
	)
	if err != nil {
		return job.Saved{}, err
	}

	var s job.Saved
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_id, saved_at FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.JobID, &s.SavedAt); err != nil {
		return job.Saved{}, err
	}
	return s, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Saved, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.job_id, s.saved_at, `+prefixed("j", jobColumns)+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Saved, 0)
	for rows.Next() {
		var s job.Saved
		var jobType, status string
		j := &s.Job
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.JobID, &s.SavedAt,
			&j.ID, &j.Title, &j.Company, &j.Skills, &j.Location, &j.Description, &j.SalaryMin, &j.SalaryMax,
			&j.ExperienceRequired, &jobType, &j.PostedBy, &status, &j.ExternalSource, &j.ExternalID,
			&j.ExternalURL, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		j.JobType = job.Type(jobType)
		j.Status = job.Status(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
