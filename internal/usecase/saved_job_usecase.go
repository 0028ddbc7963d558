package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type SavedJobUsecase interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) (job.Saved, error)
	Remove(ctx context.Context, userID, jobID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]job.Saved, error)
}

type SavedJobs struct {
	saved repository.SavedJobRepository
	jobs  repository.JobRepository
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs repository.JobRepository) *SavedJobs {
	return &SavedJobs{saved: saved, jobs: jobs}
}

// Save is idempotent: saving an already saved job returns the existing record.
func (u *SavedJobs) Save(ctx context.Context, userID, jobID uuid.UUID) (job.Saved, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Saved{}, ErrJobNotFound
		}
		return job.Saved{}, ErrInternal
	}

	s, err := u.saved.SaveIfAbsent(ctx, userID, jobID)
	if err != nil {
		return job.Saved{}, ErrInternal
	}
	s.Job = j
	return s, nil
}

func (u *SavedJobs) Remove(ctx context.Context, userID, jobID uuid.UUID) error {
	if err := u.saved.Delete(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrSavedJobNotFound) {
			return ErrSavedJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *SavedJobs) List(ctx context.Context, userID uuid.UUID) ([]job.Saved, error) {
	items, err := u.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
