package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/notification"
	"jobboard/internal/repository"
	"jobboard/internal/search"

	"github.com/google/uuid"
)

type CreateJobInput struct {
	Title              string
	Company            string
	Skills             string
	Location           string
	Description        string
	SalaryMin          *int
	SalaryMax          *int
	ExperienceRequired *int
	JobType            string
}

// MatchedCandidatesResult is the ranked candidate list for one owned job.
type MatchedCandidatesResult struct {
	Job        job.Job
	Candidates []matching.CandidateMatch
}

type JobUsecase interface {
	CreateJob(ctx context.Context, recruiterID uuid.UUID, in CreateJobInput) (job.Job, error)
	UpdateJobStatus(ctx context.Context, recruiterID, jobID uuid.UUID, status string) (job.Job, error)
	Recommend(ctx context.Context, userID uuid.UUID) ([]matching.JobMatch, error)
	MatchedCandidates(ctx context.Context, recruiterID, jobID uuid.UUID) (MatchedCandidatesResult, error)
	Search(ctx context.Context, f search.Filters) ([]search.Result, error)
	ListJobs(ctx context.Context) ([]job.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListMyJobs(ctx context.Context, recruiterID uuid.UUID) ([]job.Job, error)
}

type Jobs struct {
	jobs        repository.JobRepository
	profiles    repository.ProfileRepository
	fanout      *CandidateFanout
	broadcaster Broadcaster
	cache       SearchCache
	cacheTTL    time.Duration
	logger      *log.Logger
}

func NewJobUsecase(
	jobs repository.JobRepository,
	profiles repository.ProfileRepository,
	fanout *CandidateFanout,
	broadcaster Broadcaster,
	cache SearchCache,
	cacheTTL time.Duration,
	logger *log.Logger,
) *Jobs {
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Jobs{
		jobs:        jobs,
		profiles:    profiles,
		fanout:      fanout,
		broadcaster: broadcaster,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (u *Jobs) CreateJob(ctx context.Context, recruiterID uuid.UUID, in CreateJobInput) (job.Job, error) {
	j, err := buildJob(in)
	if err != nil {
		return job.Job{}, err
	}
	j.PostedBy = &recruiterID

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.logger.Printf("Job create failed | recruiter_id=%s err=%v", recruiterID, err)
		return job.Job{}, ErrInternal
	}
	u.logger.Printf("Job created | job_id=%s recruiter_id=%s", created.ID, recruiterID)

	u.invalidateSearch(ctx)
	u.broadcaster.EmitToAll(notification.EventJobNew, newJobEvent(created))
	u.fanout.JobCreated(created)
	return created, nil
}

// UpdateJobStatus lets the owning recruiter move a job between open, paused
// and closed. Reopening runs the candidate fan-out again.
func (u *Jobs) UpdateJobStatus(ctx context.Context, recruiterID, jobID uuid.UUID, status string) (job.Job, error) {
	next, err := job.ParseStatus(status)
	if err != nil {
		return job.Job{}, ErrInvalidStatus
	}
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if !j.IsOwnedBy(recruiterID) {
		return job.Job{}, ErrForbidden
	}

	prev := j.Status
	if err := u.jobs.UpdateStatus(ctx, jobID, next); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	j.Status = next
	u.logger.Printf("Job status updated | job_id=%s from=%s to=%s", jobID, prev, next)

	u.invalidateSearch(ctx)
	if job.IsReopen(prev, next) {
		u.fanout.JobReopened(j)
	}
	return j, nil
}

// Recommend ranks open jobs for the caller's profile and pushes the best few
// as job:match. A caller without a profile gets an empty list.
func (u *Jobs) Recommend(ctx context.Context, userID uuid.UUID) ([]matching.JobMatch, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return []matching.JobMatch{}, nil
		}
		return nil, ErrInternal
	}

	open, err := u.jobs.ListOpen(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	matches := matching.RecommendForCandidate(open, p.Skills)
	room := notification.UserRoom(userID)
	for _, m := range matching.Top(matches, matching.TopMatchCount) {
		score := m.Score
		data := newJobEvent(m.Job)
		data.Score = &score
		u.broadcaster.EmitToRoom(room, notification.EventJobMatch, data)
	}
	return matches, nil
}

func (u *Jobs) MatchedCandidates(ctx context.Context, recruiterID, jobID uuid.UUID) (MatchedCandidatesResult, error) {
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return MatchedCandidatesResult{}, err
	}
	if !j.IsOwnedBy(recruiterID) {
		return MatchedCandidatesResult{}, ErrForbidden
	}

	candidates, err := u.profiles.ListCandidates(ctx)
	if err != nil {
		return MatchedCandidatesResult{}, ErrInternal
	}
	return MatchedCandidatesResult{
		Job:        j,
		Candidates: matching.MatchedCandidates(j.Skills, candidates),
	}, nil
}

// Search ranks every open job against f. Results are cached per normalized
// filter set until the next job write.
func (u *Jobs) Search(ctx context.Context, f search.Filters) ([]search.Result, error) {
	cacheKey := JobsSearchCacheKey(f)
	if u.cache != nil {
		var cached []search.Result
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Printf("[Jobs] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logger.Printf("[Jobs] Cache MISS: %s", cacheKey)
	}

	open, err := u.jobs.ListOpen(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	ranked := search.Rank(open, f)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, ranked, u.cacheTTL); err != nil {
			u.logger.Printf("[Jobs] Cache SET failed: %s err=%v", cacheKey, err)
		}
	}
	return ranked, nil
}

func (u *Jobs) ListJobs(ctx context.Context) ([]job.Job, error) {
	items, err := u.jobs.ListOpen(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) GetJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return u.getJob(ctx, id)
}

func (u *Jobs) ListMyJobs(ctx context.Context, recruiterID uuid.UUID) ([]job.Job, error) {
	items, err := u.jobs.ListByOwner(ctx, recruiterID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) getJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) invalidateSearch(ctx context.Context) {
	invalidateSearchCache(ctx, u.cache, u.logger)
}

func invalidateSearchCache(ctx context.Context, cache SearchCache, logger *log.Logger) {
	if cache == nil {
		return
	}
	if err := cache.DeleteByPattern(ctx, searchCachePattern); err != nil {
		logger.Printf("[Jobs] Cache invalidate failed: %v", err)
	}
}

func buildJob(in CreateJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	if title == "" || company == "" {
		return job.Job{}, ErrInvalidInput
	}
	jobType, err := job.ParseType(in.JobType)
	if err != nil {
		return job.Job{}, ErrInvalidInput
	}
	if isNegative(in.SalaryMin) || isNegative(in.SalaryMax) || isNegative(in.ExperienceRequired) {
		return job.Job{}, ErrInvalidInput
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return job.Job{}, ErrInvalidInput
	}

	return job.Job{
		Title:              title,
		Company:            company,
		Skills:             strings.TrimSpace(in.Skills),
		Location:           strings.TrimSpace(in.Location),
		Description:        strings.TrimSpace(in.Description),
		SalaryMin:          in.SalaryMin,
		SalaryMax:          in.SalaryMax,
		ExperienceRequired: in.ExperienceRequired,
		JobType:            jobType,
		Status:             job.StatusOpen,
	}, nil
}

func isNegative(p *int) bool {
	return p != nil && *p < 0
}
