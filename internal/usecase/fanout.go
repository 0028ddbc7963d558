package usecase

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/notification"
	"jobboard/internal/repository"
)

type fanoutKind int

const (
	fanoutRecommended fanoutKind = iota
	fanoutReopened
)

// CandidateFanout notifies every jobseeker whose skills match a job that just
// became open. The scan runs in the background; callers return as soon as it
// is scheduled.
type CandidateFanout struct {
	profiles      repository.ProfileRepository
	notifications NotificationUsecase
	runner        TaskRunner
	logger        *log.Logger
}

func NewCandidateFanout(profiles repository.ProfileRepository, notifications NotificationUsecase, runner TaskRunner, logger *log.Logger) *CandidateFanout {
	if runner == nil {
		runner = inlineRunner{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CandidateFanout{profiles: profiles, notifications: notifications, runner: runner, logger: logger}
}

func (f *CandidateFanout) JobCreated(j job.Job) {
	f.schedule(j, fanoutRecommended)
}

func (f *CandidateFanout) JobReopened(j job.Job) {
	f.schedule(j, fanoutReopened)
}

func (f *CandidateFanout) schedule(j job.Job, kind fanoutKind) {
	if f == nil || matching.ParseSkillSet(j.Skills).Len() == 0 {
		return
	}
	ok := f.runner.Submit(func(ctx context.Context) error {
		return f.run(ctx, j, kind)
	})
	if !ok {
		f.logger.Printf("Fanout rejected | job_id=%s", j.ID)
	}
}

func (f *CandidateFanout) run(ctx context.Context, j job.Job, kind fanoutKind) error {
	candidates, err := f.profiles.ListCandidates(ctx)
	if err != nil {
		return fmt.Errorf("fanout list candidates job_id=%s: %w", j.ID, err)
	}

	matches := matching.MatchedCandidates(j.Skills, candidates)
	delivered := 0
	for _, m := range matches {
		if err := f.notifications.Deliver(ctx, fanoutDelivery(j, m, kind)); err != nil {
			continue
		}
		delivered++
	}
	f.logger.Printf("Fanout done | job_id=%s matched=%d delivered=%d", j.ID, len(matches), delivered)
	return nil
}

func fanoutDelivery(j job.Job, m matching.CandidateMatch, kind fanoutKind) Delivery {
	score := m.Score
	data := newJobEvent(j)
	data.MatchScore = &score

	d := Delivery{
		Recipient: m.Candidate.UserID,
		Room:      notification.UserRoom(m.Candidate.UserID),
		Data:      data,
	}
	switch kind {
	case fanoutReopened:
		d.Event = notification.EventJobReopened
		d.Message = fmt.Sprintf("✨ %d%% Match! Job reopened: %s at %s is now accepting applications", score, j.Title, j.Company)
		d.Payload = notification.JobReopenedPayload{JobID: j.ID, MatchScore: score}
	default:
		d.Event = notification.EventJobRecommended
		d.Message = fmt.Sprintf("✨ %d%% Match! New recommended job: %s at %s", score, j.Title, j.Company)
		d.Payload = notification.RecommendedJobPayload{JobID: j.ID, MatchScore: score}
	}
	return d
}
