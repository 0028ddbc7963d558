package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, applicantID, jobID uuid.UUID) (application.Application, error)
	UpdateStatus(ctx context.Context, recruiterID, applicationID uuid.UUID, status string) (application.Detail, error)
	ListMine(ctx context.Context, applicantID uuid.UUID) ([]application.Detail, error)
	ListApplicants(ctx context.Context, recruiterID, jobID uuid.UUID) ([]application.Detail, error)
}

type Applications struct {
	apps          repository.ApplicationRepository
	jobs          repository.JobRepository
	profiles      repository.ProfileRepository
	users         user.Repository
	notifications NotificationUsecase
	logger        *log.Logger
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	profiles repository.ProfileRepository,
	users user.Repository,
	notifications NotificationUsecase,
	logger *log.Logger,
) *Applications {
	if logger == nil {
		logger = log.Default()
	}
	return &Applications{apps: apps, jobs: jobs, profiles: profiles, users: users, notifications: notifications, logger: logger}
}

// Apply checks, in order: account active, résumé on file, no earlier
// application, job open. The first failing check aborts with no side effects.
func (u *Applications) Apply(ctx context.Context, applicantID, jobID uuid.UUID) (application.Application, error) {
	applicant, err := u.users.GetByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Application{}, ErrUserNotFound
		}
		return application.Application{}, ErrInternal
	}
	if applicant.IsSuspended() {
		return application.Application{}, ErrAccountSuspended
	}

	p, err := u.profiles.GetByUserID(ctx, applicantID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return application.Application{}, ErrInternal
	}
	if err != nil || !p.HasResume() {
		return application.Application{}, ErrResumeRequired
	}

	exists, err := u.apps.Exists(ctx, applicantID, jobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if j.Status != job.StatusOpen {
		return application.Application{}, ErrJobNotOpen
	}

	a, err := u.apps.Create(ctx, application.Application{
		ApplicantID: applicantID,
		JobID:       jobID,
		Status:      application.StatusPending,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return application.Application{}, ErrAlreadyApplied
		}
		u.logger.Printf("Application create failed | applicant_id=%s job_id=%s err=%v", applicantID, jobID, err)
		return application.Application{}, ErrInternal
	}
	u.logger.Printf("Application created | application_id=%s job_id=%s", a.ID, jobID)

	if j.PostedBy != nil {
		_ = u.notifications.Deliver(ctx, Delivery{
			Recipient: *j.PostedBy,
			Room:      notification.RecruiterRoom(*j.PostedBy),
			Event:     notification.EventAppNew,
			Message: fmt.Sprintf("New application received for %s from %s",
				orDefault(j.Title, "your job"), orDefault(applicant.Name, "a candidate")),
			Payload: notification.NewApplicationPayload{ApplicationID: a.ID, JobID: jobID},
			Data:    newApplicationEvent(a, j.Title, applicant.Name),
		})
	}
	return a, nil
}

// UpdateStatus is restricted to the recruiter who owns the application's job.
func (u *Applications) UpdateStatus(ctx context.Context, recruiterID, applicationID uuid.UUID, status string) (application.Detail, error) {
	next, err := application.ParseStatus(status)
	if err != nil {
		return application.Detail{}, ErrInvalidStatus
	}

	d, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Detail{}, ErrApplicationNotFound
		}
		return application.Detail{}, ErrInternal
	}
	if d.JobPostedBy == nil || *d.JobPostedBy != recruiterID {
		return application.Detail{}, ErrForbidden
	}

	if err := u.apps.UpdateStatus(ctx, applicationID, next); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Detail{}, ErrApplicationNotFound
		}
		return application.Detail{}, ErrInternal
	}
	d.Status = next
	u.logger.Printf("Application status updated | application_id=%s status=%s", applicationID, next)

	_ = u.notifications.Deliver(ctx, Delivery{
		Recipient: d.ApplicantID,
		Room:      notification.UserRoom(d.ApplicantID),
		Event:     notification.EventAppStatus,
		Message:   applicationStatusMessage(d.JobTitle, d.JobCompany, next),
		Payload: notification.ApplicationUpdatePayload{
			ApplicationID: d.ID,
			JobID:         d.JobID,
			JobTitle:      d.JobTitle,
			Company:       d.JobCompany,
			Status:        string(next),
		},
		Data: AppStatusEvent{
			AppID:    d.ID,
			Status:   string(next),
			JobID:    d.JobID,
			JobTitle: d.JobTitle,
			Company:  d.JobCompany,
		},
	})
	return d, nil
}

func (u *Applications) ListMine(ctx context.Context, applicantID uuid.UUID) ([]application.Detail, error) {
	items, err := u.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) ListApplicants(ctx context.Context, recruiterID, jobID uuid.UUID) ([]application.Detail, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if !j.IsOwnedBy(recruiterID) {
		return nil, ErrForbidden
	}

	items, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func applicationStatusMessage(jobTitle, company string, status application.Status) string {
	switch status {
	case application.StatusApproved:
		return fmt.Sprintf("🎉 Congratulations! Your application for \"%s\" at %s has been approved", jobTitle, company)
	case application.StatusRejected:
		return fmt.Sprintf("❌ Your application for \"%s\" at %s was rejected", jobTitle, company)
	default:
		return fmt.Sprintf("Application for \"%s\" status updated to: %s", jobTitle, status)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
