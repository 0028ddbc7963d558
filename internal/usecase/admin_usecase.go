package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type DeletedJob struct {
	ID    uuid.UUID
	Title string
}

type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, status string) (user.User, error)
	ListJobs(ctx context.Context) ([]job.WithOwner, error)
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) (job.Job, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) (DeletedJob, error)
}

type Admin struct {
	users         user.Repository
	jobs          repository.JobRepository
	notifications NotificationUsecase
	cache         SearchCache
	logger        *log.Logger
}

func NewAdminUsecase(
	users user.Repository,
	jobs repository.JobRepository,
	notifications NotificationUsecase,
	cache SearchCache,
	logger *log.Logger,
) *Admin {
	if logger == nil {
		logger = log.Default()
	}
	return &Admin{users: users, jobs: jobs, notifications: notifications, cache: cache, logger: logger}
}

func (u *Admin) ListUsers(ctx context.Context) ([]user.User, error) {
	items, err := u.users.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// UpdateUserStatus suspends or reactivates an account. Suspending a recruiter
// pauses all of their open jobs; reactivating reopens the paused ones. Setting
// the status a user already has is a no-op.
func (u *Admin) UpdateUserStatus(ctx context.Context, userID uuid.UUID, status string) (user.User, error) {
	next, err := user.ParseStatus(status)
	if err != nil {
		return user.User{}, ErrInvalidStatus
	}
	target, err := u.getUser(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	prev := target.Status
	if prev == next {
		return target, nil
	}
	if err := u.users.UpdateStatus(ctx, userID, next); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	target.Status = next
	u.logger.Printf("User status updated | user_id=%s from=%s to=%s", userID, prev, next)

	isRecruiter := target.Role == user.RoleRecruiter
	room := notification.RoomFor(userID, string(target.Role))

	switch {
	case next == user.StatusSuspended:
		closed := 0
		if isRecruiter {
			closed, err = u.jobs.TransitionByOwner(ctx, userID, job.StatusOpen, job.StatusPaused)
			if err != nil {
				u.logger.Printf("Suspend job transition failed | user_id=%s err=%v", userID, err)
				return user.User{}, ErrInternal
			}
			invalidateSearchCache(ctx, u.cache, u.logger)
		}

		data := AccountEvent{Message: bannedMessage(isRecruiter, closed)}
		if isRecruiter {
			data.JobsClosed = &closed
		}
		_ = u.notifications.Deliver(ctx, Delivery{
			Recipient: userID,
			Room:      room,
			Event:     notification.EventAccountBanned,
			Message:   data.Message,
			Payload:   notification.AccountBannedPayload{JobsClosed: closed},
			Data:      data,
		})

	case prev == user.StatusSuspended && next == user.StatusActive:
		reopened := 0
		if isRecruiter {
			reopened, err = u.jobs.TransitionByOwner(ctx, userID, job.StatusPaused, job.StatusOpen)
			if err != nil {
				u.logger.Printf("Reactivate job transition failed | user_id=%s err=%v", userID, err)
				return user.User{}, ErrInternal
			}
			invalidateSearchCache(ctx, u.cache, u.logger)
		}

		data := AccountEvent{Message: unbannedMessage(isRecruiter, reopened)}
		if isRecruiter {
			data.JobsReopened = &reopened
		}
		_ = u.notifications.Deliver(ctx, Delivery{
			Recipient: userID,
			Room:      room,
			Event:     notification.EventAccountUnbanned,
			Message:   data.Message,
			Payload:   notification.AccountUnbannedPayload{JobsReopened: reopened},
			Data:      data,
		})
	}
	return target, nil
}

func (u *Admin) ListJobs(ctx context.Context) ([]job.WithOwner, error) {
	items, err := u.jobs.ListWithOwner(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// UpdateJobStatus sets any job's status and tells the owning recruiter only;
// candidates are not notified, even on a reopen.
func (u *Admin) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) (job.Job, error) {
	next, err := job.ParseStatus(status)
	if err != nil {
		return job.Job{}, ErrInvalidStatus
	}
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}

	prev := j.Status
	if err := u.jobs.UpdateStatus(ctx, jobID, next); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	j.Status = next
	u.logger.Printf("Admin job status updated | job_id=%s from=%s to=%s", jobID, prev, next)
	invalidateSearchCache(ctx, u.cache, u.logger)

	if j.PostedBy != nil {
		owner := *j.PostedBy
		_ = u.notifications.Deliver(ctx, Delivery{
			Recipient: owner,
			Room:      notification.RecruiterRoom(owner),
			Event:     notification.EventJobStatus,
			Message: fmt.Sprintf("Admin %s your job: \"%s\" (Status changed from %s to %s)",
				adminJobVerb(next), j.Title, prev, next),
			Payload: notification.JobStatusUpdatePayload{
				JobID:     j.ID,
				JobTitle:  j.Title,
				OldStatus: string(prev),
				NewStatus: string(next),
			},
			Data: JobStatusEvent{
				JobID:     j.ID,
				JobTitle:  j.Title,
				OldStatus: string(prev),
				NewStatus: string(next),
			},
		})
	}
	return j, nil
}

// DeleteJob removes a job. The owner is told only while their account still
// exists; a missing owner is skipped silently.
func (u *Admin) DeleteJob(ctx context.Context, jobID uuid.UUID) (DeletedJob, error) {
	j, err := u.getJob(ctx, jobID)
	if err != nil {
		return DeletedJob{}, err
	}

	var owner *user.User
	if j.PostedBy != nil {
		o, err := u.users.GetByID(ctx, *j.PostedBy)
		switch {
		case err == nil:
			owner = &o
		case errors.Is(err, user.ErrNotFound):
			u.logger.Printf("Job owner missing, skip notify | job_id=%s owner_id=%s", jobID, *j.PostedBy)
		default:
			u.logger.Printf("Job owner lookup failed, skip notify | job_id=%s err=%v", jobID, err)
		}
	}

	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return DeletedJob{}, ErrJobNotFound
		}
		return DeletedJob{}, ErrInternal
	}
	u.logger.Printf("Admin job deleted | job_id=%s", jobID)
	invalidateSearchCache(ctx, u.cache, u.logger)

	if owner != nil {
		_ = u.notifications.Deliver(ctx, Delivery{
			Recipient: owner.ID,
			Room:      notification.RecruiterRoom(owner.ID),
			Event:     notification.EventJobDeleted,
			Message:   fmt.Sprintf("🗑️ Admin removed your job: \"%s\"", j.Title),
			Payload:   notification.JobDeletedPayload{JobID: j.ID, JobTitle: j.Title},
			Data: JobDeletedEvent{
				JobID:    j.ID,
				JobTitle: j.Title,
				Message:  fmt.Sprintf("Your job \"%s\" has been removed by admin", j.Title),
			},
		})
	}
	return DeletedJob{ID: j.ID, Title: j.Title}, nil
}

func (u *Admin) getUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return usr, nil
}

func (u *Admin) getJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func adminJobVerb(s job.Status) string {
	switch s {
	case job.StatusPaused:
		return "paused"
	case job.StatusClosed:
		return "closed"
	}
	return "updated"
}

func bannedMessage(isRecruiter bool, closed int) string {
	if isRecruiter {
		return fmt.Sprintf("Your account has been suspended by admin. All your %d active job(s) have been temporarily closed.", closed)
	}
	return "Your account has been suspended by admin. You will not be able to apply for jobs until your account is reactivated."
}

func unbannedMessage(isRecruiter bool, reopened int) string {
	if isRecruiter {
		return fmt.Sprintf("Your account has been reactivated by admin. All your %d job(s) have been reopened automatically.", reopened)
	}
	return "Your account has been reactivated by admin. You can now apply for jobs again."
}
