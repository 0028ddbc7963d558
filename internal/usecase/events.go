package usecase

import (
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

// JobEvent is the job shape pushed over the live channel. MatchScore is set on
// job:recommended and job:reopened, Score on job:match.
type JobEvent struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Company            string     `json:"company"`
	Skills             string     `json:"skills"`
	Location           string     `json:"location"`
	Description        string     `json:"description"`
	SalaryMin          *int       `json:"salaryMin,omitempty"`
	SalaryMax          *int       `json:"salaryMax,omitempty"`
	ExperienceRequired *int       `json:"experienceRequired,omitempty"`
	JobType            string     `json:"jobType"`
	Status             string     `json:"status"`
	PostedBy           *uuid.UUID `json:"postedBy,omitempty"`
	ExternalURL        *string    `json:"externalUrl,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	MatchScore         *int       `json:"matchScore,omitempty"`
	Score              *int       `json:"score,omitempty"`
}

func newJobEvent(j job.Job) JobEvent {
	return JobEvent{
		ID:                 j.ID,
		Title:              j.Title,
		Company:            j.Company,
		Skills:             j.Skills,
		Location:           j.Location,
		Description:        j.Description,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		ExperienceRequired: j.ExperienceRequired,
		JobType:            string(j.JobType),
		Status:             string(j.Status),
		PostedBy:           j.PostedBy,
		ExternalURL:        j.ExternalURL,
		CreatedAt:          j.CreatedAt,
	}
}

type ApplicationEvent struct {
	ID            uuid.UUID `json:"id"`
	ApplicantID   uuid.UUID `json:"applicantId"`
	JobID         uuid.UUID `json:"jobId"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
	JobTitle      string    `json:"jobTitle"`
	ApplicantName string    `json:"applicantName"`
}

func newApplicationEvent(a application.Application, jobTitle, applicantName string) ApplicationEvent {
	return ApplicationEvent{
		ID:            a.ID,
		ApplicantID:   a.ApplicantID,
		JobID:         a.JobID,
		Status:        string(a.Status),
		AppliedAt:     a.AppliedAt,
		JobTitle:      jobTitle,
		ApplicantName: applicantName,
	}
}

type AppStatusEvent struct {
	AppID    uuid.UUID `json:"appId"`
	Status   string    `json:"status"`
	JobID    uuid.UUID `json:"jobId"`
	JobTitle string    `json:"jobTitle"`
	Company  string    `json:"company"`
}

type JobStatusEvent struct {
	JobID     uuid.UUID `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

type JobDeletedEvent struct {
	JobID    uuid.UUID `json:"jobId"`
	JobTitle string    `json:"jobTitle"`
	Message  string    `json:"message"`
}

// AccountEvent carries account:banned and account:unbanned. The job counters
// are only present for recruiters.
type AccountEvent struct {
	Message      string `json:"message"`
	JobsClosed   *int   `json:"jobsClosed,omitempty"`
	JobsReopened *int   `json:"jobsReopened,omitempty"`
}
