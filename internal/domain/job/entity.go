package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus  = errors.New("invalid job status")
	ErrInvalidJobType = errors.New("invalid job type")
)

// Status is the lifecycle state of a posting. Jobs are created open.
type Status string

const (
	StatusOpen   Status = "open"
	StatusPaused Status = "paused"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusOpen, StatusPaused, StatusClosed:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// IsReopen reports whether moving from -> to brings a posting back to open.
func IsReopen(from, to Status) bool {
	return from != StatusOpen && to == StatusOpen
}

type Type string

const (
	TypeFullTime Type = "full-time"
	TypePartTime Type = "part-time"
	TypeContract Type = "contract"
	TypeRemote   Type = "remote"
	TypeHybrid   Type = "hybrid"
)

// ParseType defaults an empty value to full-time.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "":
		return TypeFullTime, nil
	case TypeFullTime, TypePartTime, TypeContract, TypeRemote, TypeHybrid:
		return t, nil
	}
	return "", ErrInvalidJobType
}

type Job struct {
	ID                 uuid.UUID
	Title              string
	Company            string
	Skills             string
	Location           string
	Description        string
	SalaryMin          *int
	SalaryMax          *int
	ExperienceRequired *int
	JobType            Type
	PostedBy           *uuid.UUID
	Status             Status
	ExternalSource     *string
	ExternalID         *string
	ExternalURL        *string
	CreatedAt          time.Time
}

func (j Job) IsOwnedBy(userID uuid.UUID) bool {
	return j.PostedBy != nil && *j.PostedBy == userID
}

// WithOwner is a job row joined with its posting recruiter, used by admin listings.
type WithOwner struct {
	Job
	RecruiterName   *string
	RecruiterEmail  *string
	RecruiterStatus *string
}

// Saved is a bookmark of a job by a user.
type Saved struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	JobID   uuid.UUID
	SavedAt time.Time
	Job     Job
}
