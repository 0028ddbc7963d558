package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid user status")

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleJobseeker, RoleRecruiter, RoleAdmin:
		return r, true
	}
	return "", false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusActive, StatusSuspended:
		return st, nil
	}
	return "", ErrInvalidStatus
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
}

func (u User) IsSuspended() bool {
	return u.Status == StatusSuspended
}

type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Headline   *string
	Experience *int
	Skills     string
	ResumeURL  *string
}

func (p Profile) HasResume() bool {
	return p.ResumeURL != nil && strings.TrimSpace(*p.ResumeURL) != ""
}

// Candidate is a profile joined with its owning user.
type Candidate struct {
	Profile
	Name  string
	Email string
	Role  Role
}
