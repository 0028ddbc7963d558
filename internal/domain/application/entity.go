package application

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid application status")

// Status is the review state of an application. Applications are created pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus accepts "accepted" as an alias of approved.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "accepted" {
		return StatusApproved, nil
	}
	st := Status(v)
	switch st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

type Application struct {
	ID          uuid.UUID
	ApplicantID uuid.UUID
	JobID       uuid.UUID
	Status      Status
	AppliedAt   time.Time
}

// Detail is an application joined with the job and applicant it refers to.
type Detail struct {
	Application
	JobTitle       string
	JobCompany     string
	JobPostedBy    *uuid.UUID
	ApplicantName  string
	ApplicantEmail string
}
