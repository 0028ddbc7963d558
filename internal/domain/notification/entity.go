// Package notification defines the ledger record and its payloads.
//
// Every notification type carries its own payload struct. The set is closed:
// DecodePayload only knows the types declared here.
package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownType = errors.New("unknown notification type")

type Type string

const (
	TypeNewApplication    Type = "newApplication"
	TypeApplicationUpdate Type = "applicationUpdate"
	TypeJobReopened       Type = "jobReopened"
	TypeRecommendedJob    Type = "recommendedJob"
	TypeJobStatusUpdate   Type = "jobStatusUpdate"
	TypeJobDeleted        Type = "jobDeleted"
	TypeAccountBanned     Type = "accountBanned"
	TypeAccountUnbanned   Type = "accountUnbanned"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Message   string
	Payload   Payload
	IsRead    bool
	CreatedAt time.Time
}

type Payload interface {
	Type() Type
}

type NewApplicationPayload struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	JobID         uuid.UUID `json:"jobId"`
}

type ApplicationUpdatePayload struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	JobID         uuid.UUID `json:"jobId"`
	JobTitle      string    `json:"jobTitle"`
	Company       string    `json:"company"`
	Status        string    `json:"status"`
}

type JobReopenedPayload struct {
	JobID      uuid.UUID `json:"jobId"`
	MatchScore int       `json:"matchScore"`
}

type RecommendedJobPayload struct {
	JobID      uuid.UUID `json:"jobId"`
	MatchScore int       `json:"matchScore"`
}

type JobStatusUpdatePayload struct {
	JobID     uuid.UUID `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

type JobDeletedPayload struct {
	JobID    uuid.UUID `json:"jobId"`
	JobTitle string    `json:"jobTitle"`
}

// AccountBannedPayload.JobsClosed counts the open jobs paused by the suspension.
type AccountBannedPayload struct {
	JobsClosed int `json:"jobsClosed"`
}

type AccountUnbannedPayload struct {
	JobsReopened int `json:"jobsReopened"`
}

func (NewApplicationPayload) Type() Type    { return TypeNewApplication }
func (ApplicationUpdatePayload) Type() Type { return TypeApplicationUpdate }
func (JobReopenedPayload) Type() Type       { return TypeJobReopened }
func (RecommendedJobPayload) Type() Type    { return TypeRecommendedJob }
func (JobStatusUpdatePayload) Type() Type   { return TypeJobStatusUpdate }
func (JobDeletedPayload) Type() Type        { return TypeJobDeleted }
func (AccountBannedPayload) Type() Type     { return TypeAccountBanned }
func (AccountUnbannedPayload) Type() Type   { return TypeAccountUnbanned }

func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func DecodePayload(t Type, raw []byte) (Payload, error) {
	var p Payload
	switch t {
	case TypeNewApplication:
		p = &NewApplicationPayload{}
	case TypeApplicationUpdate:
		p = &ApplicationUpdatePayload{}
	case TypeJobReopened:
		p = &JobReopenedPayload{}
	case TypeRecommendedJob:
		p = &RecommendedJobPayload{}
	case TypeJobStatusUpdate:
		p = &JobStatusUpdatePayload{}
	case TypeJobDeleted:
		p = &JobDeletedPayload{}
	case TypeAccountBanned:
		p = &AccountBannedPayload{}
	case TypeAccountUnbanned:
		p = &AccountUnbannedPayload{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return deref(p), nil
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return deref(p), nil
}

func deref(p Payload) Payload {
	switch v := p.(type) {
	case *NewApplicationPayload:
		return *v
	case *ApplicationUpdatePayload:
		return *v
	case *JobReopenedPayload:
		return *v
	case *RecommendedJobPayload:
		return *v
	case *JobStatusUpdatePayload:
		return *v
	case *JobDeletedPayload:
		return *v
	case *AccountBannedPayload:
		return *v
	case *AccountUnbannedPayload:
		return *v
	}
	return p
}
