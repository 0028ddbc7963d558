package dto

import (
	"time"

	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID `json:"id"`
	ApplicantID    uuid.UUID `json:"applicantId"`
	JobID          uuid.UUID `json:"jobId"`
	Status         string    `json:"status"`
	AppliedAt      time.Time `json:"appliedAt"`
	JobTitle       string    `json:"jobTitle,omitempty"`
	Company        string    `json:"company,omitempty"`
	ApplicantName  string    `json:"applicantName,omitempty"`
	ApplicantEmail string    `json:"applicantEmail,omitempty"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		ApplicantID: a.ApplicantID,
		JobID:       a.JobID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

func NewApplicationDetailResponse(d application.Detail) ApplicationResponse {
	out := NewApplicationResponse(d.Application)
	out.JobTitle = d.JobTitle
	out.Company = d.JobCompany
	out.ApplicantName = d.ApplicantName
	out.ApplicantEmail = d.ApplicantEmail
	return out
}

func NewApplicationDetailResponses(items []application.Detail) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewApplicationDetailResponse(d))
	}
	return out
}
