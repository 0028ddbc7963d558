package dto

import (
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/search"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Company            string     `json:"company"`
	Skills             string     `json:"skills"`
	Location           string     `json:"location"`
	Description        string     `json:"description"`
	SalaryMin          *int       `json:"salaryMin"`
	SalaryMax          *int       `json:"salaryMax"`
	ExperienceRequired *int       `json:"experienceRequired"`
	JobType            string     `json:"jobType"`
	Status             string     `json:"status"`
	PostedBy           *uuid.UUID `json:"postedBy"`
	ExternalSource     *string    `json:"externalSource,omitempty"`
	ExternalURL        *string    `json:"externalUrl,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
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
		ExternalSource:     j.ExternalSource,
		ExternalURL:        j.ExternalURL,
		CreatedAt:          j.CreatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type JobMatchResponse struct {
	JobResponse
	MatchScore int `json:"matchScore"`
}

func NewJobMatchResponses(items []matching.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, JobMatchResponse{JobResponse: NewJobResponse(m.Job), MatchScore: m.Score})
	}
	return out
}

type SearchResultResponse struct {
	JobResponse
	Score           int `json:"score"`
	MatchPercentage int `json:"matchPercentage"`
}

func NewSearchResultResponses(items []search.Result) []SearchResultResponse {
	out := make([]SearchResultResponse, 0, len(items))
	for _, r := range items {
		out = append(out, SearchResultResponse{
			JobResponse:     NewJobResponse(r.Job),
			Score:           r.Score,
			MatchPercentage: r.MatchPercentage,
		})
	}
	return out
}

type MatchedCandidateResponse struct {
	UserID     uuid.UUID `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Headline   *string   `json:"headline"`
	Experience *int      `json:"experience"`
	Skills     string    `json:"skills"`
	MatchScore int       `json:"matchScore"`
}

type MatchedCandidatesResponse struct {
	JobID      uuid.UUID                  `json:"jobId"`
	JobTitle   string                     `json:"jobTitle"`
	Candidates []MatchedCandidateResponse `json:"candidates"`
}

func NewMatchedCandidatesResponse(j job.Job, items []matching.CandidateMatch) MatchedCandidatesResponse {
	out := MatchedCandidatesResponse{
		JobID:      j.ID,
		JobTitle:   j.Title,
		Candidates: make([]MatchedCandidateResponse, 0, len(items)),
	}
	for _, m := range items {
		out.Candidates = append(out.Candidates, MatchedCandidateResponse{
			UserID:     m.Candidate.UserID,
			Name:       m.Candidate.Name,
			Email:      m.Candidate.Email,
			Headline:   m.Candidate.Headline,
			Experience: m.Candidate.Experience,
			Skills:     m.Candidate.Skills,
			MatchScore: m.Score,
		})
	}
	return out
}

type AdminJobResponse struct {
	JobResponse
	RecruiterName   *string `json:"recruiterName"`
	RecruiterEmail  *string `json:"recruiterEmail"`
	RecruiterStatus *string `json:"recruiterStatus"`
}

func NewAdminJobResponses(items []job.WithOwner) []AdminJobResponse {
	out := make([]AdminJobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, AdminJobResponse{
			JobResponse:     NewJobResponse(j.Job),
			RecruiterName:   j.RecruiterName,
			RecruiterEmail:  j.RecruiterEmail,
			RecruiterStatus: j.RecruiterStatus,
		})
	}
	return out
}

type SavedJobResponse struct {
	ID      uuid.UUID   `json:"id"`
	JobID   uuid.UUID   `json:"jobId"`
	SavedAt time.Time   `json:"savedAt"`
	Job     JobResponse `json:"job"`
}

func NewSavedJobResponse(s job.Saved) SavedJobResponse {
	return SavedJobResponse{ID: s.ID, JobID: s.JobID, SavedAt: s.SavedAt, Job: NewJobResponse(s.Job)}
}

func NewSavedJobResponses(items []job.Saved) []SavedJobResponse {
	out := make([]SavedJobResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSavedJobResponse(s))
	}
	return out
}
