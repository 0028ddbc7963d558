package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/search"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	jobs  usecase.JobUsecase
	saved usecase.SavedJobUsecase
}

type createJobRequest struct {
	Title              string `json:"title"`
	Company            string `json:"company"`
	Skills             string `json:"skills"`
	Location           string `json:"location"`
	Description        string `json:"description"`
	SalaryMin          *int   `json:"salaryMin"`
	SalaryMax          *int   `json:"salaryMax"`
	ExperienceRequired *int   `json:"experienceRequired"`
	JobType            string `json:"jobType"`
}

func NewJobsHandler(jobs usecase.JobUsecase, saved usecase.SavedJobUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, saved: saved}
}

// RegisterRoutes mounts /jobs. Static segments are registered before /:id.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	recruiter := middleware.RequireRoles(user.RoleRecruiter)

	r.Get("/", h.ListJobs)
	r.Get("/search", h.Search)
	r.Get("/recommend", auth, h.Recommend)
	r.Get("/mine", auth, recruiter, h.ListMine)
	r.Get("/saved", auth, h.ListSaved)
	r.Post("/", auth, recruiter, h.CreateJob)
	r.Get("/:id", h.GetJob)
	r.Patch("/:id/status", auth, recruiter, h.UpdateStatus)
	r.Get("/:id/matched-candidates", auth, recruiter, h.MatchedCandidates)
	r.Post("/:jobId/save", auth, h.Save)
	r.Delete("/:jobId/save", auth, h.Unsave)
}

func (h *JobsHandler) ListJobs(c fiber.Ctx) error {
	items, err := h.jobs.ListJobs(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobsHandler) Search(c fiber.Ctx) error {
	f, err := search.ParseFilters(c.Queries())
	if err != nil {
		return mapUsecaseError(err)
	}
	items, err := h.jobs.Search(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSearchResultResponses(items))
}

func (h *JobsHandler) Recommend(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.jobs.Recommend(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchResponses(items))
}

func (h *JobsHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.jobs.ListMyJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobsHandler) CreateJob(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.CreateJob(c.Context(), userID, usecase.CreateJobInput{
		Title:              req.Title,
		Company:            req.Company,
		Skills:             req.Skills,
		Location:           req.Location,
		Description:        req.Description,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		ExperienceRequired: req.ExperienceRequired,
		JobType:            req.JobType,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(j))
}

func (h *JobsHandler) GetJob(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	j, err := h.jobs.GetJob(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	status, err := bindStatus(c)
	if err != nil {
		return err
	}

	j, err := h.jobs.UpdateJobStatus(c.Context(), userID, jobID, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job status updated", dto.NewJobResponse(j))
}

func (h *JobsHandler) MatchedCandidates(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.jobs.MatchedCandidates(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchedCandidatesResponse(res.Job, res.Candidates))
}

func (h *JobsHandler) Save(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}

	s, err := h.saved.Save(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job saved", dto.NewSavedJobResponse(s))
}

func (h *JobsHandler) Unsave(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.saved.Remove(c.Context(), userID, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job removed from saved", nil)
}

func (h *JobsHandler) ListSaved(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.saved.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedJobResponses(items))
}
