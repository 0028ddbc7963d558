package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// RegisterRoutes expects r to be restricted to admins already.
func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users", h.ListUsers)
	r.Patch("/users/:id/status", h.UpdateUserStatus)
	r.Get("/jobs", h.ListJobs)
	r.Patch("/jobs/:id/status", h.UpdateJobStatus)
	r.Delete("/jobs/:id", h.DeleteJob)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	items, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponses(items))
}

func (h *AdminHandler) UpdateUserStatus(c fiber.Ctx) error {
	userID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	status, err := bindStatus(c)
	if err != nil {
		return err
	}

	u, err := h.uc.UpdateUserStatus(c.Context(), userID, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "User status updated", dto.NewUserResponse(u))
}

func (h *AdminHandler) ListJobs(c fiber.Ctx) error {
	items, err := h.uc.ListJobs(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdminJobResponses(items))
}

func (h *AdminHandler) UpdateJobStatus(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	status, err := bindStatus(c)
	if err != nil {
		return err
	}

	j, err := h.uc.UpdateJobStatus(c.Context(), jobID, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job status updated", dto.NewJobResponse(j))
}

func (h *AdminHandler) DeleteJob(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.DeleteJob(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", map[string]any{"id": res.ID, "title": res.Title})
}
