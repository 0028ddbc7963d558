package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mixes public and authenticated routes, so auth is applied per route.
func RegisterJobs(r fiber.Router, jobsHandler *handler.JobsHandler, auth fiber.Handler) {
	if r == nil {
		return
	}
	if jobsHandler == nil {
		return
	}

	jobsHandler.RegisterRoutes(r, auth)
}
