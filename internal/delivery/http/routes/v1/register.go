package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs          *handler.JobsHandler
	Applications  *handler.ApplicationHandler
	Admin         *handler.AdminHandler
	Notifications *handler.NotificationHandler
	Profile       *handler.ProfileHandler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}
	auth := authMw.Middleware()

	RegisterJobs(r.Group("/jobs"), h.Jobs, auth)
	RegisterAccount(r, h.Profile, h.Notifications, auth)

	if h.Applications != nil {
		h.Applications.RegisterRoutes(r.Group("/applications", auth))
	}
	if h.Admin != nil {
		h.Admin.RegisterRoutes(r.Group("/admin", auth, middleware.RequireRoles(user.RoleAdmin)))
	}
}
