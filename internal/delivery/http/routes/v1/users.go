package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterAccount(r fiber.Router, profile *handler.ProfileHandler, notifications *handler.NotificationHandler, auth fiber.Handler) {
	if r == nil {
		return
	}

	if profile != nil {
		profile.RegisterRoutes(r.Group("/profile", auth))
	}
	if notifications != nil {
		notifications.RegisterRoutes(r.Group("/notifications", auth))
	}
}
