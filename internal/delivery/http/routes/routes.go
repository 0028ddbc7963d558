package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	api    v1.Handlers
	auth   *middleware.AuthMiddleware
	ws     *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, api v1.Handlers, auth *middleware.AuthMiddleware, wsHandler *ws.Handler) *Registry {
	return &Registry{health: health, api: api, auth: auth, ws: wsHandler}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws", r.ws.HandleWS)
	}
}

// The REST surface is mounted at the root so paths match what clients use.
func (r *Registry) registerAPI(app *fiber.App) {
	v1.Register(app, r.api, r.auth)
}
