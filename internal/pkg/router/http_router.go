package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/controllers"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/middleware"
	"github.com/pageforge/PageForge/internal/pkg/oauth"
	"github.com/pageforge/PageForge/internal/pkg/session"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Resolve the session once per request, then route every request
	// through the access guard.
	app.Use(middleware.UserContextMiddleware)
	app.Use(middleware.AccessGuard())

	admin := controllers.NewAdminController(repository.GetGlobalFactory().GetRepositories())

	h.registerPublicRoutes(app)
	h.registerDashboardRoutes(app)
	h.registerAdminRoutes(app, admin)
}
