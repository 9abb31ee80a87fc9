package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/controllers"
	"github.com/pageforge/PageForge/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App, admin *controllers.AdminController) {
	group := csrfProtected(app)
	adminGroup := group.Group("/dashboard/admin", middleware.RequireAdmin)

	adminGroup.Get("/", admin.HandleDashboard)

	// User management
	adminGroup.Get("/users", admin.HandleUsers)
	adminGroup.Post("/users/role/:id", admin.HandleUserRole)
	adminGroup.Post("/users/delete/:id", admin.HandleUserDelete)

	// Service credentials
	adminGroup.Get("/api-keys", admin.HandleAPIKeys)
	adminGroup.Post("/api-keys", admin.HandleAPIKeyUpsert)
	adminGroup.Post("/api-keys/delete/:service", admin.HandleAPIKeyDelete)

	// Assistant catalog
	adminGroup.Get("/assistants", admin.HandleAssistants)
	adminGroup.Post("/assistants", admin.HandleAssistantCreate)
	adminGroup.Post("/assistants/update/:id", admin.HandleAssistantUpdate)
	adminGroup.Post("/assistants/delete/:id", admin.HandleAssistantDelete)

	// Plan catalog
	adminGroup.Get("/plans", admin.HandlePlans)
	adminGroup.Post("/plans", admin.HandlePlanCreate)
	adminGroup.Post("/plans/update/:id", admin.HandlePlanUpdate)
	adminGroup.Post("/plans/delete/:id", admin.HandlePlanDelete)
}
