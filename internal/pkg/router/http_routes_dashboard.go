package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/controllers"
	"github.com/pageforge/PageForge/internal/pkg/middleware"
)

func (h HttpRouter) registerDashboardRoutes(app *fiber.App) {
	group := csrfProtected(app)
	dashboard := group.Group("/dashboard", middleware.RequireAuth)

	dashboard.Get("/", controllers.HandleDashboard)

	// Books
	dashboard.Get("/books", controllers.HandleBookList)
	dashboard.Post("/books", controllers.HandleBookCreate)
	dashboard.Get("/books/:id", controllers.HandleBookShow)
	dashboard.Post("/books/update/:id", controllers.HandleBookUpdate)
	dashboard.Post("/books/delete/:id", controllers.HandleBookDelete)

	// Assistant drafting
	dashboard.Get("/create-book", controllers.HandleCreateBookPage)
	dashboard.Post("/create-book/chat", controllers.HandleChat)

	// Covers
	dashboard.Get("/create-cover", controllers.HandleCreateCoverPage)
	dashboard.Post("/create-cover", controllers.HandleCoverGenerate)
	dashboard.Get("/covers", controllers.HandleCoverList)
	dashboard.Post("/covers/delete/:id", controllers.HandleCoverDelete)

	// Billing
	dashboard.Post("/billing/checkout", controllers.HandleBillingCheckout)
	dashboard.Post("/billing/cancel", controllers.HandleBillingCancel)
}
