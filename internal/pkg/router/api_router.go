package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/pageforge/PageForge/app/controllers"
	"github.com/pageforge/PageForge/internal/pkg/middleware"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Provider webhooks stay outside the rate-limited group: deliveries
	// arrive in bursts from the provider's IPs and must always be
	// acknowledged. Signature verification happens in the controller.
	app.Post("/api/webhooks/stripe", controllers.HandleStripeWebhook)

	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "PageForge API",
		})
	})

	// Session-authenticated JSON API
	v1 := api.Group("/v1", middleware.RequireAPISessionAuth)
	v1.Post("/chat", controllers.HandleChat)
	v1.Post("/covers", controllers.HandleCoverGenerate)
}
