package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/pageforge/PageForge/app/controllers"
	"github.com/pageforge/PageForge/internal/pkg/env"
	"github.com/pageforge/PageForge/internal/pkg/middleware"
)

// csrfProtected wraps a route group with CORS and form CSRF protection.
// API routes carry no CSRF token and are excluded.
func csrfProtected(app *fiber.App) fiber.Router {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			// JSON endpoints carry no form token; the chat endpoint is
			// session-authenticated like the /api/ group.
			return strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/dashboard/create-book/chat"
		},
	}

	return app.Group("", cors.New(), csrf.New(csrfConf))
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	group := csrfProtected(app)

	group.Get("/", controllers.HandleHome)
	group.Get("/pricing", controllers.HandlePricing)

	// Auth
	group.Get("/login", controllers.HandleLogin)
	group.Post("/login", controllers.HandleLogin)
	group.Get("/signup", controllers.HandleSignup)
	group.Post("/signup", controllers.HandleSignup)
	group.Get("/reset-password", controllers.HandleResetPassword)
	group.Post("/reset-password", controllers.HandleResetPassword)
	group.Get("/update-password", controllers.HandleUpdatePassword)
	group.Post("/update-password", controllers.HandleUpdatePassword)
	group.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/callback", controllers.HandleOAuthCallback)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
