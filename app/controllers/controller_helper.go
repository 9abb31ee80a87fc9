package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

// render wraps c.Render and injects the values every page template needs.
func render(c *fiber.Ctx, template string, data fiber.Map) error {
	userCtx := usercontext.GetUserContext(c)

	if data == nil {
		data = fiber.Map{}
	}
	data["IsLoggedIn"] = userCtx.IsLoggedIn
	data["IsAdmin"] = userCtx.IsAdmin
	data["UserEmail"] = userCtx.Email
	data["Flash"] = flash.Get(c)
	if csrf := c.Locals("csrf"); csrf != nil {
		data["CSRFToken"] = csrf
	}

	return c.Render(template, data, "layouts/main")
}

func flashError(c *fiber.Ctx, message, redirectTo string) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect(redirectTo)
}

func flashSuccess(c *fiber.Ctx, message, redirectTo string) error {
	fm := fiber.Map{
		"type":    "success",
		"message": message,
	}
	return flash.WithSuccess(c, fm).Redirect(redirectTo)
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) (offset, limit int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return (page - 1) * limit, limit
}
