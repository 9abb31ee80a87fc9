package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

func HandleHome(c *fiber.Ctx) error {
	return render(c, "index", fiber.Map{"Title": "PageForge"})
}

func HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalFactory()
	bookCount, err := repos.GetBookRepository().CountByUserID(userCtx.UserID)
	if err != nil {
		bookCount = 0
	}
	coverCount, err := repos.GetBookCoverRepository().CountByUserID(userCtx.UserID)
	if err != nil {
		coverCount = 0
	}

	return render(c, "dashboard/index", fiber.Map{
		"Title":              "Dashboard",
		"BookCount":          bookCount,
		"CoverCount":         coverCount,
		"SubscriptionStatus": userCtx.SubscriptionStatus,
		"SubscriptionPlan":   userCtx.SubscriptionPlan,
	})
}

// HandlePricing lists the active subscription plans.
func HandlePricing(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetSubscriptionPlanRepository().ListActive()
	if err != nil {
		return flashError(c, "Plans could not be loaded", "/")
	}

	return render(c, "pricing", fiber.Map{
		"Title": "Pricing",
		"Plans": plans,
	})
}
