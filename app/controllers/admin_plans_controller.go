package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/internal/pkg/billing"
)

// HandlePlans renders the subscription plan catalog.
func (ac *AdminController) HandlePlans(c *fiber.Ctx) error {
	plans, err := ac.repos.Plan.List()
	if err != nil {
		return ac.handleError(c, "Failed to load plans", err)
	}

	return render(c, "admin/plans", fiber.Map{
		"Title": "Plans",
		"Plans": plans,
	})
}

func planFromForm(c *fiber.Ctx, plan *models.SubscriptionPlan) error {
	plan.Name = strings.TrimSpace(c.FormValue("name", plan.Name))
	plan.Description = strings.TrimSpace(c.FormValue("description", plan.Description))
	plan.Interval = c.FormValue("interval", plan.Interval)
	plan.Features = c.FormValue("features", plan.Features)
	plan.StripePriceID = strings.TrimSpace(c.FormValue("stripe_price_id", plan.StripePriceID))
	plan.Active = c.FormValue("active", strconv.FormatBool(plan.Active)) == "true"

	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must be a non-negative amount in cents")
		}
		plan.Price = price
	}

	return plan.Validate()
}

// HandlePlanCreate adds a plan. When no Stripe price id is supplied the
// remote product and price are created first.
func (ac *AdminController) HandlePlanCreate(c *fiber.Ctx) error {
	plan := &models.SubscriptionPlan{Active: true}
	if err := planFromForm(c, plan); err != nil {
		return flashError(c, "Invalid plan data", "/dashboard/admin/plans")
	}

	if plan.StripePriceID == "" {
		apiKey, err := stripeAPIKey()
		if err != nil {
			return flashError(c, "Billing is not configured", "/dashboard/admin/plans")
		}
		priceID, err := billing.NewCheckoutService(apiKey).CreateProductAndPrice(plan)
		if err != nil {
			return ac.handleError(c, "Stripe product could not be created", err)
		}
		plan.StripePriceID = priceID
	}

	if err := ac.repos.Plan.Create(plan); err != nil {
		return ac.handleError(c, "Plan could not be saved", err)
	}

	return flashSuccess(c, "Plan created", "/dashboard/admin/plans")
}

// HandlePlanUpdate edits a plan's catalog fields.
func (ac *AdminController) HandlePlanUpdate(c *fiber.Ctx) error {
	plan, err := ac.repos.Plan.GetByID(c.Params("id"))
	if err != nil {
		return flashError(c, "Plan not found", "/dashboard/admin/plans")
	}

	if err := planFromForm(c, plan); err != nil {
		return flashError(c, "Invalid plan data", "/dashboard/admin/plans")
	}

	if err := ac.repos.Plan.Update(plan); err != nil {
		return ac.handleError(c, "Plan could not be saved", err)
	}

	return flashSuccess(c, "Plan updated", "/dashboard/admin/plans")
}

// HandlePlanDelete removes a plan from the catalog.
func (ac *AdminController) HandlePlanDelete(c *fiber.Ctx) error {
	if err := ac.repos.Plan.Delete(c.Params("id")); err != nil {
		return ac.handleError(c, "Plan could not be deleted", err)
	}

	return flashSuccess(c, "Plan deleted", "/dashboard/admin/plans")
}
