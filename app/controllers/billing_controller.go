package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/billing"
	"github.com/pageforge/PageForge/internal/pkg/database"
	"github.com/pageforge/PageForge/internal/pkg/env"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

// stripeAPIKey resolves the Stripe secret key, preferring the environment
// over the admin-managed api_keys table.
func stripeAPIKey() (string, error) {
	if key := env.GetEnv("STRIPE_SECRET_KEY", ""); key != "" {
		return key, nil
	}
	stored, err := repository.GetGlobalFactory().GetAPIKeyRepository().GetByService(models.ServiceStripe)
	if err != nil {
		return "", errors.New("Stripe API key is not configured")
	}
	return stored.APIKey, nil
}

// HandleBillingCheckout creates a subscription checkout session for the
// selected plan and redirects the user to Stripe.
func HandleBillingCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	planID := c.FormValue("plan_id")
	if planID == "" {
		return flashError(c, "No plan selected", "/pricing")
	}

	repos := repository.GetGlobalFactory()
	plan, err := repos.GetSubscriptionPlanRepository().GetByID(planID)
	if err != nil || !plan.Active {
		return flashError(c, "Plan not found", "/pricing")
	}

	user, err := repos.GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "Account could not be loaded", "/pricing")
	}

	apiKey, err := stripeAPIKey()
	if err != nil {
		return flashError(c, "Billing is not configured", "/pricing")
	}
	svc := billing.NewCheckoutService(apiKey)

	customerID, err := svc.EnsureCustomer(user)
	if err != nil {
		log.Errorf("stripe customer for user %s failed: %v", user.ID, err)
		return flashError(c, "Checkout could not be started", "/pricing")
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID != customerID {
		if err := repos.GetUserRepository().UpdateFields(user.ID, map[string]interface{}{
			"stripe_customer_id": customerID,
		}); err != nil {
			return flashError(c, "Checkout could not be started", "/pricing")
		}
		user.StripeCustomerID = &customerID
	}

	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
	checkout, err := svc.CreateCheckoutSession(user, plan,
		base+"/dashboard?checkout=success",
		base+"/pricing?checkout=canceled",
	)
	if err != nil {
		log.Errorf("stripe checkout session failed: %v", err)
		return flashError(c, "Checkout could not be started", "/pricing")
	}

	return c.Redirect(checkout.URL, fiber.StatusSeeOther)
}

// HandleBillingCancel cancels the user's active subscriptions at the
// provider. The user record stays untouched; the provider's
// customer.subscription.deleted event drives the local transition.
func HandleBillingCancel(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "Account could not be loaded", "/dashboard")
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		return flashError(c, "No subscription to cancel", "/dashboard")
	}

	apiKey, err := stripeAPIKey()
	if err != nil {
		return flashError(c, "Billing is not configured", "/dashboard")
	}

	canceled, err := billing.NewCheckoutService(apiKey).CancelActiveSubscriptions(*user.StripeCustomerID)
	if err != nil {
		log.Errorf("subscription cancel for user %s failed: %v", user.ID, err)
		return flashError(c, "Subscription could not be canceled", "/dashboard")
	}
	if canceled == 0 {
		return flashError(c, "No active subscription found", "/dashboard")
	}

	return flashSuccess(c, "Subscription canceled", "/dashboard")
}

// webhookStatus maps a reconciliation outcome to the HTTP status the
// provider should see. Anything past signature verification acks with 2xx.
func webhookStatus(outcome billing.Outcome) int {
	if outcome.Status == billing.OutcomeRejected {
		return fiber.StatusBadRequest
	}
	return fiber.StatusOK
}

// HandleStripeWebhook verifies and reconciles one provider event.
// 400 is reserved for signature failures; store errors return 500 so the
// provider retries; every other outcome is acknowledged.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	event, err := billing.VerifyEvent(payload, signature, secret)
	if err != nil {
		log.Warnf("stripe webhook signature rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
	}

	reconciler := billing.NewReconcilerFromDB(database.GetDB())
	outcome, err := reconciler.ProcessEvent(c.UserContext(), event)
	if err != nil {
		log.Errorf("stripe event %s (%s) failed: %v", event.ID, event.Type, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "event could not be applied"})
	}

	if outcome.Status == billing.OutcomeSkipped {
		log.Infof("stripe event %s (%s) skipped: %s", event.ID, event.Type, outcome.Reason)
	}

	return c.Status(webhookStatus(outcome)).JSON(fiber.Map{
		"status": string(outcome.Status),
	})
}
