package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"

	"github.com/pageforge/PageForge/app/models"
)

// Reconciler applies at most one user-record state transition per billing
// event. Lookup-then-update is a best-effort two-step operation; events for
// one customer arrive sequentially from the provider, so last-write-wins is
// accepted and no locking is done.
type Reconciler struct {
	repo Repository
}

// NewReconciler creates a reconciler from an injected repository.
func NewReconciler(repo Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// NewReconcilerFromDB creates a reconciler from a GORM DB handle.
func NewReconcilerFromDB(db *gorm.DB) *Reconciler {
	return NewReconciler(NewRepository(db))
}

// ProcessEvent dispatches one verified event. A returned error means the
// store failed and the delivery should be retried by the provider; every
// other outcome (applied or skipped) must be acknowledged with a 2xx.
func (r *Reconciler) ProcessEvent(ctx context.Context, event stripe.Event) (Outcome, error) {
	_ = ctx
	eventType := string(event.Type)

	switch eventType {
	case EventCheckoutSessionCompleted:
		return r.handleCheckoutCompleted(event)
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		return r.handleSubscriptionChanged(event)
	case EventSubscriptionDeleted:
		return r.handleSubscriptionDeleted(event)
	case EventInvoicePaymentFailed:
		return r.handleInvoicePaymentFailed(event)
	case EventInvoicePaymentSucceeded:
		// Status is driven by the subscription events.
		return skipped(eventType, "payment success carries no state change"), nil
	default:
		return skipped(eventType, "unhandled event type"), nil
	}
}

// handleCheckoutCompleted links the remote customer id to the local user
// carried on the checkout session. This is the only transition keyed by the
// application user id; all others locate the user by remote customer id.
func (r *Reconciler) handleCheckoutCompleted(event stripe.Event) (Outcome, error) {
	eventType := string(event.Type)

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return skipped(eventType, "malformed checkout session payload"), nil
	}

	if cs.Customer == nil || cs.Customer.ID == "" || cs.Subscription == nil || cs.Subscription.ID == "" {
		return skipped(eventType, "missing customer or subscription id in session"), nil
	}

	userID := cs.ClientReferenceID
	if userID == "" {
		userID = cs.Metadata["userId"]
	}
	if userID == "" {
		return skipped(eventType, "missing user id in session"), nil
	}

	err := r.repo.UpdateUserFields(userID, map[string]interface{}{
		"stripe_customer_id": cs.Customer.ID,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("linking customer %s to user %s: %w", cs.Customer.ID, userID, err)
	}
	return applied(eventType, userID), nil
}

// handleSubscriptionChanged writes the event's status and the plan interval
// resolved from the local plan catalog. An unresolvable plan or user is
// skipped: subscription events can arrive before the catalog is seeded, and
// a provider retry would not change that.
func (r *Reconciler) handleSubscriptionChanged(event stripe.Event) (Outcome, error) {
	eventType := string(event.Type)

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return skipped(eventType, "malformed subscription payload"), nil
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return skipped(eventType, "missing customer id"), nil
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return skipped(eventType, "subscription carries no price"), nil
	}

	priceID := sub.Items.Data[0].Price.ID
	interval, err := r.repo.GetPlanIntervalByPriceID(priceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped(eventType, "no plan mapped to price "+priceID), nil
		}
		return Outcome{}, fmt.Errorf("resolving plan for price %s: %w", priceID, err)
	}

	user, err := r.repo.GetUserByStripeCustomerID(sub.Customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped(eventType, "no user linked to customer "+sub.Customer.ID), nil
		}
		return Outcome{}, fmt.Errorf("looking up customer %s: %w", sub.Customer.ID, err)
	}

	err = r.repo.UpdateUserFields(user.ID, map[string]interface{}{
		"subscription_status": string(sub.Status),
		"subscription_plan":   interval,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("updating subscription state for user %s: %w", user.ID, err)
	}
	return applied(eventType, user.ID), nil
}

// handleSubscriptionDeleted marks the user canceled and clears the plan.
func (r *Reconciler) handleSubscriptionDeleted(event stripe.Event) (Outcome, error) {
	eventType := string(event.Type)

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return skipped(eventType, "malformed subscription payload"), nil
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return skipped(eventType, "missing customer id"), nil
	}

	user, err := r.repo.GetUserByStripeCustomerID(sub.Customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped(eventType, "no user linked to customer "+sub.Customer.ID), nil
		}
		return Outcome{}, fmt.Errorf("looking up customer %s: %w", sub.Customer.ID, err)
	}

	err = r.repo.UpdateUserFields(user.ID, map[string]interface{}{
		"subscription_status": models.SubscriptionStatusCanceled,
		"subscription_plan":   nil,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("canceling subscription for user %s: %w", user.ID, err)
	}
	return applied(eventType, user.ID), nil
}

// handleInvoicePaymentFailed marks the user past_due.
func (r *Reconciler) handleInvoicePaymentFailed(event stripe.Event) (Outcome, error) {
	eventType := string(event.Type)

	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return skipped(eventType, "malformed invoice payload"), nil
	}
	if inv.Customer == nil || inv.Customer.ID == "" {
		return skipped(eventType, "missing customer id"), nil
	}

	user, err := r.repo.GetUserByStripeCustomerID(inv.Customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped(eventType, "no user linked to customer "+inv.Customer.ID), nil
		}
		return Outcome{}, fmt.Errorf("looking up customer %s: %w", inv.Customer.ID, err)
	}

	err = r.repo.UpdateUserFields(user.ID, map[string]interface{}{
		"subscription_status": models.SubscriptionStatusPastDue,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("marking user %s past_due: %w", user.ID, err)
	}
	return applied(eventType, user.ID), nil
}
