package billing

import (
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/pageforge/PageForge/app/models"
)

// CheckoutService wraps the Stripe API client for customer and checkout
// operations. The client is injected per process instead of a package-level
// singleton.
type CheckoutService struct {
	api *client.API
}

// NewCheckoutService creates a checkout service with an explicit API key.
func NewCheckoutService(apiKey string) *CheckoutService {
	return NewCheckoutServiceWithBackends(apiKey, nil)
}

// NewCheckoutServiceWithBackends allows overriding the provider backends,
// used to point the client at a stub server in tests.
func NewCheckoutServiceWithBackends(apiKey string, backends *stripe.Backends) *CheckoutService {
	api := &client.API{}
	api.Init(apiKey, backends)
	return &CheckoutService{api: api}
}

// EnsureCustomer returns the user's Stripe customer id, creating the remote
// customer when the user has none yet.
func (s *CheckoutService) EnsureCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	cust, err := s.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Metadata: map[string]string{
			"user_id": user.ID,
		},
	})
	if err != nil {
		return "", err
	}
	return cust.ID, nil
}

// CreateCheckoutSession starts a subscription-mode checkout for one plan.
// The application user id rides along as client_reference_id so the
// reconciler can link the customer on checkout.session.completed.
func (s *CheckoutService) CreateCheckoutSession(user *models.User, plan *models.SubscriptionPlan, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	if plan.StripePriceID == "" {
		return nil, errors.New("plan has no stripe price id")
	}

	customerID, err := s.EnsureCustomer(user)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:           stripe.String(customerID),
		ClientReferenceID:  stripe.String(user.ID),
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"userId": user.ID,
			"planId": plan.ID,
		},
	}

	return s.api.CheckoutSessions.New(params)
}

// CreateProductAndPrice creates the remote product and recurring price for a
// new plan and returns the price id for the local catalog.
func (s *CheckoutService) CreateProductAndPrice(plan *models.SubscriptionPlan) (string, error) {
	product, err := s.api.Products.New(&stripe.ProductParams{
		Name:        stripe.String(plan.Name),
		Description: stripe.String(plan.Description),
	})
	if err != nil {
		return "", err
	}

	price, err := s.api.Prices.New(&stripe.PriceParams{
		UnitAmount: stripe.Int64(plan.Price),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Product:    stripe.String(product.ID),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(plan.Interval),
		},
	})
	if err != nil {
		return "", err
	}
	return price.ID, nil
}

// CancelSubscription cancels a remote subscription immediately.
func (s *CheckoutService) CancelSubscription(subscriptionID string) error {
	_, err := s.api.Subscriptions.Cancel(subscriptionID, nil)
	return err
}

// CancelActiveSubscriptions cancels every active subscription of a customer.
// The local user record is not touched here; the provider emits
// customer.subscription.deleted and the reconciler applies the transition.
func (s *CheckoutService) CancelActiveSubscriptions(customerID string) (int, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}

	canceled := 0
	iter := s.api.Subscriptions.List(params)
	for iter.Next() {
		if err := s.CancelSubscription(iter.Subscription().ID); err != nil {
			return canceled, err
		}
		canceled++
	}
	return canceled, iter.Err()
}
