package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"

	"github.com/pageforge/PageForge/app/models"
)

type fakeRepo struct {
	users map[string]*models.User // keyed by user id
	plans map[string]string       // price id -> interval
	fail  error                   // forces store failures when set
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: make(map[string]*models.User),
		plans: make(map[string]string),
	}
}

func (f *fakeRepo) addUser(id string, customerID string) *models.User {
	u := &models.User{ID: id, Email: id + "@example.com"}
	if customerID != "" {
		u.StripeCustomerID = &customerID
	}
	f.users[id] = u
	return u
}

func (f *fakeRepo) GetUserByStripeCustomerID(customerID string) (*models.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for _, u := range f.users {
		if u.StripeCustomerID != nil && *u.StripeCustomerID == customerID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateUserFields(id string, fields map[string]interface{}) error {
	if f.fail != nil {
		return f.fail
	}
	u, ok := f.users[id]
	if !ok {
		// Matches store semantics: updating a missing row affects nothing.
		return nil
	}
	for k, v := range fields {
		switch k {
		case "stripe_customer_id":
			s := v.(string)
			u.StripeCustomerID = &s
		case "subscription_status":
			if v == nil {
				u.SubscriptionStatus = nil
			} else {
				s := v.(string)
				u.SubscriptionStatus = &s
			}
		case "subscription_plan":
			if v == nil {
				u.SubscriptionPlan = nil
			} else {
				s := v.(string)
				u.SubscriptionPlan = &s
			}
		}
	}
	return nil
}

func (f *fakeRepo) GetPlanIntervalByPriceID(priceID string) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	if interval, ok := f.plans[priceID]; ok {
		return interval, nil
	}
	return "", gorm.ErrRecordNotFound
}

func event(eventType string, object map[string]interface{}) stripe.Event {
	raw, _ := json.Marshal(object)
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestCheckoutCompletedLinksCustomer(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("u1", "")
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventCheckoutSessionCompleted, map[string]interface{}{
		"customer":            "cus_1",
		"subscription":        "sub_1",
		"client_reference_id": "u1",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeApplied || out.UserID != "u1" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	u := repo.users["u1"]
	if u.StripeCustomerID == nil || *u.StripeCustomerID != "cus_1" {
		t.Fatalf("customer id not linked: %+v", u)
	}
	if u.SubscriptionStatus != nil || u.SubscriptionPlan != nil {
		t.Fatalf("checkout must not touch subscription fields: %+v", u)
	}
}

func TestCheckoutCompletedMissingIDsSkips(t *testing.T) {
	tests := []struct {
		name   string
		object map[string]interface{}
	}{
		{"no customer", map[string]interface{}{"subscription": "sub_1", "client_reference_id": "u1"}},
		{"no subscription", map[string]interface{}{"customer": "cus_1", "client_reference_id": "u1"}},
		{"no user id", map[string]interface{}{"customer": "cus_1", "subscription": "sub_1"}},
	}

	for _, tt := range tests {
		repo := newFakeRepo()
		repo.addUser("u1", "")
		r := NewReconciler(repo)

		out, err := r.ProcessEvent(context.Background(), event(EventCheckoutSessionCompleted, tt.object))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if out.Status != OutcomeSkipped {
			t.Fatalf("%s: expected skip, got %+v", tt.name, out)
		}
		if repo.users["u1"].StripeCustomerID != nil {
			t.Fatalf("%s: state mutated on skip", tt.name)
		}
	}
}

func TestCheckoutCompletedUserIDFromMetadata(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("u1", "")
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventCheckoutSessionCompleted, map[string]interface{}{
		"customer":     "cus_9",
		"subscription": "sub_9",
		"metadata":     map[string]string{"userId": "u1"},
	}))
	if err != nil || out.Status != OutcomeApplied {
		t.Fatalf("expected applied, got %+v err=%v", out, err)
	}
}

func TestSubscriptionUpdatedWritesStatusAndPlan(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("u2", "cus_2")
	repo.plans["price_month"] = models.SubscriptionPlanMonth
	r := NewReconciler(repo)

	ev := event(EventSubscriptionUpdated, map[string]interface{}{
		"customer": "cus_2",
		"status":   "past_due",
		"items": map[string]interface{}{
			"data": []map[string]interface{}{
				{"price": map[string]interface{}{"id": "price_month"}},
			},
		},
	})

	out, err := r.ProcessEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeApplied || out.UserID != "u2" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	u := repo.users["u2"]
	if u.SubscriptionStatus == nil || *u.SubscriptionStatus != "past_due" {
		t.Fatalf("status not written: %+v", u)
	}
	if u.SubscriptionPlan == nil || *u.SubscriptionPlan != "month" {
		t.Fatalf("plan not written: %+v", u)
	}

	// Idempotence: replaying the event yields the same final state.
	out2, err := r.ProcessEvent(context.Background(), ev)
	if err != nil || out2.Status != OutcomeApplied {
		t.Fatalf("replay failed: %+v err=%v", out2, err)
	}
	if *u.SubscriptionStatus != "past_due" || *u.SubscriptionPlan != "month" {
		t.Fatalf("replay changed state: %+v", u)
	}
}

func TestSubscriptionUpdatedUnknownPlanSkips(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("u2", "cus_2")
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventSubscriptionUpdated, map[string]interface{}{
		"customer": "cus_2",
		"status":   "active",
		"items": map[string]interface{}{
			"data": []map[string]interface{}{
				{"price": map[string]interface{}{"id": "price_unseeded"}},
			},
		},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeSkipped {
		t.Fatalf("expected skip for unseeded plan, got %+v", out)
	}
	if repo.users["u2"].SubscriptionStatus != nil {
		t.Fatal("state mutated on skip")
	}
}

func TestSubscriptionUpdatedUnknownCustomerSkips(t *testing.T) {
	repo := newFakeRepo()
	repo.plans["price_month"] = models.SubscriptionPlanMonth
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventSubscriptionCreated, map[string]interface{}{
		"customer": "cus_unknown",
		"status":   "active",
		"items": map[string]interface{}{
			"data": []map[string]interface{}{
				{"price": map[string]interface{}{"id": "price_month"}},
			},
		},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeSkipped {
		t.Fatalf("expected skip for unknown customer, got %+v", out)
	}
}

func TestSubscriptionDeletedCancelsAndClearsPlan(t *testing.T) {
	repo := newFakeRepo()
	u := repo.addUser("u3", "cus_3")
	status := "active"
	plan := "month"
	u.SubscriptionStatus = &status
	u.SubscriptionPlan = &plan
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventSubscriptionDeleted, map[string]interface{}{
		"customer": "cus_3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeApplied || out.UserID != "u3" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if u.SubscriptionStatus == nil || *u.SubscriptionStatus != models.SubscriptionStatusCanceled {
		t.Fatalf("status not canceled: %+v", u)
	}
	if u.SubscriptionPlan != nil {
		t.Fatalf("plan not cleared: %+v", u)
	}
}

func TestInvoicePaymentFailedMarksPastDue(t *testing.T) {
	repo := newFakeRepo()
	u := repo.addUser("u4", "cus_4")
	status := "active"
	u.SubscriptionStatus = &status
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventInvoicePaymentFailed, map[string]interface{}{
		"customer": "cus_4",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeApplied {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if *u.SubscriptionStatus != models.SubscriptionStatusPastDue {
		t.Fatalf("status not past_due: %+v", u)
	}
}

func TestInvoicePaymentSucceededIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("u5", "cus_5")
	r := NewReconciler(repo)

	out, err := r.ProcessEvent(context.Background(), event(EventInvoicePaymentSucceeded, map[string]interface{}{
		"customer": "cus_5",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeSkipped {
		t.Fatalf("expected skip, got %+v", out)
	}
	if repo.users["u5"].SubscriptionStatus != nil {
		t.Fatal("no-op event mutated state")
	}
}

func TestUnhandledEventTypeIsAcknowledged(t *testing.T) {
	r := NewReconciler(newFakeRepo())

	out, err := r.ProcessEvent(context.Background(), event("charge.refunded", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeSkipped {
		t.Fatalf("expected skip, got %+v", out)
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("u6", "cus_6")
	repo.fail = errors.New("connection reset")
	r := NewReconciler(repo)

	_, err := r.ProcessEvent(context.Background(), event(EventInvoicePaymentFailed, map[string]interface{}{
		"customer": "cus_6",
	}))
	if err == nil {
		t.Fatal("expected store failure to propagate for provider retry")
	}
}
