package billing

// OutcomeStatus classifies what a webhook delivery did to local state.
type OutcomeStatus string

const (
	// OutcomeApplied means exactly one user row was updated.
	OutcomeApplied OutcomeStatus = "applied"
	// OutcomeSkipped means the event was acknowledged without a state change
	// (unhandled type, missing reference, unresolvable plan or user).
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeRejected means signature verification failed; nothing was read
	// or written.
	OutcomeRejected OutcomeStatus = "rejected"
)

// Outcome is the explicit result of processing one billing event, so callers
// and tests assert on it instead of log output.
type Outcome struct {
	Status    OutcomeStatus
	EventType string
	UserID    string
	Reason    string
}

func applied(eventType, userID string) Outcome {
	return Outcome{Status: OutcomeApplied, EventType: eventType, UserID: userID}
}

func skipped(eventType, reason string) Outcome {
	return Outcome{Status: OutcomeSkipped, EventType: eventType, Reason: reason}
}

// Stripe event types the reconciler dispatches on.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionCreated      = "customer.subscription.created"
	EventSubscriptionUpdated      = "customer.subscription.updated"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
	EventInvoicePaymentSucceeded  = "invoice.payment_succeeded"
	EventInvoicePaymentFailed     = "invoice.payment_failed"
)
