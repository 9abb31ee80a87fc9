package billing

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
)

func stubCheckoutService(t *testing.T, handler http.Handler) *CheckoutService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(server.URL),
	})
	return NewCheckoutServiceWithBackends("sk_test_stub", &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
}

func TestCancelActiveSubscriptionsCancelsEachListedSubscription(t *testing.T) {
	var cancels []string

	svc := stubCheckoutService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/subscriptions":
			assert.Equal(t, "cus_1", r.URL.Query().Get("customer"))
			assert.Equal(t, "active", r.URL.Query().Get("status"))
			fmt.Fprint(w, `{"object":"list","url":"/v1/subscriptions","has_more":false,"data":[`+
				`{"id":"sub_1","object":"subscription"},{"id":"sub_2","object":"subscription"}]}`)
		case r.Method == http.MethodDelete:
			cancels = append(cancels, r.URL.Path)
			fmt.Fprint(w, `{"id":"sub","object":"subscription","status":"canceled"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	canceled, err := svc.CancelActiveSubscriptions("cus_1")
	assert.NoError(t, err)
	assert.Equal(t, 2, canceled)
	assert.Equal(t, []string{"/v1/subscriptions/sub_1", "/v1/subscriptions/sub_2"}, cancels)
}

func TestCancelActiveSubscriptionsWithNoneActive(t *testing.T) {
	svc := stubCheckoutService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"object":"list","url":"/v1/subscriptions","has_more":false,"data":[]}`)
	}))

	canceled, err := svc.CancelActiveSubscriptions("cus_none")
	assert.NoError(t, err)
	assert.Equal(t, 0, canceled)
}
