package router

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// Webhook deliveries arrive in bursts from the provider and must never be
// rate limited; an unsigned request is rejected with 400, not 429.
func TestStripeWebhookIsNotRateLimited(t *testing.T) {
	app := fiber.New()
	NewApiRouter().InstallRouter(app)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/api/webhooks/stripe", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestAPIRootIsRateLimited(t *testing.T) {
	app := fiber.New()
	NewApiRouter().InstallRouter(app)

	sawTooMany := false
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(fiber.MethodGet, "/api/", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		if resp.StatusCode == fiber.StatusTooManyRequests {
			sawTooMany = true
		}
	}
	assert.True(t, sawTooMany)
}
