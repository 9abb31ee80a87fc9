package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/pageforge/PageForge/internal/pkg/billing"
)

func TestWebhookStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome billing.Outcome
		want    int
	}{
		{
			name:    "applied events are acknowledged",
			outcome: billing.Outcome{Status: billing.OutcomeApplied},
			want:    fiber.StatusOK,
		},
		{
			name:    "skipped events are still acknowledged",
			outcome: billing.Outcome{Status: billing.OutcomeSkipped, Reason: "no user for customer"},
			want:    fiber.StatusOK,
		},
		{
			name:    "rejected events return bad request",
			outcome: billing.Outcome{Status: billing.OutcomeRejected},
			want:    fiber.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, webhookStatus(tc.outcome))
		})
	}
}
