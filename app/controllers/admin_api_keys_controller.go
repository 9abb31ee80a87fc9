package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/models"
)

// HandleAPIKeys renders the service credential management page.
func (ac *AdminController) HandleAPIKeys(c *fiber.Ctx) error {
	keys, err := ac.repos.APIKey.List()
	if err != nil {
		return ac.handleError(c, "Failed to load API keys", err)
	}

	return render(c, "admin/api_keys", fiber.Map{
		"Title": "API Keys",
		"Keys":  keys,
	})
}

// HandleAPIKeyUpsert stores or replaces the credential for one service.
func (ac *AdminController) HandleAPIKeyUpsert(c *fiber.Ctx) error {
	service := strings.ToLower(strings.TrimSpace(c.FormValue("service")))
	apiKey := strings.TrimSpace(c.FormValue("api_key"))

	if !models.IsValidService(service) {
		return flashError(c, "Unknown service", "/dashboard/admin/api-keys")
	}
	if apiKey == "" {
		return flashError(c, "API key must not be empty", "/dashboard/admin/api-keys")
	}

	if err := ac.repos.APIKey.Upsert(&models.APIKey{Service: service, APIKey: apiKey}); err != nil {
		return ac.handleError(c, "API key could not be saved", err)
	}

	return flashSuccess(c, "API key saved", "/dashboard/admin/api-keys")
}

// HandleAPIKeyDelete removes the credential for one service.
func (ac *AdminController) HandleAPIKeyDelete(c *fiber.Ctx) error {
	service := c.Params("service")
	if !models.IsValidService(service) {
		return flashError(c, "Unknown service", "/dashboard/admin/api-keys")
	}

	if err := ac.repos.APIKey.Delete(service); err != nil {
		return ac.handleError(c, "API key could not be deleted", err)
	}

	return flashSuccess(c, "API key deleted", "/dashboard/admin/api-keys")
}
