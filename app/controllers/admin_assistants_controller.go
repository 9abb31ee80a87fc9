package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/models"
)

// HandleAssistants renders the assistant catalog.
func (ac *AdminController) HandleAssistants(c *fiber.Ctx) error {
	assistants, err := ac.repos.Assistant.List()
	if err != nil {
		return ac.handleError(c, "Failed to load assistants", err)
	}

	// Offer the hosted assistants for import when the key is configured.
	var available []fiber.Map
	if client, clientErr := openAIClient(); clientErr == nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
		defer cancel()
		if remote, listErr := client.ListAssistants(ctx); listErr == nil {
			for _, a := range remote {
				name := ""
				if a.Name != nil {
					name = *a.Name
				}
				available = append(available, fiber.Map{"ID": a.ID, "Name": name})
			}
		}
	}

	return render(c, "admin/assistants", fiber.Map{
		"Title":      "Assistants",
		"Assistants": assistants,
		"Available":  available,
	})
}

// HandleAssistantCreate registers an assistant in the local catalog.
func (ac *AdminController) HandleAssistantCreate(c *fiber.Ctx) error {
	assistant := &models.Assistant{
		Name:              strings.TrimSpace(c.FormValue("name")),
		OpenAIAssistantID: strings.TrimSpace(c.FormValue("openai_assistant_id")),
	}
	if err := assistant.Validate(); err != nil {
		return flashError(c, "Name and assistant id are required", "/dashboard/admin/assistants")
	}

	if err := ac.repos.Assistant.Create(assistant); err != nil {
		return ac.handleError(c, "Assistant could not be saved", err)
	}

	return flashSuccess(c, "Assistant added", "/dashboard/admin/assistants")
}

// HandleAssistantUpdate renames or repoints a catalog entry.
func (ac *AdminController) HandleAssistantUpdate(c *fiber.Ctx) error {
	assistant, err := ac.repos.Assistant.GetByID(c.Params("id"))
	if err != nil {
		return flashError(c, "Assistant not found", "/dashboard/admin/assistants")
	}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		assistant.Name = name
	}
	if aid := strings.TrimSpace(c.FormValue("openai_assistant_id")); aid != "" {
		assistant.OpenAIAssistantID = aid
	}

	if err := ac.repos.Assistant.Update(assistant); err != nil {
		return ac.handleError(c, "Assistant could not be saved", err)
	}

	return flashSuccess(c, "Assistant updated", "/dashboard/admin/assistants")
}

// HandleAssistantDelete removes a catalog entry.
func (ac *AdminController) HandleAssistantDelete(c *fiber.Ctx) error {
	if err := ac.repos.Assistant.Delete(c.Params("id")); err != nil {
		return ac.handleError(c, "Assistant could not be deleted", err)
	}

	return flashSuccess(c, "Assistant deleted", "/dashboard/admin/assistants")
}
