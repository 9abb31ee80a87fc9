package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/assistant"
)

type chatRequest struct {
	AssistantID string `json:"assistant_id" form:"assistant_id"`
	ThreadID    string `json:"thread_id" form:"thread_id"`
	Message     string `json:"message" form:"message"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	ThreadID string `json:"thread_id"`
}

func (r *chatRequest) validate() error {
	if strings.TrimSpace(r.AssistantID) == "" {
		return errors.New("assistant_id is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}

// openAIClient builds an assistant client from the stored service key.
func openAIClient() (*assistant.Client, error) {
	key, err := repository.GetGlobalFactory().GetAPIKeyRepository().GetByService(models.ServiceOpenAI)
	if err != nil {
		return nil, errors.New("OpenAI API key is not configured")
	}
	return assistant.NewClient(key.APIKey), nil
}

// HandleCreateBookPage renders the drafting workspace with the available
// assistants.
func HandleCreateBookPage(c *fiber.Ctx) error {
	assistants, err := repository.GetGlobalFactory().GetAssistantRepository().List()
	if err != nil {
		return flashError(c, "Assistants could not be loaded", "/dashboard")
	}

	return render(c, "dashboard/create_book", fiber.Map{
		"Title":      "Create Book",
		"Assistants": assistants,
	})
}

// HandleChat runs one assistant round-trip and returns the reply as JSON.
func HandleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	client, err := openAIClient()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	// A full run can take several minutes; the poll ceiling bounds it.
	ctx, cancel := context.WithTimeout(c.UserContext(), 6*time.Minute)
	defer cancel()

	reply, threadID, err := client.SendMessage(ctx, req.AssistantID, req.ThreadID, req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrRunTimeout) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "assistant did not respond in time"})
		}
		log.Errorf("assistant chat failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "assistant request failed"})
	}

	return c.JSON(chatResponse{Reply: reply, ThreadID: threadID})
}
