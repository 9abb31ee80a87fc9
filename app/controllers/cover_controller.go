package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/ideogram"
	"github.com/pageforge/PageForge/internal/pkg/storage"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

func ideogramClient() (*ideogram.Client, error) {
	key, err := repository.GetGlobalFactory().GetAPIKeyRepository().GetByService(models.ServiceIdeogram)
	if err != nil {
		return nil, errors.New("Ideogram API key is not configured")
	}
	return ideogram.NewClient(key.APIKey), nil
}

// HandleCreateCoverPage renders the cover generator with the style catalog.
func HandleCreateCoverPage(c *fiber.Ctx) error {
	styles := []string{ideogram.DefaultStyle}
	if client, err := ideogramClient(); err == nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()
		if remote, err := client.ListStyles(ctx); err == nil && len(remote) > 0 {
			styles = remote
		}
	}

	return render(c, "dashboard/create_cover", fiber.Map{
		"Title":  "Create Cover",
		"Styles": styles,
	})
}

// HandleCoverGenerate generates a cover image, persists it to object storage
// when configured and records the result.
func HandleCoverGenerate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	prompt := strings.TrimSpace(c.FormValue("prompt"))
	if prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
	}
	style := strings.TrimSpace(c.FormValue("style"))
	if style == "" {
		style = ideogram.DefaultStyle
	}

	client, err := ideogramClient()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Minute)
	defer cancel()

	imageURL, err := client.GenerateImage(ctx, prompt, style)
	if err != nil {
		log.Errorf("cover generation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "image generation failed"})
	}

	cover := &models.BookCover{
		ImageURL: imageURL,
		Prompt:   prompt,
		Style:    style,
		UserID:   userCtx.UserID,
	}

	// Keep a durable copy when object storage is configured; otherwise the
	// record points at the provider URL.
	cfg := storage.LoadConfigFromEnv()
	if cfg.IsEnabled() {
		store, err := storage.NewCoverStore(cfg)
		if err == nil {
			cover.ID = uuid.NewString()
			stored, storeErr := store.StoreFromURL(ctx, userCtx.UserID, cover.ID, imageURL)
			if storeErr != nil {
				log.Errorf("cover upload failed, keeping provider url: %v", storeErr)
			} else {
				cover.ImageURL = stored.PublicURL
				cover.ObjectKey = stored.ObjectKey
				cover.ThumbnailKey = stored.ThumbnailKey
			}
		}
	}

	if err := repository.GetGlobalFactory().GetBookCoverRepository().Create(cover); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "cover could not be saved"})
	}

	return c.JSON(cover)
}

func HandleCoverList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c, 24, 100)

	coverRepo := repository.GetGlobalFactory().GetBookCoverRepository()
	covers, err := coverRepo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return flashError(c, "Covers could not be loaded", "/dashboard")
	}

	return render(c, "dashboard/covers", fiber.Map{
		"Title":  "My Covers",
		"Covers": covers,
	})
}

func HandleCoverDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	coverRepo := repository.GetGlobalFactory().GetBookCoverRepository()
	cover, err := coverRepo.GetByID(c.Params("id"), userCtx.UserID)
	if err != nil {
		return flashError(c, "Cover not found", "/dashboard/covers")
	}

	if cover.ObjectKey != "" {
		cfg := storage.LoadConfigFromEnv()
		if cfg.IsEnabled() {
			if store, storeErr := storage.NewCoverStore(cfg); storeErr == nil {
				ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
				if err := store.Delete(ctx, cover.ObjectKey, cover.ThumbnailKey); err != nil {
					log.Errorf("cover object delete failed: %v", err)
				}
				cancel()
			}
		}
	}

	if err := coverRepo.Delete(cover.ID, userCtx.UserID); err != nil {
		return flashError(c, "Cover could not be deleted", "/dashboard/covers")
	}

	return flashSuccess(c, "Cover deleted", "/dashboard/covers")
}
