package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

// HandleBookList renders the user's books.
func HandleBookList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c, 20, 100)

	bookRepo := repository.GetGlobalFactory().GetBookRepository()
	books, err := bookRepo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return flashError(c, "Books could not be loaded", "/dashboard")
	}
	total, _ := bookRepo.CountByUserID(userCtx.UserID)

	return render(c, "dashboard/books", fiber.Map{
		"Title": "My Books",
		"Books": books,
		"Total": total,
	})
}

func HandleBookShow(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	book, err := repository.GetGlobalFactory().GetBookRepository().GetByID(c.Params("id"), userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return flashError(c, "Book not found", "/dashboard/books")
		}
		return flashError(c, "Book could not be loaded", "/dashboard/books")
	}

	return render(c, "dashboard/book", fiber.Map{
		"Title": book.Title,
		"Book":  book,
	})
}

func HandleBookCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	book := &models.Book{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: c.FormValue("content"),
		UserID:  userCtx.UserID,
	}
	if err := book.Validate(); err != nil {
		return flashError(c, "Title is required", "/dashboard/books")
	}

	if err := repository.GetGlobalFactory().GetBookRepository().Create(book); err != nil {
		return flashError(c, "Book could not be saved", "/dashboard/books")
	}

	return flashSuccess(c, "Book created", "/dashboard/books/"+book.ID)
}

func HandleBookUpdate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	bookRepo := repository.GetGlobalFactory().GetBookRepository()
	book, err := bookRepo.GetByID(c.Params("id"), userCtx.UserID)
	if err != nil {
		return flashError(c, "Book not found", "/dashboard/books")
	}

	if title := strings.TrimSpace(c.FormValue("title")); title != "" {
		book.Title = title
	}
	book.Content = c.FormValue("content", book.Content)

	if err := book.Validate(); err != nil {
		return flashError(c, "Invalid book data", "/dashboard/books/"+book.ID)
	}
	if err := bookRepo.Update(book); err != nil {
		return flashError(c, "Book could not be saved", "/dashboard/books/"+book.ID)
	}

	return flashSuccess(c, "Book saved", "/dashboard/books/"+book.ID)
}

func HandleBookDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	if err := repository.GetGlobalFactory().GetBookRepository().Delete(c.Params("id"), userCtx.UserID); err != nil {
		return flashError(c, "Book could not be deleted", "/dashboard/books")
	}

	return flashSuccess(c, "Book deleted", "/dashboard/books")
}
