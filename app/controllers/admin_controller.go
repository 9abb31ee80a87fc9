package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
)

// AdminController handles admin-related HTTP requests using the repository
// pattern with injected dependencies.
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return flashError(c, message, "/dashboard/admin")
}

// HandleDashboard renders the admin dashboard overview.
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get user count", err)
	}

	recentUsers, err := ac.repos.User.List(0, 5)
	if err != nil {
		return ac.handleError(c, "Failed to get recent users", err)
	}

	plans, err := ac.repos.Plan.List()
	if err != nil {
		return ac.handleError(c, "Failed to get plans", err)
	}

	return render(c, "admin/index", fiber.Map{
		"Title":       "Admin Dashboard",
		"TotalUsers":  totalUsers,
		"RecentUsers": recentUsers,
		"Plans":       plans,
	})
}

// HandleUsers renders the user management page.
func (ac *AdminController) HandleUsers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 25, 100)

	users, err := ac.repos.User.List(offset, limit)
	if err != nil {
		return ac.handleError(c, "Failed to load users", err)
	}
	total, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to count users", err)
	}

	return render(c, "admin/users", fiber.Map{
		"Title": "Users",
		"Users": users,
		"Total": total,
	})
}

// HandleUserRole changes one user's role.
func (ac *AdminController) HandleUserRole(c *fiber.Ctx) error {
	userID := c.Params("id")
	role := c.FormValue("role")
	if role != models.ROLE_USER && role != models.ROLE_ADMIN {
		return flashError(c, "Unknown role", "/dashboard/admin/users")
	}

	if err := ac.repos.User.UpdateFields(userID, map[string]interface{}{"role": role}); err != nil {
		return ac.handleError(c, "Role could not be changed", err)
	}

	return flashSuccess(c, "Role updated", "/dashboard/admin/users")
}

// HandleUserDelete removes a user account.
func (ac *AdminController) HandleUserDelete(c *fiber.Ctx) error {
	if err := ac.repos.User.Delete(c.Params("id")); err != nil {
		return ac.handleError(c, "User could not be deleted", err)
	}

	return flashSuccess(c, "User deleted", "/dashboard/admin/users")
}
