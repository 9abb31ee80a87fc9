package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

// Route areas used by the access guard.
const (
	LoginPath      = "/login"
	SignupPath     = "/signup"
	ResetPath      = "/reset-password"
	UpdatePassPath = "/update-password"
	DashboardPath  = "/dashboard"
	AdminPrefix    = "/dashboard/admin"
)

// publicPaths never require a session, regardless of state.
var publicPaths = map[string]struct{}{
	"/":              {},
	LoginPath:        {},
	SignupPath:       {},
	ResetPath:        {},
	UpdatePassPath:   {},
	"/auth/callback": {},
}

// publicPrefixes cover API endpoints, OAuth flows and static assets.
var publicPrefixes = []string{"/api/", "/auth/", "/assets/", "/docs/"}

// RoleLookup resolves a user id to its stored role.
type RoleLookup func(userID string) (string, error)

// Decision is the guard's verdict for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

var allow = Decision{Allow: true}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// IsPublicPath classifies a path as public: exact allow-list match, a public
// prefix, or a path containing a literal period (static file).
func IsPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return strings.Contains(path, ".")
}

// IsAuthPage reports whether the path is one of the auth-only pages that a
// logged-in user should be redirected away from.
func IsAuthPage(path string) bool {
	switch path {
	case LoginPath, SignupPath, ResetPath:
		return true
	default:
		return false
	}
}

// Decide evaluates the guard rules for a request. The role lookup is only
// invoked for admin-prefixed paths; a lookup error or unknown role fails
// closed (redirect away from the admin area).
func Decide(path string, loggedIn bool, userID string, roles RoleLookup) Decision {
	if !loggedIn {
		if strings.HasPrefix(path, DashboardPath) && !IsPublicPath(path) {
			return redirect(LoginPath)
		}
		return allow
	}

	if IsAuthPage(path) {
		return redirect(DashboardPath)
	}

	if strings.HasPrefix(path, AdminPrefix) {
		role, err := roles(userID)
		if err != nil || role != models.ROLE_ADMIN {
			return redirect(DashboardPath)
		}
	}

	return allow
}

// AccessGuard runs the guard decision on every request, before any protected
// handler. The admin role check is a fresh point query against the user
// store, not the cached session flag.
func AccessGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userCtx := usercontext.GetUserContext(c)

		decision := Decide(c.Path(), userCtx.IsLoggedIn, userCtx.UserID, func(userID string) (string, error) {
			role, err := repository.GetGlobalFactory().GetUserRepository().GetRole(userID)
			if err != nil {
				log.Warnf("guard: role lookup failed for user %s: %v", userID, err)
			}
			return role, err
		})

		if !decision.Allow {
			return c.Redirect(decision.RedirectTo, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
