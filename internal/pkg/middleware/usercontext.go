package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pageforge/PageForge/internal/pkg/session"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

func anonymousContext(c *fiber.Ctx) error {
	c.Locals("USER_CONTEXT", usercontext.UserContext{
		IsLoggedIn: false,
		IsAdmin:    false,
	})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
	return c.Next()
}

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes session handling so controllers and guards read one
// USER_CONTEXT local instead of touching the session store themselves.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth uses its own fiber session store on /auth/* routes; skip our app
	// session there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") && c.Path() != "/auth/callback" {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous
		return anonymousContext(c)
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymousContext(c)
	}

	uid, ok := userID.(string)
	if !ok || uid == "" {
		return anonymousContext(c)
	}

	email := session.GetSessionValue(c, usercontext.KeyUserEmail)
	isAdmin := sess.Get(usercontext.KeyIsAdmin)

	userCtx := usercontext.UserContext{
		UserID:             uid,
		Email:              email,
		IsLoggedIn:         true,
		IsAdmin:            isAdmin != nil && isAdmin.(bool),
		SubscriptionStatus: session.GetSessionValue(c, "subscription_status"),
		SubscriptionPlan:   session.GetSessionValue(c, "subscription_plan"),
	}
	c.Locals("USER_CONTEXT", userCtx)

	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, uid)
	c.Locals(usercontext.KeyUserEmail, email)
	c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)

	return c.Next()
}
