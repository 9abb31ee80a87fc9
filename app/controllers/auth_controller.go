package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pageforge/PageForge/app/models"
	"github.com/pageforge/PageForge/app/repository"
	"github.com/pageforge/PageForge/internal/pkg/mail"
	"github.com/pageforge/PageForge/internal/pkg/middleware"
	"github.com/pageforge/PageForge/internal/pkg/session"
	"github.com/pageforge/PageForge/internal/pkg/usercontext"
)

// loginSession writes the authenticated user into the request session.
func loginSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUserEmail, user.Email)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)
	if user.SubscriptionStatus != nil {
		sess.Set("subscription_status", *user.SubscriptionStatus)
	}
	if user.SubscriptionPlan != nil {
		sess.Set("subscription_plan", *user.SubscriptionPlan)
	}

	if err := sess.Save(); err != nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetUserRepository().UpdateFields(user.ID, map[string]interface{}{
		"last_login_at": time.Now(),
	}); err != nil {
		log.Printf("last login update for user %s failed: %v", user.ID, err)
	}

	return nil
}

func HandleLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
		password := c.FormValue("password")

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		userRepo := repository.GetGlobalFactory().GetUserRepository()
		user, err := userRepo.GetByEmail(email)
		if err != nil {
			return flashError(c, "There is a problem with the login process", middleware.LoginPath)
		}

		if !models.CheckPasswordHash(password, user.Password) {
			return flashError(c, "There is a problem with the login process", middleware.LoginPath)
		}

		if err := loginSession(c, user); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), middleware.LoginPath)
		}

		return flashSuccess(c, "Welcome back!", middleware.DashboardPath)
	}

	return render(c, "auth/login", fiber.Map{"Title": "Log in"})
}

func HandleSignup(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
		password := c.FormValue("password")

		if len(password) < 8 {
			return flashError(c, "Password must be at least 8 characters", middleware.SignupPath)
		}

		user, err := models.CreateUser(email, password)
		if err != nil {
			return flashError(c, fmt.Sprintf("invalid signup data: %s", err), middleware.SignupPath)
		}

		userRepo := repository.GetGlobalFactory().GetUserRepository()
		if _, err := userRepo.GetByEmail(email); err == nil {
			return flashError(c, "An account with this email already exists", middleware.SignupPath)
		}

		if err := userRepo.Create(user); err != nil {
			return flashError(c, "Account could not be created", middleware.SignupPath)
		}

		if err := loginSession(c, user); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), middleware.LoginPath)
		}

		return flashSuccess(c, "Welcome to PageForge!", middleware.DashboardPath)
	}

	return render(c, "auth/signup", fiber.Map{"Title": "Sign up"})
}

func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return flashError(c, "logged out (no sess)", middleware.LoginPath)
	}

	if err := sess.Destroy(); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), middleware.LoginPath)
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return flashSuccess(c, "See you soon!", middleware.LoginPath)
}

// HandleResetPassword requests a password reset mail. The response is the
// same whether or not the account exists.
func HandleResetPassword(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))

		userRepo := repository.GetGlobalFactory().GetUserRepository()
		user, err := userRepo.GetByEmail(email)
		if err == nil {
			if tokenErr := user.GenerateResetToken(); tokenErr == nil {
				if updateErr := userRepo.Update(user); updateErr == nil {
					if mailErr := mail.SendPasswordResetMail(user.Email, user.ResetToken); mailErr != nil {
						log.Printf("reset mail to %s failed: %v", user.Email, mailErr)
					}
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return flashError(c, "Reset request could not be processed", middleware.ResetPath)
		}

		return flashSuccess(c, "If the account exists, a reset link has been sent", middleware.LoginPath)
	}

	return render(c, "auth/reset_password", fiber.Map{"Title": "Reset password"})
}

func HandleUpdatePassword(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token", c.FormValue("token")))

	if c.Method() == fiber.MethodPost {
		password := c.FormValue("password")
		if len(password) < 8 {
			return flashError(c, "Password must be at least 8 characters", middleware.UpdatePassPath+"?token="+token)
		}

		userRepo := repository.GetGlobalFactory().GetUserRepository()
		user, err := userRepo.GetByResetToken(token)
		if err != nil || !user.IsResetTokenValid(token) {
			return flashError(c, "Reset link is invalid or expired", middleware.ResetPath)
		}

		if err := user.SetPassword(password); err != nil {
			return flashError(c, "Password could not be updated", middleware.ResetPath)
		}
		user.ClearResetToken()

		if err := userRepo.Update(user); err != nil {
			return flashError(c, "Password could not be updated", middleware.ResetPath)
		}

		return flashSuccess(c, "Password updated, please log in", middleware.LoginPath)
	}

	return render(c, "auth/update_password", fiber.Map{
		"Title": "Choose a new password",
		"Token": token,
	})
}
