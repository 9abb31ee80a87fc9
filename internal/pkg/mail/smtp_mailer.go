package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/pageforge/PageForge/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP using the server from the environment.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendPasswordResetMail sends the password reset link for the given token.
func SendPasswordResetMail(to string, token string) error {
	publicDomain := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
	resetLink := fmt.Sprintf("%s/update-password?token=%s", publicDomain, token)

	subject := "Reset your PageForge password"
	body := fmt.Sprintf(
		"<p>Hello,</p>"+
			"<p>We received a request to reset the password for your PageForge account.</p>"+
			"<p><a href=\"%s\">Reset your password</a></p>"+
			"<p>The link is valid for 2 hours. If you did not request this, you can ignore this email.</p>",
		resetLink,
	)

	return SendMail(to, subject, body)
}
