package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/exception"
)

// EmailConfig carries the SMTP transport settings. Host or an empty
// recipient list leaves the notifier unconfigured.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

type Email struct {
	config EmailConfig

	// sendMail is swappable in tests.
	sendMail func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmail(config EmailConfig) *Email {
	return &Email{
		config:   config,
		sendMail: smtp.SendMail,
	}
}

func (e *Email) Name() string {
	return "email"
}

func (e *Email) Notify(ctx context.Context, subject, body string) error {
	if e.config.Host == "" || len(e.config.To) == 0 {
		slog.WarnContext(ctx, "email transport not configured, skipping notification",
			slog.String("subject", subject))
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(e.config.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if e.config.Username != "" {
		auth = smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	if err := e.sendMail(addr, auth, e.config.From, e.config.To, []byte(msg.String())); err != nil {
		return exception.ApplicationError{
			Kind:    exception.KindNotification,
			Message: fmt.Sprintf("send alert email via %s", addr),
			Cause:   err,
		}
	}

	return nil
}
