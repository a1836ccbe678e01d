// File: internal/notification/mailer.go
package notification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/plan"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Welcome is the data of the mail sent after a completed signup.
type Welcome struct {
	Email     string
	FirstName string
	LastName  string
	Plan      plan.ID
}

// Mailer sends transactional mail.
type Mailer interface {
	SendWelcome(ctx context.Context, w Welcome) error
}

// sender is the part of the SendGrid client the mailer uses.
type sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers mail through SendGrid.
type SendGridMailer struct {
	client   sender
	fromName string
	fromAddr string
	logger   *zap.Logger
}

// NoopMailer is used when no SendGrid key is configured.
type NoopMailer struct {
	logger *zap.Logger
}

// NewMailer returns a SendGrid mailer, or a no-op mailer when SENDGRID_API_KEY is empty.
func NewMailer(cfg *config.Config, logger *zap.Logger) Mailer {
	logger = logger.Named("Mailer")
	if strings.TrimSpace(cfg.SendGridAPIKey) == "" {
		logger.Info("SENDGRID_API_KEY not set; welcome mails are disabled")
		return &NoopMailer{logger: logger}
	}
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName: cfg.MailFromName,
		fromAddr: cfg.MailFromAddress,
		logger:   logger,
	}
}

func (m *NoopMailer) SendWelcome(ctx context.Context, w Welcome) error {
	m.logger.Debug("Welcome mail skipped", zap.String("email", w.Email))
	return nil
}

func (m *SendGridMailer) SendWelcome(ctx context.Context, w Welcome) error {
	subject, plainText, htmlBody := renderWelcome(w)
	name := strings.TrimSpace(w.FirstName + " " + w.LastName)
	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.fromAddr),
		subject,
		mail.NewEmail(name, w.Email),
		plainText,
		htmlBody,
	)

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send welcome mail: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected welcome mail: status %d", resp.StatusCode)
	}
	m.logger.Info("Welcome mail sent", zap.String("email", w.Email), zap.Int("status", resp.StatusCode))
	return nil
}

func renderWelcome(w Welcome) (subject, plainText, htmlBody string) {
	planName := string(w.Plan)
	if p, ok := plan.Lookup(w.Plan); ok {
		planName = p.Name
	}
	greeting := strings.TrimSpace(w.FirstName)
	if greeting == "" {
		greeting = w.Email
	}

	subject = "Velkommen til StudyBuddy"
	plainText = fmt.Sprintf("Hei %s!\n\nKontoen din er klar. Du har valgt planen %s.\n\nOrganiser, lær, lever.\nStudyBuddy", greeting, planName)
	htmlBody = fmt.Sprintf("<p>Hei %s!</p><p>Kontoen din er klar. Du har valgt planen <strong>%s</strong>.</p><p>Organiser, lær, lever.<br>StudyBuddy</p>",
		html.EscapeString(greeting), html.EscapeString(planName))
	return subject, plainText, htmlBody
}
