package notification

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"lunaxcode_site_backend/internal/events"
	"lunaxcode_site_backend/platform/config"
)

// Sender delivers admin notification emails. Failures are the caller's to
// log; they are never propagated past this module.
type Sender interface {
	SendOnboardingNotification(ctx context.Context, event events.OnboardingSubmitted) error
	SendContactNotification(ctx context.Context, event events.ContactSubmitted) error
}

// SMTPSender delivers notifications over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host       string
	port       int
	username   string
	password   string
	fromName   string
	fromEmail  string
	adminEmail string
}

// NewSMTPSender creates an SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:       cfg.GetSMTPHost(),
		port:       cfg.GetSMTPPort(),
		username:   cfg.GetSMTPUsername(),
		password:   cfg.GetSMTPPassword(),
		fromName:   cfg.GetEmailFromName(),
		fromEmail:  cfg.GetEmailFromAddress(),
		adminEmail: cfg.GetAdminEmail(),
	}
}

func (s *SMTPSender) send(ctx context.Context, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(s.adminEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendOnboardingNotification emails the admin a summary of a new onboarding
// submission.
func (s *SMTPSender) SendOnboardingNotification(ctx context.Context, event events.OnboardingSubmitted) error {
	subject := fmt.Sprintf("New onboarding submission: %s", orDefault(event.ServiceName, event.ServiceType))
	return s.send(ctx, subject, renderOnboardingBody(event))
}

// SendContactNotification emails the admin a new contact-form message.
func (s *SMTPSender) SendContactNotification(ctx context.Context, event events.ContactSubmitted) error {
	return s.send(ctx, "New contact form submission", renderContactBody(event))
}

func renderOnboardingBody(event events.OnboardingSubmitted) string {
	var b strings.Builder
	writeField(&b, "Submission type", "Onboarding")
	writeField(&b, "Name", event.CustomerName)
	writeField(&b, "Email", event.Email)
	writeField(&b, "Phone", orDefault(event.Phone, "Not provided"))
	writeField(&b, "Company", orDefault(event.Company, "Not provided"))
	writeField(&b, "Service", orDefault(event.ServiceName, event.ServiceType))
	writeField(&b, "Budget", orDefault(event.Budget, "Not specified"))
	writeField(&b, "Timeline", orDefault(event.Timeline, "Not specified"))
	writeField(&b, "Message", orDefault(event.Notes, "No additional notes"))
	if event.ServiceDetails != "" {
		b.WriteString("\nService details:\n")
		b.WriteString(event.ServiceDetails)
		b.WriteString("\n")
	}
	if event.StoredLocal {
		b.WriteString("\nNote: the lead API was unreachable; this submission is stored locally as ")
		b.WriteString(event.SubmissionID)
		b.WriteString(" and awaits sync.\n")
	}
	return b.String()
}

func renderContactBody(event events.ContactSubmitted) string {
	var b strings.Builder
	writeField(&b, "Submission type", "Contact Form")
	writeField(&b, "Name", event.CustomerName)
	writeField(&b, "Email", event.Email)
	writeField(&b, "Phone", orDefault(event.Phone, "Not provided"))
	writeField(&b, "Message", event.Message)
	if event.StoredLocal {
		b.WriteString("\nNote: the lead API was unreachable; this submission is stored locally as ")
		b.WriteString(event.SubmissionID)
		b.WriteString(" and awaits sync.\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// NoopSender is used when email delivery is not configured.
type NoopSender struct{}

func (NoopSender) SendOnboardingNotification(context.Context, events.OnboardingSubmitted) error {
	return nil
}

func (NoopSender) SendContactNotification(context.Context, events.ContactSubmitted) error {
	return nil
}
