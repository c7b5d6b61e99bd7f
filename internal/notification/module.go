// Package notification delivers admin emails in response to domain events.
// Submission modules publish events and never see the email provider; any
// delivery failure is logged here and goes no further.
package notification

import (
	"context"

	"lunaxcode_site_backend/internal/events"
	"lunaxcode_site_backend/platform/config"
	"lunaxcode_site_backend/platform/logger"
)

// Module subscribes the notification handlers to the event bus.
type Module struct {
	sender Sender
	log    *logger.Logger
}

// NewModule creates the notification module. When email is not configured a
// no-op sender is used, so submissions behave identically either way.
func NewModule(cfg config.EmailConfig, log *logger.Logger) *Module {
	var sender Sender = NoopSender{}
	if cfg.GetEmailEnabled() {
		sender = NewSMTPSender(cfg)
	} else {
		log.Info("email notifications disabled")
	}
	return &Module{sender: sender, log: log}
}

// Name returns the module name.
func (m *Module) Name() string { return "notification" }

// Subscribe registers the event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.OnboardingSubmitted{}.EventName(), events.HandlerFunc(m.onOnboardingSubmitted))
	bus.Subscribe(events.ContactSubmitted{}.EventName(), events.HandlerFunc(m.onContactSubmitted))
}

func (m *Module) onOnboardingSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OnboardingSubmitted)
	if !ok {
		return nil
	}
	if err := m.sender.SendOnboardingNotification(ctx, e); err != nil {
		m.log.NotificationFailed("onboarding", err)
	}
	return nil
}

func (m *Module) onContactSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ContactSubmitted)
	if !ok {
		return nil
	}
	if err := m.sender.SendContactNotification(ctx, e); err != nil {
		m.log.NotificationFailed("contact", err)
	}
	return nil
}
