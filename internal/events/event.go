// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lunaxcode_site_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// OnboardingSubmitted is published when an onboarding submission is accepted,
// whether it reached the remote API or was persisted locally.
type OnboardingSubmitted struct {
	BaseEvent
	SubmissionID string `json:"submissionId"`
	ServiceType  string `json:"serviceType"`
	ServiceName  string `json:"serviceName"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	Budget       string `json:"budget,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
	Notes        string `json:"notes,omitempty"`
	// ServiceDetails is the service-specific answer set rendered as JSON.
	ServiceDetails string `json:"serviceDetails,omitempty"`
	StoredLocal    bool   `json:"storedLocal"`
}

func (e OnboardingSubmitted) EventName() string { return "leads.onboarding.submitted" }

// ContactSubmitted is published when a contact-form submission is accepted.
type ContactSubmitted struct {
	BaseEvent
	SubmissionID string `json:"submissionId"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Message      string `json:"message"`
	StoredLocal  bool   `json:"storedLocal"`
}

func (e ContactSubmitted) EventName() string { return "leads.contact.submitted" }
