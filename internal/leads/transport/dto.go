// Package transport defines the request and response shapes for lead
// submission.
package transport

import (
	"lunaxcode_site_backend/internal/leadapi"
)

// BasicInfo carries the identity fields collected on the first wizard step.
type BasicInfo struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"required"`
	Company string `json:"company,omitempty"`
}

// OnboardingSubmission is the accumulated wizard form data handed to the
// submitter. ServiceSpecific is keyed by question id; values are either a
// single string or a list, depending on the question type.
type OnboardingSubmission struct {
	ServiceType     string                         `json:"serviceType" validate:"required"`
	BasicInfo       BasicInfo                      `json:"basicInfo"`
	ServiceSpecific map[string]leadapi.AnswerValue `json:"serviceSpecific,omitempty"`
	Timeline        string                         `json:"timeline,omitempty"`
	Budget          string                         `json:"budget,omitempty"`
	AdditionalNotes string                         `json:"additionalNotes,omitempty"`
}

// ContactSubmission is a one-shot contact-form submission.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message" validate:"required,max=5000"`
	Service string `json:"service,omitempty"`
}

// OnboardingResult is returned for every accepted onboarding submission,
// whether it reached the remote API or was persisted locally.
type OnboardingResult struct {
	ID string `json:"id"`
}

// ContactResult is returned for every accepted contact submission.
type ContactResult struct {
	Success bool `json:"success"`
}
