// Package handler exposes lead submission over HTTP.
package handler

import (
	"net/http"

	"lunaxcode_site_backend/internal/leads/service"
	"lunaxcode_site_backend/internal/leads/transport"
	"lunaxcode_site_backend/platform/httpkit"
	"lunaxcode_site_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the public submission endpoints.
type Handler struct {
	svc      *service.Submitter
	validate *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Submitter, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// SubmitOnboarding accepts the wizard's accumulated form data.
func (h *Handler) SubmitOnboarding(c *gin.Context) {
	var req transport.OnboardingSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.SubmitOnboarding(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, result)
}

// SubmitContact accepts a one-shot contact-form submission.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req transport.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.SubmitContact(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, result)
}
