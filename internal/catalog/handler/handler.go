// Package handler exposes catalog reads over HTTP.
package handler

import (
	"lunaxcode_site_backend/internal/catalog/service"
	"lunaxcode_site_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the public catalog endpoints. Every read resolves through
// the fallback chain, so these endpoints never return a data-availability
// error.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListServices returns the service catalog.
func (h *Handler) ListServices(c *gin.Context) {
	httpkit.OK(c, h.svc.Services(c.Request.Context()))
}

// ListPricingPlans returns the pricing catalog.
func (h *Handler) ListPricingPlans(c *gin.Context) {
	httpkit.OK(c, h.svc.PricingPlans(c.Request.Context()))
}

// ListFeatures returns the feature highlights.
func (h *Handler) ListFeatures(c *gin.Context) {
	httpkit.OK(c, h.svc.Features(c.Request.Context()))
}

// ListAddons returns the add-on catalog.
func (h *Handler) ListAddons(c *gin.Context) {
	httpkit.OK(c, h.svc.Addons(c.Request.Context()))
}

// GetCompanyInfo returns the company profile.
func (h *Handler) GetCompanyInfo(c *gin.Context) {
	httpkit.OK(c, h.svc.CompanyInfo(c.Request.Context()))
}

// GetOnboardingQuestions returns the question set for a service type.
// A service type with no configured questions yields an empty list.
func (h *Handler) GetOnboardingQuestions(c *gin.Context) {
	serviceType := c.Param("serviceType")
	httpkit.OK(c, h.svc.Questions(c.Request.Context(), serviceType))
}
