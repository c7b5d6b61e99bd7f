// Package leads bundles lead submission and its HTTP surface.
package leads

import (
	"lunaxcode_site_backend/internal/events"
	apphttp "lunaxcode_site_backend/internal/http"
	"lunaxcode_site_backend/internal/leads/handler"
	"lunaxcode_site_backend/internal/leads/service"
	"lunaxcode_site_backend/platform/kvstore"
	"lunaxcode_site_backend/platform/logger"
	"lunaxcode_site_backend/platform/validator"
)

// Module wires the lead submitter into the router.
type Module struct {
	Submitter *service.Submitter
	handler   *handler.Handler
}

// NewModule creates the leads module.
func NewModule(api service.LeadAPI, catalog service.Catalog, store kvstore.Store, bus events.Bus, validate *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(api, catalog, store, bus, log)
	return &Module{
		Submitter: svc,
		handler:   handler.New(svc, validate),
	}
}

// Name returns the module name.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts the submission endpoints on the rate-limited group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Submit.POST("/leads/onboarding", m.handler.SubmitOnboarding)
	ctx.Submit.POST("/leads/contact", m.handler.SubmitContact)
}
