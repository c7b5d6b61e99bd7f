// Package catalog bundles the catalog service and its HTTP surface.
package catalog

import (
	"lunaxcode_site_backend/internal/catalog/handler"
	"lunaxcode_site_backend/internal/catalog/service"
	apphttp "lunaxcode_site_backend/internal/http"
	"lunaxcode_site_backend/platform/config"
	"lunaxcode_site_backend/platform/logger"
)

// Module wires the catalog resolver into the router.
type Module struct {
	Service *service.Service
	handler *handler.Handler
}

// NewModule creates the catalog module.
func NewModule(remote service.RemoteAPI, cfg config.CacheConfig, log *logger.Logger) *Module {
	svc := service.New(remote, cfg, log)
	return &Module{
		Service: svc,
		handler: handler.New(svc),
	}
}

// Name returns the module name.
func (m *Module) Name() string { return "catalog" }

// RegisterRoutes mounts the catalog endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/services", m.handler.ListServices)
	ctx.V1.GET("/pricing", m.handler.ListPricingPlans)
	ctx.V1.GET("/features", m.handler.ListFeatures)
	ctx.V1.GET("/addons", m.handler.ListAddons)
	ctx.V1.GET("/company", m.handler.GetCompanyInfo)
	ctx.V1.GET("/onboarding/questions/:serviceType", m.handler.GetOnboardingQuestions)
}
