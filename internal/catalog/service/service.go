// Package service provides catalog business logic: every read resolves
// through an ordered provider chain (fresh cache, remote API, bundled
// fallback) so data unavailability is never observable by callers.
package service

import (
	"context"
	"sync"
	"time"

	"lunaxcode_site_backend/internal/catalog/fallback"
	"lunaxcode_site_backend/internal/leadapi"
	"lunaxcode_site_backend/platform/config"
	"lunaxcode_site_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// RemoteAPI is the subset of the lead API client the catalog reads from.
type RemoteAPI interface {
	GetServices(ctx context.Context) ([]leadapi.Service, error)
	GetPricingPlans(ctx context.Context) ([]leadapi.PricingPlan, error)
	GetFeatures(ctx context.Context) ([]leadapi.Feature, error)
	GetAddons(ctx context.Context) ([]leadapi.Addon, error)
	GetCompanyInfo(ctx context.Context) (leadapi.CompanyInfo, error)
	GetOnboardingQuestions(ctx context.Context, serviceType string) (leadapi.QuestionSet, error)
}

// Service resolves catalog reads with remote-first, fallback-second
// semantics. Remote successes are cached for a short freshness window so a
// recovered API is picked up quickly while repeat reads stay instant.
type Service struct {
	remote     RemoteAPI
	log        *logger.Logger
	catalogTTL time.Duration
	companyTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	value   interface{}
	expires time.Time
}

// New creates a new catalog service.
func New(remote RemoteAPI, cfg config.CacheConfig, log *logger.Logger) *Service {
	return &Service{
		remote:     remote,
		log:        log,
		catalogTTL: cfg.GetCatalogCacheTTL(),
		companyTTL: cfg.GetCompanyCacheTTL(),
		cache:      make(map[string]cacheEntry),
	}
}

// provider yields a value or reports that it cannot serve. Chains are tried
// in order; the bundled provider at the end always serves.
type provider[T any] func(ctx context.Context) (T, bool)

func resolve[T any](ctx context.Context, chain ...provider[T]) T {
	for _, p := range chain {
		if v, ok := p(ctx); ok {
			return v
		}
	}
	var zero T
	return zero
}

func cached[T any](s *Service, key string) provider[T] {
	return func(context.Context) (T, bool) {
		s.mu.RLock()
		entry, ok := s.cache[key]
		s.mu.RUnlock()
		if !ok || time.Now().After(entry.expires) {
			var zero T
			return zero, false
		}
		value, ok := entry.value.(T)
		return value, ok
	}
}

func remote[T any](s *Service, key, op string, ttl time.Duration, fetch func(context.Context) (T, error)) provider[T] {
	return func(ctx context.Context) (T, bool) {
		value, err := fetch(ctx)
		if err != nil {
			s.log.FallbackEngaged(op, err)
			var zero T
			return zero, false
		}
		s.mu.Lock()
		s.cache[key] = cacheEntry{value: value, expires: time.Now().Add(ttl)}
		s.mu.Unlock()
		return value, true
	}
}

func bundled[T any](load func() T) provider[T] {
	return func(context.Context) (T, bool) {
		return load(), true
	}
}

// Services returns the service catalog.
func (s *Service) Services(ctx context.Context) []leadapi.Service {
	return resolve(ctx,
		cached[[]leadapi.Service](s, "services"),
		remote(s, "services", "get_services", s.catalogTTL, s.remote.GetServices),
		bundled(fallback.Services),
	)
}

// PricingPlans returns the pricing catalog.
func (s *Service) PricingPlans(ctx context.Context) []leadapi.PricingPlan {
	return resolve(ctx,
		cached[[]leadapi.PricingPlan](s, "pricing"),
		remote(s, "pricing", "get_pricing_plans", s.catalogTTL, s.remote.GetPricingPlans),
		bundled(fallback.PricingPlans),
	)
}

// Features returns the feature highlights.
func (s *Service) Features(ctx context.Context) []leadapi.Feature {
	return resolve(ctx,
		cached[[]leadapi.Feature](s, "features"),
		remote(s, "features", "get_features", s.catalogTTL, s.remote.GetFeatures),
		bundled(fallback.Features),
	)
}

// Addons returns the add-on catalog.
func (s *Service) Addons(ctx context.Context) []leadapi.Addon {
	return resolve(ctx,
		cached[[]leadapi.Addon](s, "addons"),
		remote(s, "addons", "get_addons", s.catalogTTL, s.remote.GetAddons),
		bundled(fallback.Addons),
	)
}

// CompanyInfo returns the company profile. It changes rarely, so it gets a
// longer freshness window than the rest of the catalog.
func (s *Service) CompanyInfo(ctx context.Context) leadapi.CompanyInfo {
	return resolve(ctx,
		cached[leadapi.CompanyInfo](s, "company"),
		remote(s, "company", "get_company_info", s.companyTTL, s.remote.GetCompanyInfo),
		bundled(fallback.CompanyInfo),
	)
}

// Questions returns the question set for a service type. A service type
// unknown to both the remote API and the bundled bank resolves to an empty
// question list; that is a valid configuration, not an error.
func (s *Service) Questions(ctx context.Context, serviceType string) leadapi.QuestionSet {
	key := "questions:" + serviceType
	set := resolve(ctx,
		cached[leadapi.QuestionSet](s, key),
		remote(s, key, "get_onboarding_questions", s.catalogTTL, func(ctx context.Context) (leadapi.QuestionSet, error) {
			return s.remote.GetOnboardingQuestions(ctx, serviceType)
		}),
		bundled(func() leadapi.QuestionSet { return fallback.Questions(serviceType) }),
	)
	if len(set.Questions) == 0 {
		s.log.Debug("no questions configured for service type", "service_type", serviceType)
	}
	return set
}

// DefaultTimeline returns the catalog timeline for a service type, used to
// fill submissions that left the timeline blank.
func (s *Service) DefaultTimeline(ctx context.Context, serviceType string) string {
	for _, svc := range s.Services(ctx) {
		if svc.ID == serviceType {
			return svc.Timeline
		}
	}
	return ""
}

// ServiceName returns the display name for a service type, falling back to
// the raw id when the catalog has no entry.
func (s *Service) ServiceName(ctx context.Context, serviceType string) string {
	for _, svc := range s.Services(ctx) {
		if svc.ID == serviceType {
			return svc.Name
		}
	}
	return serviceType
}

// Prefetch warms every catalog read plus the question set of each service
// so the first wizard open renders instantly. Resolution never fails, so
// this only populates caches.
func (s *Service) Prefetch(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { s.PricingPlans(ctx); return nil })
	g.Go(func() error { s.Features(ctx); return nil })
	g.Go(func() error { s.Addons(ctx); return nil })
	g.Go(func() error { s.CompanyInfo(ctx); return nil })

	services := s.Services(ctx)
	for _, svc := range services {
		serviceType := svc.ID
		g.Go(func() error { s.Questions(ctx, serviceType); return nil })
	}

	_ = g.Wait()
	s.log.Info("catalog prefetch complete", "services", len(services))
}
