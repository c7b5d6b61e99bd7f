package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lunaxcode_site_backend/internal/leadapi"
	"lunaxcode_site_backend/platform/logger"
)

type testCacheConfig struct{}

func (testCacheConfig) GetCatalogCacheTTL() time.Duration { return time.Minute }
func (testCacheConfig) GetCompanyCacheTTL() time.Duration { return 5 * time.Minute }

// failingAPI rejects every call, forcing the bundled fallback tier.
type failingAPI struct{}

var errDown = errors.New("connection refused")

func (failingAPI) GetServices(context.Context) ([]leadapi.Service, error) { return nil, errDown }
func (failingAPI) GetPricingPlans(context.Context) ([]leadapi.PricingPlan, error) {
	return nil, errDown
}
func (failingAPI) GetFeatures(context.Context) ([]leadapi.Feature, error) { return nil, errDown }
func (failingAPI) GetAddons(context.Context) ([]leadapi.Addon, error)     { return nil, errDown }
func (failingAPI) GetCompanyInfo(context.Context) (leadapi.CompanyInfo, error) {
	return leadapi.CompanyInfo{}, errDown
}
func (failingAPI) GetOnboardingQuestions(context.Context, string) (leadapi.QuestionSet, error) {
	return leadapi.QuestionSet{}, errDown
}

// workingAPI serves fixed remote data and counts calls.
type workingAPI struct {
	failingAPI
	serviceCalls int
}

func (a *workingAPI) GetServices(context.Context) ([]leadapi.Service, error) {
	a.serviceCalls++
	return []leadapi.Service{{ID: "landing_page", Name: "Remote Landing Page", Timeline: "24 hours"}}, nil
}

func newService(remote RemoteAPI) *Service {
	return New(remote, testCacheConfig{}, logger.New("development"))
}

func TestFallbackServesAllReads(t *testing.T) {
	svc := newService(failingAPI{})
	ctx := context.Background()

	if got := svc.Services(ctx); len(got) != 5 {
		t.Fatalf("expected 5 fallback services, got %d", len(got))
	}
	if got := svc.PricingPlans(ctx); len(got) != 5 {
		t.Fatalf("expected 5 fallback plans, got %d", len(got))
	}
	if got := svc.Features(ctx); len(got) != 6 {
		t.Fatalf("expected 6 fallback features, got %d", len(got))
	}
	if got := svc.Addons(ctx); len(got) != 3 {
		t.Fatalf("expected 3 fallback addons, got %d", len(got))
	}
	if got := svc.CompanyInfo(ctx); got.Name != "Lunaxcode" {
		t.Fatalf("expected fallback company info, got %+v", got)
	}
	if got := svc.Questions(ctx, "landing_page"); len(got.Questions) != 4 {
		t.Fatalf("expected 4 fallback questions, got %d", len(got.Questions))
	}
}

func TestUnknownServiceTypeYieldsEmptyQuestions(t *testing.T) {
	svc := newService(failingAPI{})

	set := svc.Questions(context.Background(), "consulting")
	if set.Questions == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(set.Questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(set.Questions))
	}
	if set.ServiceType != "consulting" {
		t.Fatalf("expected service type echoed, got %q", set.ServiceType)
	}
}

func TestRemoteWinsOverFallback(t *testing.T) {
	svc := newService(&workingAPI{})

	services := svc.Services(context.Background())
	if len(services) != 1 || services[0].Name != "Remote Landing Page" {
		t.Fatalf("expected remote services, got %+v", services)
	}
}

func TestRemoteSuccessIsCached(t *testing.T) {
	api := &workingAPI{}
	svc := newService(api)
	ctx := context.Background()

	svc.Services(ctx)
	svc.Services(ctx)
	svc.Services(ctx)

	if api.serviceCalls != 1 {
		t.Fatalf("expected a single remote call within the freshness window, got %d", api.serviceCalls)
	}
}

func TestDefaultTimeline(t *testing.T) {
	svc := newService(failingAPI{})
	ctx := context.Background()

	if got := svc.DefaultTimeline(ctx, "landing_page"); got != "48 hours" {
		t.Fatalf("expected catalog timeline, got %q", got)
	}
	if got := svc.DefaultTimeline(ctx, "unknown"); got != "" {
		t.Fatalf("expected empty timeline for unknown service, got %q", got)
	}
}

func TestPrefetchWarmsCache(t *testing.T) {
	api := &workingAPI{}
	svc := newService(api)

	svc.Prefetch(context.Background())
	svc.Services(context.Background())

	if api.serviceCalls != 1 {
		t.Fatalf("expected prefetch to warm the cache, got %d remote calls", api.serviceCalls)
	}
}
