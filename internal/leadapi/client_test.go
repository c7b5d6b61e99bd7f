package leadapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunaxcode_site_backend/platform/logger"
)

type testAPIConfig struct {
	url string
}

func (c testAPIConfig) GetLeadAPIURL() string            { return c.url }
func (c testAPIConfig) GetLeadAPITimeout() time.Duration { return 2 * time.Second }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testAPIConfig{url: srv.URL}, logger.New("development")), srv
}

func TestGetServices(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/services" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Service{{ID: "landing_page", Name: "Landing Page"}})
	}))

	services, err := client.GetServices(context.Background())
	if err != nil {
		t.Fatalf("GetServices: %v", err)
	}
	if len(services) != 1 || services[0].ID != "landing_page" {
		t.Fatalf("unexpected services %+v", services)
	}
}

func TestServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.GetPricingPlans(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClientErrorIsUnavailable(t *testing.T) {
	// 4xx and network failure are treated uniformly: both mean fallback.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))

	_, err := client.CreateLead(context.Background(), LeadCreate{FullName: "x"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestTransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := New(testAPIConfig{url: srv.URL}, logger.New("development"))
	_, err := client.GetCompanyInfo(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCreateLeadPostsRecord(t *testing.T) {
	var received LeadCreate
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/leads" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Lead{ID: 42, Status: "new"})
	}))

	lead, err := client.CreateLead(context.Background(), LeadCreate{
		FullName:    "Juan Dela Cruz",
		Email:       "juan@example.com",
		ServiceType: "landing_page",
		BudgetRange: "not_specified",
		Answers: map[string]AnswerValue{
			"sections": ListAnswer("Hero Section", "Pricing"),
			"ctaGoal":  SingleAnswer("Sign up"),
		},
		Source: "onboarding_form",
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.ID != 42 {
		t.Fatalf("expected id 42, got %d", lead.ID)
	}
	if received.FullName != "Juan Dela Cruz" {
		t.Fatalf("lead body not transmitted: %+v", received)
	}
	if got := received.Answers["sections"]; !got.List || len(got.Values) != 2 {
		t.Fatalf("checkbox answer lost list shape: %+v", got)
	}
	if got := received.Answers["ctaGoal"]; got.List || got.Value != "Sign up" {
		t.Fatalf("single answer lost shape: %+v", got)
	}
}
