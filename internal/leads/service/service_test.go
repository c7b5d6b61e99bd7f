package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"lunaxcode_site_backend/internal/leadapi"
	"lunaxcode_site_backend/internal/leads/transport"
	"lunaxcode_site_backend/platform/apperr"
	"lunaxcode_site_backend/platform/kvstore"
	"lunaxcode_site_backend/platform/logger"
)

type workingAPI struct {
	calls int
	last  leadapi.LeadCreate
}

func (a *workingAPI) CreateLead(_ context.Context, lead leadapi.LeadCreate) (leadapi.Lead, error) {
	a.calls++
	a.last = lead
	return leadapi.Lead{ID: 42, FullName: lead.FullName, Status: "new"}, nil
}

type failingAPI struct{}

func (failingAPI) CreateLead(context.Context, leadapi.LeadCreate) (leadapi.Lead, error) {
	return leadapi.Lead{}, leadapi.ErrUnavailable
}

type staticCatalog struct{}

func (staticCatalog) DefaultTimeline(context.Context, string) string { return "48 hours" }
func (staticCatalog) ServiceName(_ context.Context, t string) string {
	if t == "landing_page" {
		return "Landing Page"
	}
	return t
}

func onboardingFixture() transport.OnboardingSubmission {
	return transport.OnboardingSubmission{
		ServiceType: "landing_page",
		BasicInfo: transport.BasicInfo{
			Name:  "Juan Dela Cruz",
			Email: "juan@example.com",
			Phone: "09171234567",
		},
		ServiceSpecific: map[string]leadapi.AnswerValue{
			"pageType": leadapi.SingleAnswer("Product Launch"),
			"sections": leadapi.ListAnswer("Hero", "Pricing"),
		},
	}
}

func newSubmitter(api LeadAPI, store kvstore.Store) *Submitter {
	return New(api, staticCatalog{}, store, nil, logger.New("test"))
}

func TestSubmitOnboardingSuccess(t *testing.T) {
	api := &workingAPI{}
	s := newSubmitter(api, kvstore.NewMemoryStore())

	result, err := s.SubmitOnboarding(context.Background(), onboardingFixture())
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if result.ID != "42" {
		t.Fatalf("expected remote id 42, got %q", result.ID)
	}
	if api.last.Phone != "+639171234567" {
		t.Fatalf("expected normalized phone, got %q", api.last.Phone)
	}
	if api.last.Timeline != "48 hours" {
		t.Fatalf("expected catalog default timeline, got %q", api.last.Timeline)
	}
	if api.last.Source != "onboarding_form" {
		t.Fatalf("expected source onboarding_form, got %q", api.last.Source)
	}
	if api.last.BudgetRange != "not_specified" {
		t.Fatalf("expected default budget_range, got %q", api.last.BudgetRange)
	}
}

func TestSubmitOnboardingFallbackPersists(t *testing.T) {
	store := kvstore.NewMemoryStore()
	s := newSubmitter(failingAPI{}, store)

	result, err := s.SubmitOnboarding(context.Background(), onboardingFixture())
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if !strings.HasPrefix(result.ID, "onboarding_") {
		t.Fatalf("expected synthesized onboarding id, got %q", result.ID)
	}

	raw, ok, err := store.Get(result.ID)
	if err != nil || !ok {
		t.Fatalf("expected persisted record under %q (ok=%v err=%v)", result.ID, ok, err)
	}
	var stored StoredLead
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("decode stored record: %v", err)
	}
	if stored.Status != PendingStatus {
		t.Fatalf("expected status pending, got %q", stored.Status)
	}
	if stored.FullName != "Juan Dela Cruz" || stored.Email != "juan@example.com" {
		t.Fatalf("stored record lost basic info: %+v", stored)
	}
	if stored.Phone != "+639171234567" {
		t.Fatalf("expected normalized phone in stored record, got %q", stored.Phone)
	}
	if len(stored.Answers) != 2 {
		t.Fatalf("expected answers preserved, got %d", len(stored.Answers))
	}

	ids, err := s.PendingIDs()
	if err != nil {
		t.Fatalf("PendingIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != result.ID {
		t.Fatalf("expected index to list %q, got %v", result.ID, ids)
	}
}

func TestSubmitOnboardingIdempotentShape(t *testing.T) {
	for name, api := range map[string]LeadAPI{
		"working": &workingAPI{},
		"failing": failingAPI{},
	} {
		s := newSubmitter(api, kvstore.NewMemoryStore())
		result, err := s.SubmitOnboarding(context.Background(), onboardingFixture())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if result.ID == "" {
			t.Fatalf("%s: expected non-empty id", name)
		}
	}
}

func TestSubmitOnboardingValidation(t *testing.T) {
	s := newSubmitter(&workingAPI{}, kvstore.NewMemoryStore())

	data := onboardingFixture()
	data.BasicInfo.Name = ""
	_, err := s.SubmitOnboarding(context.Background(), data)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitOnboardingMalformedPhoneOmitted(t *testing.T) {
	api := &workingAPI{}
	s := newSubmitter(api, kvstore.NewMemoryStore())

	data := onboardingFixture()
	data.BasicInfo.Phone = "12345"
	if _, err := s.SubmitOnboarding(context.Background(), data); err != nil {
		t.Fatalf("malformed phone must not block submission: %v", err)
	}
	if api.last.Phone != "" {
		t.Fatalf("expected phone omitted, got %q", api.last.Phone)
	}
}

func TestProjectDescriptionPreference(t *testing.T) {
	api := &workingAPI{}
	s := newSubmitter(api, kvstore.NewMemoryStore())
	ctx := context.Background()

	data := onboardingFixture()
	data.AdditionalNotes = "Need it before the product launch."
	if _, err := s.SubmitOnboarding(ctx, data); err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if api.last.ProjectDescription != "Need it before the product launch." {
		t.Fatalf("notes must win, got %q", api.last.ProjectDescription)
	}

	data = onboardingFixture()
	if _, err := s.SubmitOnboarding(ctx, data); err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	desc := api.last.ProjectDescription
	if !strings.Contains(desc, "pageType: Product Launch") || !strings.Contains(desc, "sections: Hero, Pricing") {
		t.Fatalf("expected answers rendered into description, got %q", desc)
	}

	data = onboardingFixture()
	data.ServiceSpecific = nil
	if _, err := s.SubmitOnboarding(ctx, data); err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if api.last.ProjectDescription != "Landing Page request" {
		t.Fatalf("expected generic description, got %q", api.last.ProjectDescription)
	}
}

func TestSubmitContactSuccessAndFallback(t *testing.T) {
	contact := transport.ContactSubmission{
		Name:    "Maria Santos",
		Email:   "maria@example.com",
		Phone:   "9171234567",
		Message: "How much for a landing page?",
	}

	api := &workingAPI{}
	s := newSubmitter(api, kvstore.NewMemoryStore())
	result, err := s.SubmitContact(context.Background(), contact)
	if err != nil || !result.Success {
		t.Fatalf("expected success, got %v %v", result, err)
	}
	if api.last.ServiceType != "general_inquiry" {
		t.Fatalf("expected default service type, got %q", api.last.ServiceType)
	}
	if api.last.BudgetRange != "not_specified" {
		t.Fatalf("expected budget_range not_specified, got %q", api.last.BudgetRange)
	}
	if api.last.Source != "contact_form" {
		t.Fatalf("expected source contact_form, got %q", api.last.Source)
	}

	store := kvstore.NewMemoryStore()
	s = newSubmitter(failingAPI{}, store)
	result, err = s.SubmitContact(context.Background(), contact)
	if err != nil || !result.Success {
		t.Fatalf("fallback path must report success, got %v %v", result, err)
	}
	ids, err := s.PendingIDs()
	if err != nil {
		t.Fatalf("PendingIDs: %v", err)
	}
	if len(ids) != 1 || !strings.HasPrefix(ids[0], "contact_") {
		t.Fatalf("expected contact id in index, got %v", ids)
	}
}

func TestFallbackIDsUniqueWithinMillisecond(t *testing.T) {
	store := kvstore.NewMemoryStore()
	s := newSubmitter(failingAPI{}, store)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	ctx := context.Background()

	contact := transport.ContactSubmission{
		Name: "Maria Santos", Email: "maria@example.com", Message: "hi",
	}
	first, err := s.SubmitContact(ctx, contact)
	if err != nil || !first.Success {
		t.Fatalf("first SubmitContact: %v %v", first, err)
	}
	second, err := s.SubmitContact(ctx, contact)
	if err != nil || !second.Success {
		t.Fatalf("second SubmitContact: %v %v", second, err)
	}

	ids, err := s.PendingIDs()
	if err != nil {
		t.Fatalf("PendingIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct ids, got %v", ids)
	}
	for _, id := range ids {
		if _, ok, err := store.Get(id); err != nil || !ok {
			t.Fatalf("expected record under %q (ok=%v err=%v)", id, ok, err)
		}
	}
}

func TestBackToBackFallbacksShareIndex(t *testing.T) {
	store := kvstore.NewMemoryStore()
	s := newSubmitter(failingAPI{}, store)
	ctx := context.Background()

	first, err := s.SubmitOnboarding(ctx, onboardingFixture())
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	_, err = s.SubmitContact(ctx, transport.ContactSubmission{
		Name: "Maria Santos", Email: "maria@example.com", Message: "hi",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}

	ids, err := s.PendingIDs()
	if err != nil {
		t.Fatalf("PendingIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected both fallback writes indexed, got %v", ids)
	}
	if ids[0] != first.ID {
		t.Fatalf("expected first id preserved in index, got %v", ids)
	}
}
