// Package service implements lead submission: normalize, transmit, and
// fall back to durable local persistence when the remote API is down.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	catalogsvc "lunaxcode_site_backend/internal/catalog/service"
	"lunaxcode_site_backend/internal/events"
	"lunaxcode_site_backend/internal/leadapi"
	"lunaxcode_site_backend/internal/leads/transport"
	"lunaxcode_site_backend/platform/apperr"
	"lunaxcode_site_backend/platform/kvstore"
	"lunaxcode_site_backend/platform/logger"
	"lunaxcode_site_backend/platform/phone"
)

// IndexKey is the well-known store key holding the JSON list of locally
// persisted submission ids.
const IndexKey = "onboarding_list"

// PendingStatus marks a locally persisted record awaiting out-of-band sync.
const PendingStatus = "pending"

// LeadAPI is the remote lead-creation boundary.
type LeadAPI interface {
	CreateLead(ctx context.Context, lead leadapi.LeadCreate) (leadapi.Lead, error)
}

// Catalog resolves service metadata used while building the lead record.
type Catalog interface {
	DefaultTimeline(ctx context.Context, serviceType string) string
	ServiceName(ctx context.Context, serviceType string) string
}

// StoredLead is the durable fallback record. It embeds the full outgoing
// lead so nothing entered by the user is lost.
type StoredLead struct {
	leadapi.LeadCreate
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Submitter turns form data into lead records and delivers them, locally if
// it must.
type Submitter struct {
	api     LeadAPI
	catalog Catalog
	store   kvstore.Store
	bus     events.Bus
	log     *logger.Logger

	// mu serializes fallback writes so two back-to-back submissions
	// cannot clobber each other's index entry.
	mu sync.Mutex
	// lastMilli is the millisecond component of the most recent
	// synthesized id; guarded by mu.
	lastMilli int64

	now func() time.Time
}

// New creates a Submitter.
func New(api LeadAPI, catalog Catalog, store kvstore.Store, bus events.Bus, log *logger.Logger) *Submitter {
	return &Submitter{
		api:     api,
		catalog: catalog,
		store:   store,
		bus:     bus,
		log:     log,
		now:     time.Now,
	}
}

// SubmitOnboarding builds a lead record from the wizard's accumulated form
// data and transmits it. When the remote API is unavailable the record is
// persisted locally under a synthesized id and the call still succeeds; the
// returned shape is identical on both paths.
func (s *Submitter) SubmitOnboarding(ctx context.Context, data transport.OnboardingSubmission) (transport.OnboardingResult, error) {
	if err := s.checkOnboarding(data); err != nil {
		return transport.OnboardingResult{}, err
	}

	timeline := data.Timeline
	if timeline == "" {
		timeline = s.catalog.DefaultTimeline(ctx, data.ServiceType)
	}

	budget := data.Budget
	if budget == "" {
		budget = "not_specified"
	}

	record := leadapi.LeadCreate{
		FullName:           data.BasicInfo.Name,
		Email:              data.BasicInfo.Email,
		Phone:              phone.Normalize(data.BasicInfo.Phone),
		Company:            data.BasicInfo.Company,
		ServiceType:        data.ServiceType,
		BudgetRange:        budget,
		Timeline:           timeline,
		ProjectDescription: s.projectDescription(ctx, data),
		Answers:            data.ServiceSpecific,
		Source:             "onboarding_form",
	}
	if record.Answers == nil {
		record.Answers = map[string]leadapi.AnswerValue{}
	}

	lead, err := s.api.CreateLead(ctx, record)
	if err == nil {
		id := strconv.FormatInt(lead.ID, 10)
		s.notifyOnboarding(ctx, id, record, false)
		return transport.OnboardingResult{ID: id}, nil
	}
	if !errors.Is(err, leadapi.ErrUnavailable) {
		return transport.OnboardingResult{}, apperr.Wrap(apperr.KindInternal, "submit onboarding lead", err)
	}

	id, perr := s.persistLocal("onboarding", record, err)
	if perr != nil {
		return transport.OnboardingResult{}, perr
	}
	s.notifyOnboarding(ctx, id, record, true)
	return transport.OnboardingResult{ID: id}, nil
}

// SubmitContact delivers a contact-form submission through the same
// normalize, transmit, persist-on-failure protocol. The result reports
// success regardless of which path was taken.
func (s *Submitter) SubmitContact(ctx context.Context, data transport.ContactSubmission) (transport.ContactResult, error) {
	if err := s.checkContact(data); err != nil {
		return transport.ContactResult{}, err
	}

	serviceType := data.Service
	if serviceType == "" {
		serviceType = "general_inquiry"
	}

	record := leadapi.LeadCreate{
		FullName:           data.Name,
		Email:              data.Email,
		Phone:              phone.Normalize(data.Phone),
		Company:            data.Company,
		ServiceType:        serviceType,
		BudgetRange:        "not_specified",
		ProjectDescription: data.Message,
		Answers:            map[string]leadapi.AnswerValue{},
		Source:             "contact_form",
	}

	_, err := s.api.CreateLead(ctx, record)
	if err == nil {
		s.notifyContact(ctx, "", record, false)
		return transport.ContactResult{Success: true}, nil
	}
	if !errors.Is(err, leadapi.ErrUnavailable) {
		return transport.ContactResult{}, apperr.Wrap(apperr.KindInternal, "submit contact lead", err)
	}

	id, perr := s.persistLocal("contact", record, err)
	if perr != nil {
		return transport.ContactResult{}, perr
	}
	s.notifyContact(ctx, id, record, true)
	return transport.ContactResult{Success: true}, nil
}

// checkOnboarding rejects contract violations that the wizard's own gating
// would normally prevent.
func (s *Submitter) checkOnboarding(data transport.OnboardingSubmission) error {
	switch {
	case data.ServiceType == "":
		return apperr.Validation("serviceType is required")
	case data.BasicInfo.Name == "":
		return apperr.Validation("name is required")
	case data.BasicInfo.Email == "":
		return apperr.Validation("email is required")
	}
	return nil
}

func (s *Submitter) checkContact(data transport.ContactSubmission) error {
	switch {
	case data.Name == "":
		return apperr.Validation("name is required")
	case data.Email == "":
		return apperr.Validation("email is required")
	case data.Message == "":
		return apperr.Validation("message is required")
	}
	return nil
}

// projectDescription prefers the free-text notes, then a readable rendering
// of the service-specific answers, then a generic service-name line.
func (s *Submitter) projectDescription(ctx context.Context, data transport.OnboardingSubmission) string {
	if data.AdditionalNotes != "" {
		return data.AdditionalNotes
	}
	if len(data.ServiceSpecific) > 0 {
		var b strings.Builder
		for _, id := range sortedKeys(data.ServiceSpecific) {
			answer := data.ServiceSpecific[id]
			if answer.Empty() {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(id)
			b.WriteString(": ")
			b.WriteString(answer.String())
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return s.catalog.ServiceName(ctx, data.ServiceType) + " request"
}

// persistLocal writes the record to the durable store under a synthesized id
// and appends the id to the index list. The index is read-modify-written
// under the submitter mutex.
func (s *Submitter) persistLocal(prefix string, record leadapi.LeadCreate, cause error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ms := now.UnixMilli()
	// Two fallback writes within the same millisecond would collide on
	// the id and the second Set would overwrite the first lead.
	if ms <= s.lastMilli {
		ms = s.lastMilli + 1
	}
	s.lastMilli = ms
	id := fmt.Sprintf("%s_%d", prefix, ms)

	stored := StoredLead{
		LeadCreate: record,
		ID:         id,
		Status:     PendingStatus,
		CreatedAt:  now,
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "encode fallback record", err)
	}
	if err := s.store.Set(id, string(payload)); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "persist fallback record", err)
	}
	if err := s.appendToIndex(id); err != nil {
		return "", err
	}

	s.log.LeadPersistedLocally(id, record.Source, cause)
	return id, nil
}

func (s *Submitter) appendToIndex(id string) error {
	raw, ok, err := s.store.Get(IndexKey)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "read fallback index", err)
	}
	var ids []string
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			// A corrupt index must not block lead capture; start over.
			s.log.Warn("fallback index corrupt, rebuilding", "error", err)
			ids = nil
		}
	}
	ids = append(ids, id)
	payload, err := json.Marshal(ids)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode fallback index", err)
	}
	if err := s.store.Set(IndexKey, string(payload)); err != nil {
		return apperr.Wrap(apperr.KindInternal, "write fallback index", err)
	}
	return nil
}

// PendingIDs lists locally persisted submissions awaiting sync.
func (s *Submitter) PendingIDs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(IndexKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "read fallback index", err)
	}
	if !ok || raw == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "decode fallback index", err)
	}
	return ids, nil
}

// notifyOnboarding publishes the domain event; delivery is asynchronous and
// any handler failure is absorbed by the bus.
func (s *Submitter) notifyOnboarding(ctx context.Context, id string, record leadapi.LeadCreate, local bool) {
	if s.bus == nil {
		return
	}
	details := ""
	if len(record.Answers) > 0 {
		if raw, err := json.MarshalIndent(record.Answers, "", "  "); err == nil {
			details = string(raw)
		}
	}
	s.bus.Publish(ctx, events.OnboardingSubmitted{
		BaseEvent:      events.NewBaseEvent(),
		SubmissionID:   id,
		ServiceType:    record.ServiceType,
		ServiceName:    s.catalog.ServiceName(ctx, record.ServiceType),
		CustomerName:   record.FullName,
		Email:          record.Email,
		Phone:          record.Phone,
		Company:        record.Company,
		Budget:         record.BudgetRange,
		Timeline:       record.Timeline,
		Notes:          record.ProjectDescription,
		ServiceDetails: details,
		StoredLocal:    local,
	})
}

func (s *Submitter) notifyContact(ctx context.Context, id string, record leadapi.LeadCreate, local bool) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ContactSubmitted{
		BaseEvent:    events.NewBaseEvent(),
		SubmissionID: id,
		CustomerName: record.FullName,
		Email:        record.Email,
		Phone:        record.Phone,
		Message:      record.ProjectDescription,
		StoredLocal:  local,
	})
}

func sortedKeys(m map[string]leadapi.AnswerValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Catalog = (*catalogsvc.Service)(nil)
