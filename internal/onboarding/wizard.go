// Package onboarding implements the multi-step intake wizard as an explicit
// state container. The composition root constructs it with its dependencies;
// there is no package-level singleton.
package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lunaxcode_site_backend/internal/leadapi"
	"lunaxcode_site_backend/internal/leads/transport"
	"lunaxcode_site_backend/platform/apperr"
	"lunaxcode_site_backend/platform/logger"
)

// Wizard steps. The service step is satisfied by the open trigger itself,
// which always carries a service type.
const (
	StepService = iota + 1
	StepBasicInfo
	StepQuestions
	StepSummary
	StepSuccess
)

// QuestionSource loads the question set for a service type. The catalog
// resolver serves cached data first, so reopening the wizard is instant.
type QuestionSource interface {
	Questions(ctx context.Context, serviceType string) leadapi.QuestionSet
}

// LeadSubmitter delivers the accumulated form data.
type LeadSubmitter interface {
	SubmitOnboarding(ctx context.Context, data transport.OnboardingSubmission) (transport.OnboardingResult, error)
}

// RedirectFunc is invoked once, after the post-success delay, carrying the
// submission id and service type for the payment destination.
type RedirectFunc func(submissionID, serviceType string)

// FormData is the wizard's accumulated state. JSONPrompt and SubmissionID
// are populated only after a successful submit.
type FormData struct {
	ServiceType     string                         `json:"serviceType"`
	BasicInfo       transport.BasicInfo            `json:"basicInfo"`
	ServiceSpecific map[string]leadapi.AnswerValue `json:"serviceSpecific"`
	Timeline        string                         `json:"timeline,omitempty"`
	Budget          string                         `json:"budget,omitempty"`
	AdditionalNotes string                         `json:"additionalNotes,omitempty"`
	JSONPrompt      string                         `json:"jsonPrompt,omitempty"`
	SubmissionID    string                         `json:"submissionId,omitempty"`
}

// Snapshot is the queryable view the presentation layer renders from.
type Snapshot struct {
	Open      bool
	Step      int
	FormData  FormData
	Questions []leadapi.Question
	Loading   bool
	Error     string
}

// Wizard is the onboarding state machine. All methods are safe for
// concurrent use; submission is single-flight.
type Wizard struct {
	questions QuestionSource
	submitter LeadSubmitter
	log       *logger.Logger

	redirect      RedirectFunc
	redirectDelay time.Duration
	resetDelay    time.Duration

	mu       sync.Mutex
	gen      uint64
	open     bool
	step     int
	form     FormData
	active   []leadapi.Question
	loading  bool
	errMsg   string
	redirTmr *time.Timer
	resetTmr *time.Timer
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithRedirect sets the post-success redirect callback.
func WithRedirect(fn RedirectFunc) Option {
	return func(w *Wizard) { w.redirect = fn }
}

// WithRedirectDelay overrides the post-success delay before the redirect
// callback fires.
func WithRedirectDelay(d time.Duration) Option {
	return func(w *Wizard) { w.redirectDelay = d }
}

// WithResetDelay overrides the delay between Close and the state wipe.
func WithResetDelay(d time.Duration) Option {
	return func(w *Wizard) { w.resetDelay = d }
}

// New creates a Wizard in the closed state.
func New(questions QuestionSource, submitter LeadSubmitter, log *logger.Logger, opts ...Option) *Wizard {
	w := &Wizard{
		questions:     questions,
		submitter:     submitter,
		log:           log,
		redirectDelay: 3 * time.Second,
		resetDelay:    300 * time.Millisecond,
		step:          StepService,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open starts a session for the given service type. The question set is
// loaded before the first step is shown; an empty set is a valid
// configuration and simply skips the questions content.
func (w *Wizard) Open(ctx context.Context, serviceType string) error {
	if serviceType == "" {
		return apperr.Validation("serviceType is required")
	}
	set := w.questions.Questions(ctx, serviceType)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.wipeLocked()
	w.open = true
	w.step = StepService
	w.form = FormData{
		ServiceType:     serviceType,
		ServiceSpecific: map[string]leadapi.AnswerValue{},
	}
	w.active = append([]leadapi.Question(nil), set.Questions...)
	w.log.Debug("wizard opened", "service_type", serviceType, "questions", len(w.active))
	return nil
}

// Next advances one step when the current step's gate is satisfied. It
// reports whether the step changed.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.open || w.step >= StepSuccess || !w.canProceedLocked() {
		return false
	}
	w.step++
	return true
}

// Prev steps back without clearing the data entered on the step being left.
func (w *Wizard) Prev() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.open && w.step > StepService {
		w.step--
	}
}

// CanProceed reports whether the current step's gate is satisfied. The
// presentation layer uses this to disable its next control.
func (w *Wizard) CanProceed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open && w.canProceedLocked()
}

func (w *Wizard) canProceedLocked() bool {
	switch w.step {
	case StepService:
		return w.form.ServiceType != ""
	case StepBasicInfo:
		info := w.form.BasicInfo
		return info.Name != "" && info.Email != "" && info.Phone != ""
	case StepQuestions:
		for _, q := range w.active {
			if !q.Required {
				continue
			}
			if w.form.ServiceSpecific[q.ID].Empty() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// UpdateBasicInfo merges non-empty fields of the patch into the form.
func (w *Wizard) UpdateBasicInfo(patch transport.BasicInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if patch.Name != "" {
		w.form.BasicInfo.Name = patch.Name
	}
	if patch.Email != "" {
		w.form.BasicInfo.Email = patch.Email
	}
	if patch.Phone != "" {
		w.form.BasicInfo.Phone = patch.Phone
	}
	if patch.Company != "" {
		w.form.BasicInfo.Company = patch.Company
	}
}

// SetAnswer overwrites the answer for a question.
func (w *Wizard) SetAnswer(questionID string, answer leadapi.AnswerValue) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.form.ServiceSpecific == nil {
		w.form.ServiceSpecific = map[string]leadapi.AnswerValue{}
	}
	w.form.ServiceSpecific[questionID] = answer
}

// ToggleAnswer adds or removes one option from a checkbox answer.
func (w *Wizard) ToggleAnswer(questionID, option string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.form.ServiceSpecific == nil {
		w.form.ServiceSpecific = map[string]leadapi.AnswerValue{}
	}
	current := w.form.ServiceSpecific[questionID]
	values := current.Values
	for i, v := range values {
		if v == option {
			w.form.ServiceSpecific[questionID] = leadapi.ListAnswer(append(values[:i:i], values[i+1:]...)...)
			return
		}
	}
	w.form.ServiceSpecific[questionID] = leadapi.ListAnswer(append(values, option)...)
}

// SetTimeline records the requested timeline.
func (w *Wizard) SetTimeline(timeline string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Timeline = timeline
}

// SetBudget records the stated budget.
func (w *Wizard) SetBudget(budget string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Budget = budget
}

// SetAdditionalNotes records the free-text notes.
func (w *Wizard) SetAdditionalNotes(notes string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.AdditionalNotes = notes
}

// Submit delivers the accumulated form data. It is only reachable from the
// summary step and is single-flight: a second call while one is in flight
// is rejected without firing a duplicate transmission. On success the
// wizard moves to the success step and schedules the redirect callback; on
// rejection it stays on the summary step with the error recorded so the
// user may retry.
func (w *Wizard) Submit(ctx context.Context) (transport.OnboardingResult, error) {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return transport.OnboardingResult{}, apperr.Validation("wizard is not open")
	}
	if w.step != StepSummary {
		w.mu.Unlock()
		return transport.OnboardingResult{}, apperr.Validation("submit is only available from the summary step")
	}
	if w.loading {
		w.mu.Unlock()
		return transport.OnboardingResult{}, apperr.Validation("a submission is already in flight")
	}
	w.loading = true
	w.errMsg = ""
	gen := w.gen
	data := w.submissionLocked()
	w.mu.Unlock()

	result, err := w.submitter.SubmitOnboarding(ctx, data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		// The wizard was reset while the submission was in flight; the
		// state belongs to a newer session now.
		return result, err
	}
	w.loading = false
	if err != nil {
		w.log.Warn("onboarding submission rejected", "error", err.Error())
		w.errMsg = "Failed to submit onboarding. Please try again."
		return transport.OnboardingResult{}, err
	}

	w.form.JSONPrompt = w.promptLocked()
	w.form.SubmissionID = result.ID
	w.step = StepSuccess
	w.scheduleRedirectLocked(gen, result.ID, data.ServiceType)
	return result, nil
}

func (w *Wizard) submissionLocked() transport.OnboardingSubmission {
	answers := make(map[string]leadapi.AnswerValue, len(w.form.ServiceSpecific))
	for k, v := range w.form.ServiceSpecific {
		answers[k] = v
	}
	return transport.OnboardingSubmission{
		ServiceType:     w.form.ServiceType,
		BasicInfo:       w.form.BasicInfo,
		ServiceSpecific: answers,
		Timeline:        w.form.Timeline,
		Budget:          w.form.Budget,
		AdditionalNotes: w.form.AdditionalNotes,
	}
}

// promptLocked renders the human-readable requirements summary stored
// alongside the submission id.
func (w *Wizard) promptLocked() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project Requirements for %s:\n\n", w.form.ServiceType)
	b.WriteString("Basic Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", w.form.BasicInfo.Name)
	fmt.Fprintf(&b, "- Email: %s\n", w.form.BasicInfo.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", w.form.BasicInfo.Phone)
	if w.form.BasicInfo.Company != "" {
		fmt.Fprintf(&b, "- Company: %s\n", w.form.BasicInfo.Company)
	}

	b.WriteString("\nService-Specific Requirements:\n")
	for _, q := range w.active {
		answer := w.form.ServiceSpecific[q.ID]
		if answer.Empty() {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", q.Label, answer.String())
	}

	if w.form.AdditionalNotes != "" {
		fmt.Fprintf(&b, "\nAdditional Notes: %s\n", w.form.AdditionalNotes)
	}
	return b.String()
}

func (w *Wizard) scheduleRedirectLocked(gen uint64, id, serviceType string) {
	if w.redirect == nil {
		return
	}
	w.redirTmr = time.AfterFunc(w.redirectDelay, func() {
		w.mu.Lock()
		stale := w.gen != gen
		w.mu.Unlock()
		if stale {
			return
		}
		w.redirect(id, serviceType)
	})
}

// Close hides the wizard and schedules the state wipe after a short delay
// so a closing animation can complete. A session opened before the wipe
// fires supersedes it.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
	gen := w.gen
	w.resetTmr = time.AfterFunc(w.resetDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.gen != gen {
			return
		}
		w.wipeLocked()
	})
}

// Reset immediately returns the wizard to its initial state, cancelling any
// pending redirect. In-flight submissions complete but their results are
// discarded.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wipeLocked()
}

// wipeLocked clears all session state and invalidates outstanding timers
// and in-flight work by advancing the generation token.
func (w *Wizard) wipeLocked() {
	w.gen++
	if w.redirTmr != nil {
		w.redirTmr.Stop()
		w.redirTmr = nil
	}
	if w.resetTmr != nil {
		w.resetTmr.Stop()
		w.resetTmr = nil
	}
	w.open = false
	w.step = StepService
	w.form = FormData{}
	w.active = nil
	w.loading = false
	w.errMsg = ""
}

// Snapshot returns a copy of the current state for rendering.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	form := w.form
	if w.form.ServiceSpecific != nil {
		form.ServiceSpecific = make(map[string]leadapi.AnswerValue, len(w.form.ServiceSpecific))
		for k, v := range w.form.ServiceSpecific {
			form.ServiceSpecific[k] = v
		}
	}
	return Snapshot{
		Open:      w.open,
		Step:      w.step,
		FormData:  form,
		Questions: append([]leadapi.Question(nil), w.active...),
		Loading:   w.loading,
		Error:     w.errMsg,
	}
}
