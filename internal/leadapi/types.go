package leadapi

import "encoding/json"

// Wire types for the lunaxcode lead API. Field names follow the remote
// schema, which is also the shape of the bundled fallback datasets.

// Service is one entry of the service catalog.
type Service struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Details     string `json:"details" yaml:"details"`
	Icon        string `json:"icon" yaml:"icon"`
	Timeline    string `json:"timeline" yaml:"timeline"`
}

// PricingPlan is one entry of the pricing catalog.
type PricingPlan struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Price    int      `json:"price" yaml:"price"`
	Currency string   `json:"currency" yaml:"currency"`
	Timeline string   `json:"timeline" yaml:"timeline"`
	Features []string `json:"features" yaml:"features"`
	Popular  bool     `json:"popular" yaml:"popular"`
}

// Feature is one marketing feature highlight.
type Feature struct {
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Addon is one optional priced add-on.
type Addon struct {
	Name       string `json:"name" yaml:"name"`
	PriceRange string `json:"price_range" yaml:"price_range"`
	Currency   string `json:"currency" yaml:"currency"`
	Unit       string `json:"unit" yaml:"unit"`
}

// CompanyContact is the public contact block of CompanyInfo.
type CompanyContact struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
}

// PaymentTerms describes how projects are invoiced.
type PaymentTerms struct {
	Deposit string   `json:"deposit" yaml:"deposit"`
	Balance string   `json:"balance" yaml:"balance"`
	Methods []string `json:"methods" yaml:"methods"`
}

// CompanyInfo is the company profile record.
type CompanyInfo struct {
	Name         string         `json:"name" yaml:"name"`
	Tagline      string         `json:"tagline" yaml:"tagline"`
	Description  string         `json:"description" yaml:"description"`
	Contact      CompanyContact `json:"contact" yaml:"contact"`
	PaymentTerms PaymentTerms   `json:"payment_terms" yaml:"payment_terms"`
}

// QuestionType enumerates the supported intake question kinds.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionSelect   QuestionType = "select"
	QuestionCheckbox QuestionType = "checkbox"
)

// Question is one service-specific intake question.
type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Label       string       `json:"label" yaml:"label"`
	Type        QuestionType `json:"type" yaml:"type"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
}

// QuestionSet is the ordered question list for one service type.
type QuestionSet struct {
	ServiceType string     `json:"service_type" yaml:"service_type"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// AnswerValue is a single-string or list-of-strings intake answer,
// keyed by question id at runtime. On the wire it is a bare JSON string
// for single-value questions and a JSON array for checkbox questions.
type AnswerValue struct {
	Value  string
	Values []string
	List   bool
}

// SingleAnswer builds a single-value answer.
func SingleAnswer(value string) AnswerValue {
	return AnswerValue{Value: value}
}

// ListAnswer builds a multi-select answer.
func ListAnswer(values ...string) AnswerValue {
	return AnswerValue{Values: values, List: true}
}

// MarshalJSON encodes the answer as a bare string or an array.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.List {
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AnswerValue{Value: s}
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*a = AnswerValue{Values: values, List: true}
	return nil
}

// Empty reports whether the answer carries no usable content.
func (a AnswerValue) Empty() bool {
	if a.List {
		return len(a.Values) == 0
	}
	return a.Value == ""
}

// String renders the answer for human-readable summaries.
func (a AnswerValue) String() string {
	if a.List {
		out := ""
		for i, v := range a.Values {
			if i > 0 {
				out += ", "
			}
			out += v
		}
		return out
	}
	return a.Value
}

// LeadCreate is the record posted to the lead API.
type LeadCreate struct {
	FullName           string                 `json:"full_name"`
	Email              string                 `json:"email"`
	Phone              string                 `json:"phone,omitempty"`
	Company            string                 `json:"company,omitempty"`
	ServiceType        string                 `json:"service_type"`
	BudgetRange        string                 `json:"budget_range"`
	Timeline           string                 `json:"timeline,omitempty"`
	ProjectDescription string                 `json:"project_description,omitempty"`
	Answers            map[string]AnswerValue `json:"answers"`
	Source             string                 `json:"source"`
}

// Lead is the created lead returned by the API.
type Lead struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	ServiceType string `json:"service_type"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
