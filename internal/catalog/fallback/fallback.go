// Package fallback provides the bundled catalog datasets used when the
// remote lead API is unreachable. The data is shaped identically to the
// remote schema so callers cannot tell which tier served them.
package fallback

import (
	_ "embed"
	"fmt"
	"sync"

	"lunaxcode_site_backend/internal/leadapi"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var dataYAML []byte

//go:embed questions.yaml
var questionsYAML []byte

type catalogData struct {
	Services []leadapi.Service     `yaml:"services"`
	Pricing  []leadapi.PricingPlan `yaml:"pricing"`
	Features []leadapi.Feature     `yaml:"features"`
	Addons   []leadapi.Addon       `yaml:"addons"`
	Company  leadapi.CompanyInfo   `yaml:"company"`
}

var (
	loadOnce sync.Once
	data     catalogData
	bank     map[string]leadapi.QuestionSet
)

func load() {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(dataYAML, &data); err != nil {
			panic(fmt.Sprintf("fallback: malformed data.yaml: %v", err))
		}

		raw := map[string]leadapi.QuestionSet{}
		if err := yaml.Unmarshal(questionsYAML, &raw); err != nil {
			panic(fmt.Sprintf("fallback: malformed questions.yaml: %v", err))
		}
		bank = make(map[string]leadapi.QuestionSet, len(raw))
		for serviceType, set := range raw {
			set.ServiceType = serviceType
			bank[serviceType] = set
		}
	})
}

// Services returns the bundled service catalog.
func Services() []leadapi.Service {
	load()
	return append([]leadapi.Service(nil), data.Services...)
}

// PricingPlans returns the bundled pricing catalog.
func PricingPlans() []leadapi.PricingPlan {
	load()
	return append([]leadapi.PricingPlan(nil), data.Pricing...)
}

// Features returns the bundled feature highlights.
func Features() []leadapi.Feature {
	load()
	return append([]leadapi.Feature(nil), data.Features...)
}

// Addons returns the bundled add-on catalog.
func Addons() []leadapi.Addon {
	load()
	return append([]leadapi.Addon(nil), data.Addons...)
}

// CompanyInfo returns the bundled company profile.
func CompanyInfo() leadapi.CompanyInfo {
	load()
	return data.Company
}

// Questions returns the bundled question set for a service type. A service
// type with no bank entry yields an empty set; that is a valid
// configuration, not an error.
func Questions(serviceType string) leadapi.QuestionSet {
	load()
	if set, ok := bank[serviceType]; ok {
		out := set
		out.Questions = append([]leadapi.Question(nil), set.Questions...)
		return out
	}
	return leadapi.QuestionSet{ServiceType: serviceType, Questions: []leadapi.Question{}}
}
