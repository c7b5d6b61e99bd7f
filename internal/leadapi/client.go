// Package leadapi provides the HTTP client for the lunaxcode lead API.
package leadapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lunaxcode_site_backend/platform/config"
	"lunaxcode_site_backend/platform/logger"
)

const apiVersion = "v1"

// ErrUnavailable marks any transport or server failure. Callers treat every
// non-2xx response and every network error uniformly as "API unavailable";
// the data layer recovers with bundled fallback data or local persistence.
var ErrUnavailable = errors.New("lead api unavailable")

// Client is the HTTP client for the lead API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a new lead API client.
func New(cfg config.LeadAPIConfig, log *logger.Logger) *Client {
	timeout := cfg.GetLeadAPITimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.GetLeadAPIURL(),
		log:        log,
	}
}

// GetServices fetches the service catalog.
func (c *Client) GetServices(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.getJSON(ctx, "/services", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPricingPlans fetches the pricing catalog.
func (c *Client) GetPricingPlans(ctx context.Context) ([]PricingPlan, error) {
	var out []PricingPlan
	if err := c.getJSON(ctx, "/pricing", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFeatures fetches the feature highlights.
func (c *Client) GetFeatures(ctx context.Context) ([]Feature, error) {
	var out []Feature
	if err := c.getJSON(ctx, "/features", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAddons fetches the add-on catalog.
func (c *Client) GetAddons(ctx context.Context) ([]Addon, error) {
	var out []Addon
	if err := c.getJSON(ctx, "/addons", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCompanyInfo fetches the company profile.
func (c *Client) GetCompanyInfo(ctx context.Context) (CompanyInfo, error) {
	var out CompanyInfo
	if err := c.getJSON(ctx, "/company", &out); err != nil {
		return CompanyInfo{}, err
	}
	return out, nil
}

// GetOnboardingQuestions fetches the question set for a service type.
func (c *Client) GetOnboardingQuestions(ctx context.Context, serviceType string) (QuestionSet, error) {
	var out QuestionSet
	path := "/onboarding/questions/" + url.PathEscape(serviceType)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return QuestionSet{}, err
	}
	return out, nil
}

// CreateLead posts a lead record and returns the created lead.
func (c *Client) CreateLead(ctx context.Context, lead LeadCreate) (Lead, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return Lead{}, fmt.Errorf("encode lead: %w", err)
	}

	reqURL := c.baseURL + "/api/" + apiVersion + "/leads"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return Lead{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("lead api request failed", "error", err, "url", reqURL)
		return Lead{}, fmt.Errorf("post leads: %w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Debug("lead api rejected lead", "status", resp.StatusCode)
		return Lead{}, fmt.Errorf("post leads: %w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var created Lead
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Lead{}, fmt.Errorf("decode lead: %w: %w", ErrUnavailable, err)
	}

	return created, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	reqURL := c.baseURL + "/api/" + apiVersion + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("lead api request failed", "error", err, "url", reqURL)
		return fmt.Errorf("get %s: %w: %w", path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("lead api upstream error", "status", resp.StatusCode, "url", reqURL)
		return fmt.Errorf("get %s: %w: status %d", path, ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("get %s: %w: decode: %w", path, ErrUnavailable, err)
	}

	return nil
}
