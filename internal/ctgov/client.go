// Package ctgov is a thin client for the ClinicalTrials.gov v2 study API.
// The discovery pipeline consumes only its output contract: trial records
// with intervention name/description, sponsor, phase, and status.
package ctgov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://clinicaltrials.gov/api/v2"
	DefaultMaxResults = 100
	// DefaultRequestDelay spaces successive registry calls to stay under the
	// documented request-rate ceiling.
	DefaultRequestDelay = 250 * time.Millisecond
)

// Intervention is one arm intervention as the registry reports it. The name
// is raw registry text, not normalized.
type Intervention struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Trial is one study record, flattened from the registry's nested modules.
type Trial struct {
	NCTID         string         `json:"nct_id"`
	Phase         string         `json:"phase"`
	Status        string         `json:"status"`
	LeadSponsor   string         `json:"lead_sponsor"`
	Conditions    []string       `json:"conditions,omitempty"`
	Interventions []Intervention `json:"interventions,omitempty"`
}

type Config struct {
	BaseURL      string
	MaxResults   int
	RequestDelay time.Duration
	HTTPClient   *http.Client
}

type Client struct {
	cfg     Config
	limiter <-chan time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = DefaultRequestDelay
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	ticker := time.NewTicker(cfg.RequestDelay)
	return &Client{cfg: cfg, limiter: ticker.C}
}

// SearchByCondition returns trials whose condition matches the term.
func (c *Client) SearchByCondition(ctx context.Context, term string, maxResults int) ([]Trial, error) {
	return c.search(ctx, "query.cond", term, maxResults)
}

// SearchByIntervention returns trials whose intervention name matches the term.
func (c *Client) SearchByIntervention(ctx context.Context, term string, maxResults int) ([]Trial, error) {
	return c.search(ctx, "query.intr", term, maxResults)
}

func (c *Client) search(ctx context.Context, queryParam, term string, maxResults int) ([]Trial, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("empty search term")
	}
	if maxResults <= 0 || maxResults > c.cfg.MaxResults {
		maxResults = c.cfg.MaxResults
	}
	if err := c.waitRateLimit(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		queryParam: {term},
		"pageSize": {strconv.Itoa(maxResults)},
		"fields": {strings.Join([]string{
			"NCTId", "OverallStatus", "Phase", "LeadSponsorName",
			"Condition", "InterventionType", "InterventionName", "InterventionDescription",
		}, "|")},
	}
	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/studies?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d body=%s", res.StatusCode, clamp(string(body), 200))
	}

	var parsed studiesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode studies: %w", err)
	}

	out := make([]Trial, 0, len(parsed.Studies))
	for _, s := range parsed.Studies {
		t := flattenStudy(s)
		if t.NCTID == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Client) waitRateLimit(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.limiter:
		return nil
	}
}

// --- registry response shape (v2 study API, nested modules) ---

type studiesResponse struct {
	Studies []study `json:"studies"`
}

type study struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID string `json:"nctId"`
		} `json:"identificationModule"`
		StatusModule struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"statusModule"`
		DesignModule struct {
			Phases []string `json:"phases"`
		} `json:"designModule"`
		SponsorCollaboratorsModule struct {
			LeadSponsor struct {
				Name string `json:"name"`
			} `json:"leadSponsor"`
		} `json:"sponsorCollaboratorsModule"`
		ConditionsModule struct {
			Conditions []string `json:"conditions"`
		} `json:"conditionsModule"`
		ArmsInterventionsModule struct {
			Interventions []struct {
				Type        string `json:"type"`
				Name        string `json:"name"`
				Description string `json:"description"`
			} `json:"interventions"`
		} `json:"armsInterventionsModule"`
	} `json:"protocolSection"`
}

func flattenStudy(s study) Trial {
	ps := s.ProtocolSection
	t := Trial{
		NCTID:       strings.TrimSpace(ps.IdentificationModule.NCTID),
		Status:      strings.TrimSpace(ps.StatusModule.OverallStatus),
		LeadSponsor: strings.TrimSpace(ps.SponsorCollaboratorsModule.LeadSponsor.Name),
		Conditions:  ps.ConditionsModule.Conditions,
		Phase:       strings.Join(ps.DesignModule.Phases, "/"),
	}
	for _, iv := range ps.ArmsInterventionsModule.Interventions {
		name := strings.TrimSpace(iv.Name)
		if name == "" {
			continue
		}
		t.Interventions = append(t.Interventions, Intervention{
			Type:        strings.TrimSpace(iv.Type),
			Name:        name,
			Description: strings.TrimSpace(iv.Description),
		})
	}
	return t
}

func clamp(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
