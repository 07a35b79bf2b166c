// Package pubs queries the Europe PMC REST API for publication counts. The
// counts feed reporting only, so lookup failures degrade to zero rather than
// failing a research run.
package pubs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest"

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// RatePerSec caps outbound queries. Europe PMC asks for no more than a
	// few requests per second from anonymous clients.
	RatePerSec float64
}

type Client struct {
	cfg     Config
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 2
	}
	return &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
	}
}

// HitCount returns the number of publications matching the query. Errors are
// returned so callers can distinguish a true zero from a failed lookup.
func (c *Client) HitCount(ctx context.Context, query string) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, fmt.Errorf("empty query")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	params := url.Values{
		"query":    {query},
		"format":   {"json"},
		"pageSize": {"1"},
	}
	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status code: %d", res.StatusCode)
	}

	var parsed struct {
		HitCount int `json:"hitCount"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.HitCount, nil
}

// TargetLiteratureCounts looks up publication counts for a target and each
// asset name. A failed lookup logs and records zero.
func (c *Client) TargetLiteratureCounts(ctx context.Context, target string, assetNames []string) map[string]int {
	counts := make(map[string]int, len(assetNames)+1)
	names := append([]string{target}, assetNames...)
	for _, name := range names {
		n, err := c.HitCount(ctx, fmt.Sprintf("%q", name))
		if err != nil {
			log.Printf("targetscout pubs lookup_failed term=%s err=%v", name, err)
			n = 0
		}
		counts[name] = n
	}
	return counts
}
