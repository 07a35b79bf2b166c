// Package edgar fetches SEC filings. It resolves a ticker to a CIK via the
// SEC's company tickers file and pulls the latest 10-K or 10-Q body as plain
// text for downstream analysis.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/joelkehle/targetscout/internal/cache"
)

const (
	tickersURL      = "https://www.sec.gov/files/company_tickers.json"
	submissionsBase = "https://data.sec.gov/submissions"
	archivesBase    = "https://www.sec.gov/Archives/edgar/data"

	// The SEC blocks requests without an identifying User-Agent.
	DefaultUserAgent = "targetscout research tool admin@joelkehle.com"

	cikCacheTTL = 7 * 24 * time.Hour
)

// Filing is one retrieved SEC filing body.
type Filing struct {
	Ticker    string `json:"ticker"`
	CIK       string `json:"cik"`
	Form      string `json:"form"`
	FiledDate string `json:"filed_date"`
	Accession string `json:"accession"`
	Text      string `json:"text"`
}

type Config struct {
	UserAgent    string
	RequestDelay time.Duration
	HTTPClient   *http.Client
}

// Client resolves tickers and fetches filing documents. The CIK table is
// memoized through the injected cache store rather than package state, so
// tests can run against a throwaway cache.
type Client struct {
	cfg     Config
	store   *cache.Store
	limiter <-chan time.Time
}

func NewClient(cfg Config, store *cache.Store) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = 500 * time.Millisecond
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	ticker := time.NewTicker(cfg.RequestDelay)
	return &Client{cfg: cfg, store: store, limiter: ticker.C}
}

// LookupCIK maps a ticker symbol to its zero-padded 10-digit CIK.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("empty ticker")
	}
	key := "edgar:cik:" + ticker
	if c.store != nil {
		if v, err := c.store.Get(key); err == nil {
			return string(v), nil
		}
	}

	body, err := c.get(ctx, tickersURL)
	if err != nil {
		return "", fmt.Errorf("fetch company tickers: %w", err)
	}

	// The tickers file is keyed by row index, not by symbol.
	var table map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &table); err != nil {
		return "", fmt.Errorf("decode company tickers: %w", err)
	}
	for _, row := range table {
		if strings.EqualFold(row.Ticker, ticker) {
			cik := fmt.Sprintf("%010d", row.CIK)
			if c.store != nil {
				if err := c.store.Set(key, []byte(cik), cikCacheTTL); err != nil {
					log.Printf("targetscout edgar cache_set_failed key=%s err=%v", key, err)
				}
			}
			return cik, nil
		}
	}
	return "", fmt.Errorf("ticker %s not found in SEC company tickers", ticker)
}

// LatestFiling returns the body of the most recent filing of the given form
// type (10-K or 10-Q) for the ticker, stripped to plain text.
func (c *Client) LatestFiling(ctx context.Context, ticker, form string) (*Filing, error) {
	cik, err := c.LookupCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/CIK%s.json", submissionsBase, cik))
	if err != nil {
		return nil, fmt.Errorf("fetch submissions for %s: %w", ticker, err)
	}
	var subs struct {
		Filings struct {
			Recent struct {
				AccessionNumber []string `json:"accessionNumber"`
				Form            []string `json:"form"`
				FilingDate      []string `json:"filingDate"`
				PrimaryDocument []string `json:"primaryDocument"`
			} `json:"recent"`
		} `json:"filings"`
	}
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	recent := subs.Filings.Recent
	for i := range recent.Form {
		if !strings.EqualFold(recent.Form[i], form) {
			continue
		}
		accession := recent.AccessionNumber[i]
		doc := recent.PrimaryDocument[i]
		docURL := fmt.Sprintf("%s/%s/%s/%s",
			archivesBase,
			strings.TrimLeft(cik, "0"),
			strings.ReplaceAll(accession, "-", ""),
			doc)
		raw, err := c.get(ctx, docURL)
		if err != nil {
			return nil, fmt.Errorf("fetch filing document: %w", err)
		}
		f := &Filing{
			Ticker:    strings.ToUpper(strings.TrimSpace(ticker)),
			CIK:       cik,
			Form:      recent.Form[i],
			FiledDate: recent.FilingDate[i],
			Accession: accession,
			Text:      stripHTML(string(raw)),
		}
		log.Printf("targetscout edgar filing_fetched ticker=%s form=%s filed=%s chars=%d",
			f.Ticker, f.Form, f.FiledDate, len(f.Text))
		return f, nil
	}
	return nil, fmt.Errorf("no %s filing found for %s", form, ticker)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.limiter:
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d url=%s", res.StatusCode, rawURL)
	}
	return body, nil
}

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	spaceRe  = regexp.MustCompile(`[ \t]{2,}`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
)

// stripHTML reduces an EDGAR HTML document to readable text. Filings are
// table-heavy, so this is lossy but sufficient for language-model input.
func stripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "</p>", "\n")
	s = strings.ReplaceAll(s, "</tr>", "\n")
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&#160;", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = blankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
