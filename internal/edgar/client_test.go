package edgar

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joelkehle/targetscout/internal/cache"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const tickersBody = `{
  "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
  "1": {"cik_str": 1835579, "ticker": "ABXB", "title": "ABX Bio Inc."}
}`

const submissionsBody = `{
  "filings": {"recent": {
    "accessionNumber": ["0001835579-26-000010", "0001835579-25-000088"],
    "form": ["8-K", "10-K"],
    "filingDate": ["2026-02-20", "2026-02-15"],
    "primaryDocument": ["ev.htm", "abxb-10k.htm"]
  }}
}`

func newFakeClient(t *testing.T, store *cache.Store, tickerCalls *int) *Client {
	t.Helper()
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request missing User-Agent")
		}
		url := r.URL.String()
		switch {
		case strings.Contains(url, "company_tickers"):
			if tickerCalls != nil {
				*tickerCalls++
			}
			return jsonResponse(tickersBody), nil
		case strings.Contains(url, "/submissions/CIK0001835579.json"):
			return jsonResponse(submissionsBody), nil
		case strings.Contains(url, "/Archives/edgar/data/1835579/000183557925000088/abxb-10k.htm"):
			return jsonResponse(`<html><body><p>Annual report.</p><script>x()</script></body></html>`), nil
		default:
			t.Errorf("unexpected URL %s", url)
			return &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader(""))}, nil
		}
	})}
	return NewClient(Config{HTTPClient: hc, RequestDelay: time.Millisecond}, store)
}

func openTestStore(t *testing.T) *cache.Store {
	t.Helper()
	s, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLookupCIKPadsAndCaches(t *testing.T) {
	var calls int
	c := newFakeClient(t, openTestStore(t), &calls)

	cik, err := c.LookupCIK(context.Background(), "abxb")
	if err != nil {
		t.Fatal(err)
	}
	if cik != "0001835579" {
		t.Fatalf("got cik %q", cik)
	}
	if _, err := c.LookupCIK(context.Background(), "ABXB"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected the second lookup to hit the cache, got %d fetches", calls)
	}
}

func TestLookupCIKUnknownTicker(t *testing.T) {
	c := newFakeClient(t, nil, nil)
	if _, err := c.LookupCIK(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for unknown ticker")
	}
}

func TestLatestFilingPicksFormAndStripsHTML(t *testing.T) {
	c := newFakeClient(t, nil, nil)

	f, err := c.LatestFiling(context.Background(), "ABXB", "10-K")
	if err != nil {
		t.Fatal(err)
	}
	if f.Form != "10-K" || f.FiledDate != "2026-02-15" {
		t.Fatalf("wrong filing selected: %+v", f)
	}
	if f.CIK != "0001835579" || f.Ticker != "ABXB" {
		t.Fatalf("unexpected identity fields: %+v", f)
	}
	if !strings.Contains(f.Text, "Annual report.") {
		t.Fatalf("body lost: %q", f.Text)
	}
	if strings.Contains(f.Text, "<") || strings.Contains(f.Text, "x()") {
		t.Fatalf("markup not stripped: %q", f.Text)
	}
}

func TestLatestFilingNoMatchingForm(t *testing.T) {
	c := newFakeClient(t, nil, nil)
	if _, err := c.LatestFiling(context.Background(), "ABXB", "S-1"); err == nil {
		t.Fatal("expected error when no filing of the form exists")
	}
}

func TestStripHTML(t *testing.T) {
	in := `<html><style>p{}</style><p>Cash&nbsp;&amp; equivalents</p><table><tr><td>245</td></tr></table></html>`
	out := stripHTML(in)
	if !strings.Contains(out, "Cash & equivalents") {
		t.Fatalf("entities not decoded: %q", out)
	}
	if strings.Contains(out, "p{}") {
		t.Fatalf("style content kept: %q", out)
	}
}
