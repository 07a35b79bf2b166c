package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Biotech Wire</title>
<item><title>Merck posts phase 3 TL1A data</title><link>https://example.com/1</link><pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate></item>
<item><title>Unrelated device approval</title><link>https://example.com/2</link></item>
<item><title></title><link>https://example.com/3</link></item>
</channel></rss>`

func TestMatchingItemsFiltersByTerm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	f := NewFetcher(Config{
		Feeds:        []string{srv.URL},
		HTTPClient:   srv.Client(),
		RequestDelay: time.Millisecond,
	})
	items := f.MatchingItems(context.Background(), []string{"tl1a"})
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d: %+v", len(items), items)
	}
	if items[0].Source != "Biotech Wire" || items[0].Link != "https://example.com/1" {
		t.Fatalf("unexpected item %+v", items[0])
	}
}

func TestMatchingItemsBrokenFeedSkipped(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer good.Close()

	f := NewFetcher(Config{
		Feeds:        []string{bad.URL, good.URL},
		HTTPClient:   good.Client(),
		RequestDelay: time.Millisecond,
	})
	items := f.MatchingItems(context.Background(), []string{"TL1A"})
	if len(items) != 1 {
		t.Fatalf("expected the good feed to survive, got %d items", len(items))
	}
}

func TestMatchingItemsNoTerms(t *testing.T) {
	f := NewFetcher(Config{Feeds: []string{"http://unused.invalid"}})
	if items := f.MatchingItems(context.Background(), []string{" ", ""}); items != nil {
		t.Fatalf("expected nil for no terms, got %+v", items)
	}
}
