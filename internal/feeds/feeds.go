// Package feeds pulls press items from a fixed set of biotech news RSS
// feeds. Items are filtered by keyword match against the research target and
// its asset names; a broken feed is skipped, not fatal.
package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// DefaultFeeds are the sources polled when the caller supplies none.
var DefaultFeeds = []string{
	"https://www.fiercebiotech.com/rss/xml",
	"https://endpts.com/feed/",
	"https://www.biopharmadive.com/feeds/news/",
}

type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
	Source    string `json:"source"`
}

type Config struct {
	Feeds        []string
	RequestDelay time.Duration
	HTTPClient   *http.Client
}

type Fetcher struct {
	cfg Config
}

func NewFetcher(cfg Config) *Fetcher {
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = DefaultFeeds
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = 500 * time.Millisecond
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{cfg: cfg}
}

// MatchingItems returns feed items whose title mentions any of the terms.
// Matching is case-insensitive substring.
func (f *Fetcher) MatchingItems(ctx context.Context, terms []string) []Item {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	if len(lowered) == 0 {
		return nil
	}

	var out []Item
	for i, feedURL := range f.cfg.Feeds {
		if i > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(f.cfg.RequestDelay):
			}
		}
		items, err := f.fetch(ctx, feedURL)
		if err != nil {
			log.Printf("targetscout feeds fetch_failed url=%s err=%v", feedURL, err)
			continue
		}
		for _, it := range items {
			title := strings.ToLower(it.Title)
			for _, term := range lowered {
				if strings.Contains(title, term) {
					out = append(out, it)
					break
				}
			}
		}
	}
	return out
}

type rssDoc struct {
	Channel struct {
		Title string `xml:"title"`
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

func (f *Fetcher) fetch(ctx context.Context, feedURL string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	res, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", res.StatusCode)
	}

	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode rss: %w", err)
	}

	source := strings.TrimSpace(doc.Channel.Title)
	if source == "" {
		source = feedURL
	}
	items := make([]Item, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		items = append(items, Item{
			Title:     title,
			Link:      strings.TrimSpace(it.Link),
			Published: strings.TrimSpace(it.PubDate),
			Source:    source,
		})
	}
	return items, nil
}
