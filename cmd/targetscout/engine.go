package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joelkehle/targetscout/internal/cache"
	"github.com/joelkehle/targetscout/internal/ctgov"
	"github.com/joelkehle/targetscout/internal/curated"
	"github.com/joelkehle/targetscout/internal/discovery"
)

// openCache opens the research cache, creating its directory if needed. A
// failure is reported and research proceeds uncached.
func openCache() *cache.Store {
	path := cachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("targetscout cli cache_dir_failed path=%s err=%v", path, err)
		return nil
	}
	store, err := cache.Open(path)
	if err != nil {
		log.Printf("targetscout cli cache_open_failed path=%s err=%v", path, err)
		return nil
	}
	return store
}

func newTrialClient() *ctgov.Client {
	return ctgov.NewClient(ctgov.Config{
		MaxResults:   cfg.MaxTrials,
		RequestDelay: cfg.RequestDelay,
	})
}

func newDiscoverer(trials discovery.TrialSearcher) *discovery.Discoverer {
	return discovery.NewDiscoverer(curated.Open(), trials, discovery.Config{
		MaxTrials: cfg.MaxTrials,
	})
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintln(os.Stderr, "Wrote", path)
	return nil
}
