package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelkehle/targetscout/internal/asset"
	"github.com/joelkehle/targetscout/internal/cache"
	"github.com/joelkehle/targetscout/internal/feeds"
	"github.com/joelkehle/targetscout/internal/httpapi"
	"github.com/joelkehle/targetscout/internal/pubs"
	"github.com/joelkehle/targetscout/internal/report"
	"github.com/joelkehle/targetscout/internal/telemetry"
)

var researchCmd = &cobra.Command{
	Use:   "research [target]",
	Short: "Discover and verify assets against a drug target",
	Long: `Research queries the clinical-trials registry for studies around a target,
extracts drug interventions, verifies each against the curated database, and
prints the resulting asset report. Output is cached; use --refresh to force a
new discovery run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		asJSON, _ := cmd.Flags().GetBool("json")
		refresh, _ := cmd.Flags().GetBool("refresh")
		withPubs, _ := cmd.Flags().GetBool("pubs")
		withPress, _ := cmd.Flags().GetBool("press")
		out, _ := cmd.Flags().GetString("out")

		ctx := context.Background()
		shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		store := openCache()
		if store != nil {
			defer store.Close()
		}

		r, err := runResearch(ctx, target, store, refresh)
		if err != nil {
			return err
		}

		if asJSON {
			blob, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, append(blob, '\n'))
		}

		extras := report.Extras{}
		if withPubs {
			names := make([]string, 0, len(r.Verified))
			for _, a := range r.Verified {
				names = append(names, a.DrugName)
			}
			extras.LiteratureCounts = pubs.NewClient(pubs.Config{}).TargetLiteratureCounts(ctx, target, names)
		}
		if withPress {
			terms := []string{target}
			for _, a := range r.All() {
				terms = append(terms, a.DrugName)
			}
			extras.PressItems = feeds.NewFetcher(feeds.Config{}).MatchingItems(ctx, terms)
		}
		return writeOutput(out, []byte(report.BuildMarkdown(r, extras)))
	},
}

func runResearch(ctx context.Context, target string, store *cache.Store, refresh bool) (asset.ResearchReport, error) {
	cacheKey := "research:" + asset.FoldName(target)
	if store != nil && !refresh {
		if blob, err := store.Get(cacheKey); err == nil {
			var cached asset.ResearchReport
			if json.Unmarshal(blob, &cached) == nil {
				fmt.Fprintln(os.Stderr, "Using cached report; pass --refresh to rerun discovery.")
				return cached, nil
			}
		}
	}

	d := newDiscoverer(newTrialClient())
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	r, err := d.DiscoverAssets(ctx, target)
	if err != nil {
		return asset.ResearchReport{}, err
	}
	if store != nil {
		if blob, err := json.Marshal(r); err == nil {
			_ = store.Set(cacheKey, blob, httpapi.ReportCacheTTL)
		}
	}
	return r, nil
}

func init() {
	researchCmd.Flags().Bool("json", false, "output the raw report as JSON")
	researchCmd.Flags().Bool("refresh", false, "ignore the cache and rerun discovery")
	researchCmd.Flags().Bool("pubs", false, "include publication counts from Europe PMC")
	researchCmd.Flags().Bool("press", false, "include matching items from biotech news feeds")
	researchCmd.Flags().String("out", "", "write output to file instead of stdout")

	rootCmd.AddCommand(researchCmd)
}
