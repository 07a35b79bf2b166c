// Package report renders research output for humans: a markdown asset
// report, an Excel workbook, and a PDF of the markdown.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joelkehle/targetscout/internal/analysis"
	"github.com/joelkehle/targetscout/internal/asset"
	"github.com/joelkehle/targetscout/internal/feeds"
)

const Disclaimer = "_Automated research output. Asset associations below " +
	"Verified confidence require manual confirmation before use._"

// Extras carries the peripheral sections appended after the core asset
// tables. Any field may be zero-valued and its section is skipped.
type Extras struct {
	LiteratureCounts map[string]int
	PressItems       []feeds.Item
}

func BuildMarkdown(r asset.ResearchReport, extras Extras) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Target Asset Report: %s\n\n", r.Target)
	fmt.Fprintf(&b, "- Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Assets retained: %d\n", r.Summary.Total)
	fmt.Fprintf(&b, "- Excluded during verification: %d\n\n", r.Summary.ExcludedCount)
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	buildSummary(&b, r.Summary)
	buildTier(&b, "Verified Assets", r.Verified)
	buildTier(&b, "Probable Assets", r.Probable)
	buildTier(&b, "Unverified Mentions", r.Unverified)
	buildLiterature(&b, r.Target, extras.LiteratureCounts)
	buildPress(&b, extras.PressItems)
	return b.String()
}

func buildSummary(b *strings.Builder, s asset.ReportSummary) {
	fmt.Fprintf(b, "## Summary\n\n")
	fmt.Fprintf(b, "### By Modality\n\n")
	writeCountTable(b, "Modality", s.ByModality)
	fmt.Fprintf(b, "### By Phase\n\n")
	writeCountTable(b, "Phase", s.ByPhase)
}

func writeCountTable(b *strings.Builder, label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "| %s | Count |\n|---|---:|\n", label)
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %d |\n", k, counts[k])
	}
	b.WriteString("\n")
}

func buildTier(b *strings.Builder, title string, assets []asset.DiscoveredAsset) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(assets) == 0 {
		fmt.Fprintf(b, "None.\n\n")
		return
	}
	fmt.Fprintf(b, "| Drug | Modality | Owner | Phase | Status | Lead Indication | Trials | Confidence | Method |\n")
	fmt.Fprintf(b, "|---|---|---|---|---|---|---:|---|---|\n")
	for _, a := range assets {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %d | %s | %s |\n",
			mdSafe(a.DrugName), a.Modality, mdSafe(a.Owner), a.Phase, a.Status,
			mdSafe(a.LeadIndication), a.TrialCount, a.Confidence, a.VerificationMethod)
	}
	b.WriteString("\n")
	for _, a := range assets {
		if a.VerificationDetails == "" && len(a.TrialIDs) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", mdSafe(a.DrugName))
		if len(a.Aliases) > 0 {
			fmt.Fprintf(b, "- Aliases: %s\n", strings.Join(a.Aliases, ", "))
		}
		if a.VerificationDetails != "" {
			fmt.Fprintf(b, "- Verification: %s\n", mdSafe(a.VerificationDetails))
		}
		for _, id := range a.TrialIDs {
			fmt.Fprintf(b, "- [%s](%s)\n", id, trialURL(id))
		}
		b.WriteString("\n")
	}
}

func buildLiterature(b *strings.Builder, target string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "## Publication Counts\n\n")
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if k != target {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "| Term | Publications |\n|---|---:|\n")
	if n, ok := counts[target]; ok {
		fmt.Fprintf(b, "| %s | %d |\n", mdSafe(target), n)
	}
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %d |\n", mdSafe(k), counts[k])
	}
	b.WriteString("\n")
}

func buildPress(b *strings.Builder, items []feeds.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## Recent Press\n\n")
	for _, it := range items {
		fmt.Fprintf(b, "- [%s](%s) (%s)", mdSafe(it.Title), it.Link, mdSafe(it.Source))
		if it.Published != "" {
			fmt.Fprintf(b, " (%s)", it.Published)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// BuildFilingMarkdown renders one LLM filing analysis.
func BuildFilingMarkdown(res analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Filing Analysis: %s\n\n", res.Ticker)
	fmt.Fprintf(&b, "- Filing date: %s\n", mdSafe(res.FilingDate))
	fmt.Fprintf(&b, "- Analyzed: %s\n", res.AnalyzedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Model: %s\n\n", res.Model)
	if res.DataWarning != "" {
		fmt.Fprintf(&b, "> Data warning: %s\n\n", mdSafe(res.DataWarning))
	}
	if res.ParseError != "" {
		fmt.Fprintf(&b, "> Analysis did not parse: %s\n\n", mdSafe(res.ParseError))
		fmt.Fprintf(&b, "```\n%s\n```\n", res.RawResponse)
		return b.String()
	}

	fmt.Fprintf(&b, "## Summary\n\n%s\n\n", mdSafe(res.Summary))

	fmt.Fprintf(&b, "## Pipeline\n\n")
	if len(res.Pipeline) == 0 {
		fmt.Fprintf(&b, "No pipeline entries reported.\n\n")
	} else {
		fmt.Fprintf(&b, "| Drug | Phase | Indication | Status | Catalyst |\n|---|---|---|---|---|\n")
		for _, p := range res.Pipeline {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				mdSafe(p.Drug), mdSafe(p.Phase), mdSafe(p.Indication), mdSafe(p.Status), mdSafe(p.Catalyst))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Financials\n\n")
	if c := res.Financials.CashPositionUSD; c != nil {
		fmt.Fprintf(&b, "- Cash position: $%.0f", *c)
		if res.Financials.CashAsOf != "" {
			fmt.Fprintf(&b, " (as of %s)", res.Financials.CashAsOf)
		}
		b.WriteString("\n")
	}
	if r := res.Financials.RunwayMonths; r != nil {
		fmt.Fprintf(&b, "- Runway: %.0f months\n", *r)
	}
	if br := res.Financials.BurnRateUSD; br != nil {
		fmt.Fprintf(&b, "- Burn rate: $%.0f\n", *br)
	}
	b.WriteString("\n")

	if len(res.Risks) > 0 {
		fmt.Fprintf(&b, "## Risks\n\n")
		for _, r := range res.Risks {
			fmt.Fprintf(&b, "- %s\n", mdSafe(r))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func trialURL(nctID string) string {
	return "https://clinicaltrials.gov/study/" + strings.TrimSpace(nctID)
}

func mdSafe(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(none)"
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
