package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// reportPhaseRank orders reported (free-text) phases for dedup tie-breaking.
// This is looser than the registry phase ladder because LLM output uses
// marketing spellings.
var reportPhaseRank = []struct {
	Keyword string
	Rank    int
}{
	{"approved", 100},
	{"marketed", 100},
	{"bla", 90},
	{"nda", 90},
	{"filed", 90},
	{"phase 3", 70},
	{"phase iii", 70},
	{"phase 2/3", 60},
	{"phase 2", 50},
	{"phase ii", 50},
	{"phase 1/2", 40},
	{"phase 1", 30},
	{"phase i", 30},
	{"preclinical", 10},
}

func rankReportedPhase(phase string) int {
	p := strings.ToLower(strings.TrimSpace(phase))
	if p == "" {
		return 0
	}
	for _, row := range reportPhaseRank {
		if strings.Contains(p, row.Keyword) {
			return row.Rank
		}
	}
	return 0
}

// completenessScore weights status and catalyst double: they are the
// higher-value signals a duplicate entry usually lacks.
func completenessScore(e PipelineEntry) int {
	score := 0
	if strings.TrimSpace(e.Drug) != "" {
		score++
	}
	if strings.TrimSpace(e.Phase) != "" {
		score++
	}
	if strings.TrimSpace(e.Indication) != "" {
		score++
	}
	if strings.TrimSpace(e.Status) != "" {
		score += 2
	}
	if strings.TrimSpace(e.Catalyst) != "" {
		score += 2
	}
	return score
}

// DedupePipeline groups reported pipeline entries by lowercased drug name and
// keeps the most complete entry per drug; completeness ties go to the more
// advanced phase. Input order is preserved for the survivors.
func DedupePipeline(entries []PipelineEntry) []PipelineEntry {
	best := map[string]int{}
	order := []string{}
	for i, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Drug))
		if key == "" {
			continue
		}
		prev, ok := best[key]
		if !ok {
			best[key] = i
			order = append(order, key)
			continue
		}
		ps, ns := completenessScore(entries[prev]), completenessScore(e)
		if ns > ps || (ns == ps && rankReportedPhase(e.Phase) > rankReportedPhase(entries[prev].Phase)) {
			best[key] = i
		}
	}
	out := make([]PipelineEntry, 0, len(order))
	for _, key := range order {
		out = append(out, entries[best[key]])
	}
	return out
}

const maxPlausibleRunwayMonths = 120

// ApplyFinancialSanityFlags appends heuristic warnings to the result's
// DataWarning without correcting the values, except that a negative runway is
// nulled out. Flagged figures are still shown to the user, only annotated.
func ApplyFinancialSanityFlags(res *Result) {
	var warnings []string

	if res.Financials.CashAsOf != "" && res.FilingDate != "" {
		asOf, errA := time.Parse("2006-01-02", res.Financials.CashAsOf)
		filed, errB := time.Parse("2006-01-02", res.FilingDate)
		if errA == nil && errB == nil && filed.Sub(asOf) > 365*24*time.Hour {
			warnings = append(warnings, fmt.Sprintf("cash position dated %s is more than a year older than the filing; possibly outdated", res.Financials.CashAsOf))
		}
	}

	if r := res.Financials.RunwayMonths; r != nil {
		switch {
		case *r < 0:
			warnings = append(warnings, fmt.Sprintf("negative runway (%.0f months) reported; value discarded", *r))
			res.Financials.RunwayMonths = nil
		case *r > maxPlausibleRunwayMonths:
			warnings = append(warnings, fmt.Sprintf("reported runway of %.0f months is unrealistically long", *r))
		}
	}

	// A cash figure like exactly 2.0 usually means the model echoed a
	// headline number (or its unit) rather than the stated balance.
	if c := res.Financials.CashPositionUSD; c != nil && *c != 0 && *c == math.Trunc(*c) && (*c < 1000 || math.Mod(*c, 1e9) == 0) {
		warnings = append(warnings, fmt.Sprintf("cash position of exactly %v looks rounded; possibly hallucinated", *c))
	}

	if len(warnings) > 0 {
		if res.DataWarning != "" {
			warnings = append([]string{res.DataWarning}, warnings...)
		}
		res.DataWarning = strings.Join(warnings, "; ")
	}
}
