package analysis

import (
	"strings"
	"testing"
)

func TestDedupePipelineKeepsMostComplete(t *testing.T) {
	entries := []PipelineEntry{
		{Drug: "ABX-100", Phase: "Phase 2", Indication: "UC"},
		{Drug: "abx-100", Phase: "Phase 2", Indication: "UC", Status: "enrolling", Catalyst: "data H2 2026"},
		{Drug: "ABX-200", Phase: "Phase 1", Indication: "CD"},
	}
	out := DedupePipeline(entries)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].Drug != "abx-100" || out[0].Catalyst == "" {
		t.Fatalf("expected the complete duplicate to win, got %+v", out[0])
	}
	if out[1].Drug != "ABX-200" {
		t.Fatalf("input order not preserved: %+v", out)
	}
}

func TestDedupePipelineTieBreaksOnPhase(t *testing.T) {
	entries := []PipelineEntry{
		{Drug: "ABX-100", Phase: "Phase 1", Indication: "UC"},
		{Drug: "ABX-100", Phase: "Phase 3", Indication: "UC"},
	}
	out := DedupePipeline(entries)
	if len(out) != 1 || out[0].Phase != "Phase 3" {
		t.Fatalf("expected phase 3 entry to survive, got %+v", out)
	}
}

func TestDedupePipelineSkipsUnnamed(t *testing.T) {
	entries := []PipelineEntry{
		{Drug: "  ", Phase: "Phase 1"},
		{Drug: "ABX-100", Phase: "Phase 1"},
	}
	out := DedupePipeline(entries)
	if len(out) != 1 || out[0].Drug != "ABX-100" {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestRankReportedPhase(t *testing.T) {
	cases := map[string]int{
		"Approved":           100,
		"BLA filed":          90,
		"Phase 3 (pivotal)":  70,
		"Phase 2/3":          60,
		"Phase 2":            50,
		"Phase 1/2":          40,
		"Phase 1":            30,
		"Preclinical":        10,
		"IND-enabling":       0,
		"":                   0,
	}
	for in, want := range cases {
		if got := rankReportedPhase(in); got != want {
			t.Fatalf("rankReportedPhase(%q) = %d, want %d", in, got, want)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestSanityFlagStaleCash(t *testing.T) {
	res := Result{
		FilingDate: "2026-03-01",
		Financials: Financials{CashPositionUSD: f(245_300_000), CashAsOf: "2024-12-31"},
	}
	ApplyFinancialSanityFlags(&res)
	if !strings.Contains(res.DataWarning, "older than the filing") {
		t.Fatalf("expected stale-cash warning, got %q", res.DataWarning)
	}
}

func TestSanityFlagImplausibleRunway(t *testing.T) {
	res := Result{Financials: Financials{RunwayMonths: f(360)}}
	ApplyFinancialSanityFlags(&res)
	if !strings.Contains(res.DataWarning, "unrealistically long") {
		t.Fatalf("expected runway warning, got %q", res.DataWarning)
	}
	if res.Financials.RunwayMonths == nil || *res.Financials.RunwayMonths != 360 {
		t.Fatal("implausible runway must be flagged, not discarded")
	}
}

func TestSanityFlagNegativeRunwayNulled(t *testing.T) {
	res := Result{Financials: Financials{RunwayMonths: f(-4)}}
	ApplyFinancialSanityFlags(&res)
	if res.Financials.RunwayMonths != nil {
		t.Fatal("negative runway must be discarded")
	}
	if !strings.Contains(res.DataWarning, "negative runway") {
		t.Fatalf("expected negative-runway warning, got %q", res.DataWarning)
	}
}

func TestSanityFlagRoundCashFigure(t *testing.T) {
	res := Result{Financials: Financials{CashPositionUSD: f(2.0)}}
	ApplyFinancialSanityFlags(&res)
	if !strings.Contains(res.DataWarning, "possibly hallucinated") {
		t.Fatalf("expected round-figure warning, got %q", res.DataWarning)
	}

	// A realistic dollar amount is left alone.
	clean := Result{Financials: Financials{CashPositionUSD: f(245_300_000)}}
	ApplyFinancialSanityFlags(&clean)
	if clean.DataWarning != "" {
		t.Fatalf("unexpected warning %q", clean.DataWarning)
	}
}

func TestSanityFlagsPreserveExistingWarning(t *testing.T) {
	res := Result{
		DataWarning: "model truncated output",
		Financials:  Financials{RunwayMonths: f(-1)},
	}
	ApplyFinancialSanityFlags(&res)
	if !strings.HasPrefix(res.DataWarning, "model truncated output; ") {
		t.Fatalf("existing warning lost: %q", res.DataWarning)
	}
}
