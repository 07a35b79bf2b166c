package curated

import (
	"testing"

	"github.com/joelkehle/targetscout/internal/asset"
)

func TestFindByCodeNameAndCase(t *testing.T) {
	db := Open()
	for _, name := range []string{"Tulisokibart", "tulisokibart", "MK-7240", "mk7240", "PRA023"} {
		ka := db.Find(name, "TL1A")
		if ka == nil {
			t.Fatalf("expected curated hit for %q", name)
		}
		if ka.PrimaryName != "Tulisokibart" {
			t.Fatalf("Find(%q) resolved to %q", name, ka.PrimaryName)
		}
	}
}

func TestFindRegistrySpellingWithSuffix(t *testing.T) {
	db := Open()
	ka := db.Find("Tulisokibart (MK-7240) 100 mg", "tl1a")
	if ka == nil || ka.PrimaryName != "Tulisokibart" {
		t.Fatalf("expected suffix-tolerant match, got %+v", ka)
	}
}

func TestFindWrongTarget(t *testing.T) {
	db := Open()
	if ka := db.Find("Tulisokibart", "B7-H3"); ka != nil {
		t.Fatalf("tulisokibart must not resolve under B7-H3, got %+v", ka)
	}
	if ka := db.Find("unheard-of-drug", "TL1A"); ka != nil {
		t.Fatalf("unexpected hit %+v", ka)
	}
}

func TestIsExcluded(t *testing.T) {
	db := Open()
	if !db.IsExcluded("Vedolizumab", "TL1A") {
		t.Fatal("vedolizumab is on the TL1A exclusion list")
	}
	if !db.IsExcluded("vedolizumab 300 mg", "tl1a") {
		t.Fatal("exclusion must tolerate dosage suffixes")
	}
	if db.IsExcluded("Vedolizumab", "CD19") {
		t.Fatal("exclusions are per target")
	}
	if db.IsExcluded("Tulisokibart", "TL1A") {
		t.Fatal("curated asset must not be excluded")
	}
}

func TestAssetsForTargetReturnsCopy(t *testing.T) {
	db := Open()
	first := db.AssetsForTarget("TL1A")
	if len(first) == 0 {
		t.Fatal("expected curated TL1A assets")
	}
	first[0].PrimaryName = "mutated"
	second := db.AssetsForTarget("TL1A")
	if second[0].PrimaryName == "mutated" {
		t.Fatal("AssetsForTarget must return a copy")
	}
	for _, ka := range second {
		if ka.Phase == asset.PhaseUnknown {
			t.Fatalf("curated entry %s has unknown phase", ka.PrimaryName)
		}
	}
}

func TestAssetsForUnknownTarget(t *testing.T) {
	db := Open()
	if got := db.AssetsForTarget("OBSCURE9"); len(got) != 0 {
		t.Fatalf("expected empty set, got %d", len(got))
	}
}
