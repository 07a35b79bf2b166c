package discovery

import (
	"context"
	"testing"

	"github.com/joelkehle/targetscout/internal/asset"
	"github.com/joelkehle/targetscout/internal/ctgov"
	"github.com/joelkehle/targetscout/internal/curated"
)

type fakeSearcher struct {
	byCondition    []ctgov.Trial
	byIntervention []ctgov.Trial
	err            error
	calls          int
}

func (f *fakeSearcher) SearchByCondition(ctx context.Context, term string, max int) ([]ctgov.Trial, error) {
	f.calls++
	return f.byCondition, f.err
}

func (f *fakeSearcher) SearchByIntervention(ctx context.Context, term string, max int) ([]ctgov.Trial, error) {
	f.calls++
	return f.byIntervention, f.err
}

func drugTrial(nct, phase, status, sponsor, condition string, ivs ...ctgov.Intervention) ctgov.Trial {
	return ctgov.Trial{
		NCTID:         nct,
		Phase:         phase,
		Status:        status,
		LeadSponsor:   sponsor,
		Conditions:    []string{condition},
		Interventions: ivs,
	}
}

func findAsset(list []asset.DiscoveredAsset, name string) *asset.DiscoveredAsset {
	for i := range list {
		if list[i].DrugName == name {
			return &list[i]
		}
	}
	return nil
}

func TestDiscoverAssetsCuratedFirstAndTiered(t *testing.T) {
	trials := []ctgov.Trial{
		drugTrial("NCT001", "PHASE3", "RECRUITING", "Merck Sharp & Dohme LLC", "Ulcerative Colitis",
			ctgov.Intervention{Type: "DRUG", Name: "Tulisokibart (MK-7240)", Description: "anti-TL1A antibody"}),
		drugTrial("NCT002", "PHASE1", "RECRUITING", "NewCo Bio", "Ulcerative Colitis",
			ctgov.Intervention{Type: "DRUG", Name: "TL1A-ab-100", Description: "a TNFSF15 blocking antibody"}),
		drugTrial("NCT003", "PHASE2", "RECRUITING", "OtherCo", "Crohn Disease",
			ctgov.Intervention{Type: "DRUG", Name: "Vedolizumab", Description: "integrin antagonist"}),
		drugTrial("NCT004", "PHASE2", "RECRUITING", "Acme Devices", "Ulcerative Colitis",
			ctgov.Intervention{Type: "DEVICE", Name: "Colonoscope", Description: ""}),
	}
	d := NewDiscoverer(curated.Open(), &fakeSearcher{byCondition: trials}, Config{})

	report, err := d.DiscoverAssets(context.Background(), "tl1a")
	if err != nil {
		t.Fatal(err)
	}
	if report.Target != "TL1A" {
		t.Fatalf("expected official target name, got %q", report.Target)
	}

	// Every curated TL1A asset appears, exactly once, as Verified.
	for _, name := range []string{"Tulisokibart", "Duvakitug", "Afimkibart"} {
		a := findAsset(report.Verified, name)
		if a == nil {
			t.Fatalf("curated asset %s missing from verified tier", name)
		}
		if a.VerificationMethod != asset.MethodCurated {
			t.Fatalf("%s should carry the curated method, got %s", name, a.VerificationMethod)
		}
	}
	if findAsset(report.Verified, "Tulisokibart (MK-7240)") != nil {
		t.Fatal("trial record must not duplicate the curated entry")
	}

	// The curated record wins over trial-derived data.
	tulis := findAsset(report.Verified, "Tulisokibart")
	if tulis.Phase != asset.Phase3 || tulis.Owner != "Merck" {
		t.Fatalf("curated fields overwritten: %+v", tulis)
	}

	// Name+description evidence lands in Verified.
	if a := findAsset(report.Verified, "TL1A-ab-100"); a == nil {
		t.Fatal("expected TL1A-ab-100 verified")
	} else if a.Phase != asset.Phase1 || a.TrialCount != 1 {
		t.Fatalf("unexpected discovered asset %+v", a)
	}

	// The excluded drug is dropped and counted.
	if findAsset(report.All(), "Vedolizumab") != nil {
		t.Fatal("vedolizumab must be excluded")
	}
	if report.Summary.ExcludedCount != 1 {
		t.Fatalf("expected 1 exclusion, got %d", report.Summary.ExcludedCount)
	}

	// Device arms never become assets.
	if findAsset(report.All(), "Colonoscope") != nil {
		t.Fatal("device interventions must be skipped")
	}

	if report.Summary.Total != len(report.All()) {
		t.Fatalf("summary total %d != %d assets", report.Summary.Total, len(report.All()))
	}
}

func TestDiscoverAssetsFoldMonotone(t *testing.T) {
	ivName := "ABX-900"
	trials := []ctgov.Trial{
		drugTrial("NCT101", "PHASE1", "RECRUITING", "NewCo", "Ulcerative Colitis",
			ctgov.Intervention{Type: "DRUG", Name: ivName, Description: "binds TNFSF15"}),
		drugTrial("NCT102", "PHASE2", "RECRUITING", "NewCo", "Crohn Disease",
			ctgov.Intervention{Type: "DRUG", Name: ivName + " 50 mg", Description: "binds TNFSF15"}),
		drugTrial("NCT103", "PHASE1", "TERMINATED", "NewCo", "Crohn Disease",
			ctgov.Intervention{Type: "DRUG", Name: ivName, Description: "binds TNFSF15"}),
	}
	d := NewDiscoverer(curated.Open(), &fakeSearcher{byCondition: trials}, Config{})

	report, err := d.DiscoverAssets(context.Background(), "TL1A")
	if err != nil {
		t.Fatal(err)
	}
	a := findAsset(report.All(), ivName)
	if a == nil {
		t.Fatalf("expected %s in report", ivName)
	}
	if a.TrialCount != 3 || len(a.TrialIDs) != 3 {
		t.Fatalf("expected 3 trials folded, got count=%d ids=%v", a.TrialCount, a.TrialIDs)
	}
	// Phase climbed to 2 on the second trial and did not regress on the third.
	if a.Phase != asset.Phase2 {
		t.Fatalf("expected phase 2 after folding, got %s", a.Phase)
	}
	// Description evidence puts it in the unverified (LOW) tier.
	if a.Confidence != asset.ConfidenceLow {
		t.Fatalf("expected LOW confidence, got %s", a.Confidence)
	}
	if a.LeadIndication != "Ulcerative Colitis" {
		t.Fatalf("first-seen indication should stick, got %q", a.LeadIndication)
	}
}

func TestDiscoverAssetsFoldConfidenceUpgrade(t *testing.T) {
	// Both intervention names canonicalize to the same key, but only the
	// parenthetical form carries name evidence. Whichever arrives first, the
	// folded asset must end at HIGH with the name-match verdict.
	low := drugTrial("NCT111", "PHASE1", "RECRUITING", "NewCo", "Ulcerative Colitis",
		ctgov.Intervention{Type: "DRUG", Name: "XYZ-404", Description: "binds TNFSF15"})
	high := drugTrial("NCT112", "PHASE1", "RECRUITING", "NewCo", "Ulcerative Colitis",
		ctgov.Intervention{Type: "DRUG", Name: "XYZ-404 (anti-TL1A antibody)", Description: "binds TNFSF15"})

	orders := map[string][]ctgov.Trial{
		"low then high": {low, high},
		"high then low": {high, low},
	}
	for name, trials := range orders {
		d := NewDiscoverer(curated.Open(), &fakeSearcher{byCondition: trials}, Config{})
		report, err := d.DiscoverAssets(context.Background(), "TL1A")
		if err != nil {
			t.Fatal(err)
		}
		a := findAsset(report.All(), trials[0].Interventions[0].Name)
		if a == nil {
			t.Fatalf("%s: folded asset missing from report", name)
		}
		if a.TrialCount != 2 || len(a.TrialIDs) != 2 {
			t.Fatalf("%s: expected both trials folded, got count=%d ids=%v", name, a.TrialCount, a.TrialIDs)
		}
		if a.Confidence != asset.ConfidenceHigh {
			t.Fatalf("%s: expected HIGH after folding, got %s", name, a.Confidence)
		}
		if a.VerificationMethod != asset.MethodNameMatch {
			t.Fatalf("%s: verdict method should follow the upgrade, got %s", name, a.VerificationMethod)
		}
	}
}

func TestDiscoverAssetsSearchFailureDegrades(t *testing.T) {
	d := NewDiscoverer(curated.Open(), &fakeSearcher{err: context.DeadlineExceeded}, Config{})

	report, err := d.DiscoverAssets(context.Background(), "TL1A")
	if err != nil {
		t.Fatal(err)
	}
	// Registry failures leave the curated set intact.
	if len(report.Verified) == 0 {
		t.Fatal("expected curated assets despite search failures")
	}
}

func TestDiscoverAssetsUnknownTarget(t *testing.T) {
	trials := []ctgov.Trial{
		drugTrial("NCT201", "PHASE1", "RECRUITING", "NewCo", "Some Disease",
			ctgov.Intervention{Type: "DRUG", Name: "OBSCURE9-inhibitor-1", Description: ""}),
	}
	d := NewDiscoverer(curated.Open(), &fakeSearcher{byCondition: trials}, Config{})

	report, err := d.DiscoverAssets(context.Background(), "OBSCURE9")
	if err != nil {
		t.Fatal(err)
	}
	a := findAsset(report.All(), "OBSCURE9-inhibitor-1")
	if a == nil {
		t.Fatal("expected name-matched asset for uncurated target")
	}
	if a.Confidence != asset.ConfidenceMedium {
		t.Fatalf("expected MEDIUM via name match, got %s", a.Confidence)
	}
}
