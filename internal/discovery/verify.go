// Package discovery implements the multi-layer asset-verification engine and
// the discover/merge/rank pipeline that turns raw trial interventions into a
// ranked, confidence-tiered asset report.
package discovery

import (
	"fmt"
	"strings"

	"github.com/joelkehle/targetscout/internal/asset"
	"github.com/joelkehle/targetscout/internal/ctgov"
	"github.com/joelkehle/targetscout/internal/curated"
	"github.com/joelkehle/targetscout/internal/targets"
)

// Verdict is the outcome of running one candidate through the engine.
type Verdict struct {
	Confidence asset.Confidence
	Method     asset.VerificationMethod
	Details    string
}

// Verifier runs candidate drugs through the ordered verification layers.
type Verifier struct {
	db *curated.DB
}

func NewVerifier(db *curated.DB) *Verifier {
	return &Verifier{db: db}
}

// Verify runs the bulk-discovery decision procedure for one candidate.
// Callers are expected to have short-circuited curated assets already; this
// covers the remaining ordered layers:
//
//  1. generic exclusion, overridden by an independent name match
//  2. name-keyword match against aliases and mechanisms
//  3. description-keyword match against aliases, mechanisms, gene symbol
//  4. the decision table combining 2 and 3
//
// Evaluation is strict: a drug whose name contains a target alias is never
// excluded merely because it also resembles a common-drug pattern.
func (v *Verifier) Verify(drugName, description, target string, info targets.Info) Verdict {
	nameHit, nameKw := matchesName(drugName, info)
	descHit, descKw := matchesDescription(description, info)

	if v.db.IsExcluded(drugName, target) && !nameHit && !descHit {
		return Verdict{
			Confidence: asset.ConfidenceExclude,
			Method:     asset.MethodExcludedList,
			Details:    fmt.Sprintf("known non-%s asset", info.OfficialName),
		}
	}

	if targets.IsCommonNonTargetDrug(drugName) && !nameHit {
		return Verdict{
			Confidence: asset.ConfidenceExclude,
			Method:     asset.MethodTrialAssoc,
			Details:    "common chemotherapy/steroid/supportive-care agent",
		}
	}

	switch {
	case nameHit && descHit:
		return Verdict{
			Confidence: asset.ConfidenceHigh,
			Method:     asset.MethodNameMatch,
			Details:    fmt.Sprintf("name contains %q, description mentions %q", nameKw, descKw),
		}
	case nameHit:
		return Verdict{
			Confidence: asset.ConfidenceMedium,
			Method:     asset.MethodNameMatch,
			Details:    fmt.Sprintf("name contains %q", nameKw),
		}
	case descHit:
		return Verdict{
			Confidence: asset.ConfidenceLow,
			Method:     asset.MethodMechanism,
			Details:    fmt.Sprintf("description mentions %q", descKw),
		}
	default:
		return Verdict{
			Confidence: asset.ConfidenceExclude,
			Method:     asset.MethodTrialAssoc,
			Details:    "no evidence",
		}
	}
}

// VerifyDrug is the single-drug lookup API: five layers evaluated in order,
// returning on the first decisive result. Trial co-occurrence (layer 5) is
// never decisive on its own; it only annotates the UNVERIFIED fallthrough.
func (v *Verifier) VerifyDrug(drugName, description, target string, trials []ctgov.Trial) Verdict {
	info := targets.Resolve(target)

	if ka := v.db.Find(drugName, target); ka != nil {
		return Verdict{
			Confidence: asset.ConfidenceHigh,
			Method:     asset.MethodCurated,
			Details:    fmt.Sprintf("curated asset %s (%s)", ka.PrimaryName, ka.Owner),
		}
	}

	// An explicit known-false-positive entry is the one exclusion that is
	// decisive at high confidence, before any keyword layer runs.
	if v.db.IsExcluded(drugName, target) {
		return Verdict{
			Confidence: asset.ConfidenceExclude,
			Method:     asset.MethodExcludedList,
			Details:    fmt.Sprintf("known non-%s asset", info.OfficialName),
		}
	}

	if hit, kw := matchesName(drugName, info); hit {
		return Verdict{
			Confidence: asset.ConfidenceMedium,
			Method:     asset.MethodNameMatch,
			Details:    fmt.Sprintf("name contains %q", kw),
		}
	}
	if hit, kw := matchesDescription(description, info); hit {
		return Verdict{
			Confidence: asset.ConfidenceLow,
			Method:     asset.MethodMechanism,
			Details:    fmt.Sprintf("description mentions %q", kw),
		}
	}

	// Layer 5: trial-condition cross-reference. Co-occurrence in trials for
	// the target's conditions is explicitly insufficient evidence; it only
	// enriches the detail string.
	if n := countTrialMentions(drugName, trials); n > 0 {
		return Verdict{
			Confidence: asset.ConfidenceUnverified,
			Method:     asset.MethodTrialContext,
			Details:    fmt.Sprintf("appears in %d trial(s) without name or mechanism evidence", n),
		}
	}
	return Verdict{
		Confidence: asset.ConfidenceUnverified,
		Method:     asset.MethodTrialContext,
		Details:    "no evidence",
	}
}

// matchesName tests folded substring containment of any alias or mechanism
// keyword in the drug name.
func matchesName(drugName string, info targets.Info) (bool, string) {
	folded := asset.FoldName(drugName)
	if folded == "" {
		return false, ""
	}
	for _, kw := range append(append([]string{}, info.Aliases...), info.CommonMechanisms...) {
		k := asset.FoldName(kw)
		if k != "" && strings.Contains(folded, k) {
			return true, kw
		}
	}
	return false, ""
}

// matchesDescription runs the same folded substring test against the
// free-text intervention description, additionally checking the gene symbol.
func matchesDescription(description string, info targets.Info) (bool, string) {
	folded := asset.FoldName(description)
	if folded == "" {
		return false, ""
	}
	keywords := append(append([]string{}, info.Aliases...), info.CommonMechanisms...)
	if info.GeneSymbol != "" {
		keywords = append(keywords, info.GeneSymbol)
	}
	for _, kw := range keywords {
		k := asset.FoldName(kw)
		if k != "" && strings.Contains(folded, k) {
			return true, kw
		}
	}
	return false, ""
}

func countTrialMentions(drugName string, trials []ctgov.Trial) int {
	key := asset.CanonicalKey(drugName)
	if key == "" {
		return 0
	}
	n := 0
	for _, t := range trials {
		for _, iv := range t.Interventions {
			if asset.CanonicalKey(iv.Name) == key {
				n++
				break
			}
		}
	}
	return n
}
