package discovery

import (
	"context"
	"log"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/joelkehle/targetscout/internal/asset"
	"github.com/joelkehle/targetscout/internal/ctgov"
	"github.com/joelkehle/targetscout/internal/curated"
	"github.com/joelkehle/targetscout/internal/targets"
)

const (
	// DefaultMaxAliasTerms caps how many aliases beyond the official name are
	// used as search terms, to limit external-call volume.
	DefaultMaxAliasTerms = 2
	DefaultMaxTrials     = 100
)

// TrialSearcher is the consumed contract of the trial registry client.
type TrialSearcher interface {
	SearchByCondition(ctx context.Context, term string, maxResults int) ([]ctgov.Trial, error)
	SearchByIntervention(ctx context.Context, term string, maxResults int) ([]ctgov.Trial, error)
}

type Config struct {
	MaxAliasTerms int
	MaxTrials     int
}

// Discoverer runs the full discover/verify/merge/rank pipeline for a target.
type Discoverer struct {
	cfg      Config
	db       *curated.DB
	trials   TrialSearcher
	verifier *Verifier
}

func NewDiscoverer(db *curated.DB, trials TrialSearcher, cfg Config) *Discoverer {
	if cfg.MaxAliasTerms <= 0 {
		cfg.MaxAliasTerms = DefaultMaxAliasTerms
	}
	if cfg.MaxTrials <= 0 {
		cfg.MaxTrials = DefaultMaxTrials
	}
	return &Discoverer{cfg: cfg, db: db, trials: trials, verifier: NewVerifier(db)}
}

// DiscoverAssets aggregates curated and trial-derived candidates for a target
// into a confidence-tiered report. Individual search failures are logged and
// treated as zero results; the pipeline never aborts on partial registry
// unavailability.
func (d *Discoverer) DiscoverAssets(ctx context.Context, target string) (asset.ResearchReport, error) {
	ctx, span := otel.Tracer("targetscout/discovery").Start(ctx, "DiscoverAssets")
	span.SetAttributes(attribute.String("target", target))
	defer span.End()

	info := targets.Resolve(target)

	knowns := d.db.AssetsForTarget(target)
	curatedAssets := make([]asset.DiscoveredAsset, 0, len(knowns))
	curatedKeys := map[string]struct{}{}
	for _, ka := range knowns {
		curatedAssets = append(curatedAssets, curatedToDiscovered(ka))
		for _, name := range ka.Names() {
			if key := asset.CanonicalKey(name); key != "" {
				curatedKeys[key] = struct{}{}
			}
		}
	}

	trials := d.fetchTrials(ctx, info)
	span.SetAttributes(attribute.Int("trials", len(trials)))

	discovered := map[string]*asset.DiscoveredAsset{}
	order := []string{}
	excluded := 0
	for _, trial := range trials {
		for _, iv := range trial.Interventions {
			if skipInterventionType(iv.Type) {
				continue
			}
			if d.db.Find(iv.Name, target) != nil {
				// Already covered by the curated set; curated data wins.
				continue
			}
			key := asset.CanonicalKey(iv.Name)
			if key == "" {
				continue
			}
			verdict := d.verifier.Verify(iv.Name, iv.Description, target, info)
			if verdict.Confidence == asset.ConfidenceExclude {
				excluded++
				continue
			}
			if existing, ok := discovered[key]; ok {
				foldTrial(existing, trial, verdict)
				continue
			}
			da := seedDiscovered(iv, trial, target, verdict)
			discovered[key] = &da
			order = append(order, key)
		}
	}

	merged := make([]asset.DiscoveredAsset, 0, len(curatedAssets)+len(discovered))
	merged = append(merged, curatedAssets...)
	for _, key := range order {
		da := discovered[key]
		if collidesWithCurated(da, curatedKeys) {
			continue
		}
		merged = append(merged, *da)
	}

	sortAssets(merged)

	report := asset.ResearchReport{
		Target: info.OfficialName,
		Summary: asset.ReportSummary{
			Total:         len(merged),
			ByModality:    map[string]int{},
			ByPhase:       map[string]int{},
			ExcludedCount: excluded,
		},
	}
	for _, da := range merged {
		switch da.Confidence {
		case asset.ConfidenceHigh:
			report.Verified = append(report.Verified, da)
		case asset.ConfidenceMedium:
			report.Probable = append(report.Probable, da)
		default:
			report.Unverified = append(report.Unverified, da)
		}
		report.Summary.ByModality[string(da.Modality)]++
		report.Summary.ByPhase[string(da.Phase)]++
	}
	log.Printf("targetscout discovery_done target=%s trials=%d verified=%d probable=%d unverified=%d excluded=%d",
		info.OfficialName, len(trials), len(report.Verified), len(report.Probable), len(report.Unverified), excluded)
	return report, nil
}

// fetchTrials queries the registry by condition and by intervention name for
// the official name and its top aliases, deduplicating by NCT id. Each
// failed search term is a loss for that term only.
func (d *Discoverer) fetchTrials(ctx context.Context, info targets.Info) []ctgov.Trial {
	terms := searchTerms(info, d.cfg.MaxAliasTerms)
	seen := map[string]struct{}{}
	var out []ctgov.Trial
	for _, term := range terms {
		for _, search := range []struct {
			kind string
			run  func(context.Context, string, int) ([]ctgov.Trial, error)
		}{
			{"condition", d.trials.SearchByCondition},
			{"intervention", d.trials.SearchByIntervention},
		} {
			found, err := search.run(ctx, term, d.cfg.MaxTrials)
			if err != nil {
				log.Printf("targetscout trial_search_failed kind=%s term=%q err=%v", search.kind, term, err)
				continue
			}
			for _, t := range found {
				if _, ok := seen[t.NCTID]; ok {
					continue
				}
				seen[t.NCTID] = struct{}{}
				out = append(out, t)
			}
		}
	}
	return out
}

func searchTerms(info targets.Info, maxAliases int) []string {
	terms := []string{info.OfficialName}
	seen := map[string]struct{}{asset.FoldName(info.OfficialName): {}}
	for _, alias := range info.Aliases {
		if len(terms) > maxAliases {
			break
		}
		k := asset.FoldName(alias)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		terms = append(terms, alias)
	}
	return terms
}

func skipInterventionType(t string) bool {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "DEVICE", "PROCEDURE", "BEHAVIORAL", "RADIATION", "DIAGNOSTIC_TEST", "DIETARY_SUPPLEMENT":
		return true
	default:
		return false
	}
}

func curatedToDiscovered(ka asset.KnownAsset) asset.DiscoveredAsset {
	return asset.DiscoveredAsset{
		DrugName:            ka.PrimaryName,
		Aliases:             ka.Names()[1:],
		Target:              ka.Target,
		Modality:            ka.Modality,
		Owner:               ka.Owner,
		OwnerType:           ka.OwnerType,
		Phase:               ka.Phase,
		Status:              ka.Status,
		LeadIndication:      ka.LeadIndication,
		TrialCount:          len(ka.TrialIDs),
		TrialIDs:            append([]string{}, ka.TrialIDs...),
		Confidence:          asset.ConfidenceHigh,
		VerificationMethod:  asset.MethodCurated,
		VerificationDetails: "curated ground-truth entry",
	}
}

func seedDiscovered(iv ctgov.Intervention, trial ctgov.Trial, target string, verdict Verdict) asset.DiscoveredAsset {
	da := asset.DiscoveredAsset{
		DrugName:            strings.TrimSpace(iv.Name),
		Target:              target,
		Modality:            targets.InferModality(iv.Name, iv.Description),
		Owner:               trial.LeadSponsor,
		OwnerType:           targets.InferOwnerType(trial.LeadSponsor),
		Phase:               asset.ParsePhase(trial.Phase),
		Status:              statusFromTrial(trial.Status),
		TrialCount:          1,
		Confidence:          verdict.Confidence,
		VerificationMethod:  verdict.Method,
		VerificationDetails: verdict.Details,
	}
	if len(trial.Conditions) > 0 {
		da.LeadIndication = trial.Conditions[0]
	}
	if trial.NCTID != "" {
		da.TrialIDs = []string{trial.NCTID}
	}
	return da
}

// foldTrial merges one more matching trial into an existing discovered asset.
// Confidence and phase only ever move up.
func foldTrial(da *asset.DiscoveredAsset, trial ctgov.Trial, verdict Verdict) {
	if trial.NCTID == "" || !containsString(da.TrialIDs, trial.NCTID) {
		da.TrialCount++
	}
	if trial.NCTID != "" && !containsString(da.TrialIDs, trial.NCTID) {
		da.TrialIDs = append(da.TrialIDs, trial.NCTID)
	}
	if verdict.Confidence.Outranks(da.Confidence) {
		da.Confidence = verdict.Confidence
		da.VerificationMethod = verdict.Method
		da.VerificationDetails = verdict.Details
	}
	if p := asset.ParsePhase(trial.Phase); p.Outranks(da.Phase) {
		da.Phase = p
	}
	if da.LeadIndication == "" && len(trial.Conditions) > 0 {
		da.LeadIndication = trial.Conditions[0]
	}
}

func collidesWithCurated(da *asset.DiscoveredAsset, curatedKeys map[string]struct{}) bool {
	for _, name := range append([]string{da.DrugName}, da.Aliases...) {
		key := asset.CanonicalKey(name)
		if key == "" {
			continue
		}
		if _, ok := curatedKeys[key]; ok {
			return true
		}
	}
	return false
}

// sortAssets orders by confidence tier, then phase rank, then name for a
// deterministic report.
func sortAssets(list []asset.DiscoveredAsset) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Confidence.Rank() != list[j].Confidence.Rank() {
			return list[i].Confidence.Rank() > list[j].Confidence.Rank()
		}
		if list[i].Phase.Rank() != list[j].Phase.Rank() {
			return list[i].Phase.Rank() > list[j].Phase.Rank()
		}
		return list[i].DrugName < list[j].DrugName
	})
}

func statusFromTrial(overall string) asset.Status {
	switch strings.ToUpper(strings.TrimSpace(overall)) {
	case "TERMINATED", "WITHDRAWN":
		return asset.StatusDiscontinued
	case "SUSPENDED":
		return asset.StatusOnHold
	default:
		return asset.StatusActive
	}
}

func containsString(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
