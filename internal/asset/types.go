// Package asset holds the shared domain model for target-asset research:
// clinical phases, confidence tiers, modalities, owners, and the curated and
// discovered asset records that flow through the discovery pipeline.
package asset

import (
	"regexp"
	"strings"
)

// Confidence classifies how certain the system is that a drug truly engages
// the requested target. The ordering is total: Exclude < Low < Medium < High.
// Unverified is reserved for the single-drug lookup API and ranks with
// Exclude; it never appears in pipeline output.
type Confidence string

const (
	ConfidenceExclude    Confidence = "EXCLUDE"
	ConfidenceUnverified Confidence = "UNVERIFIED"
	ConfidenceLow        Confidence = "LOW"
	ConfidenceMedium     Confidence = "MEDIUM"
	ConfidenceHigh       Confidence = "HIGH"
)

func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// Outranks reports whether c is strictly higher-confidence than other.
func (c Confidence) Outranks(other Confidence) bool {
	return c.Rank() > other.Rank()
}

// Phase is a clinical development stage with a defined total order.
type Phase string

const (
	PhasePreclinical Phase = "Preclinical"
	Phase1           Phase = "Phase 1"
	Phase1_2         Phase = "Phase 1/2"
	Phase2           Phase = "Phase 2"
	Phase2_3         Phase = "Phase 2/3"
	Phase3           Phase = "Phase 3"
	PhaseFiled       Phase = "Filed"
	PhaseApproved    Phase = "Approved"
	PhaseUnknown     Phase = "Unknown"
)

var phaseLadder = map[Phase]int{
	PhasePreclinical: 1,
	Phase1:           2,
	Phase1_2:         3,
	Phase2:           4,
	Phase2_3:         5,
	Phase3:           6,
	PhaseFiled:       7,
	PhaseApproved:    8,
}

// Rank returns the phase's position on the development ladder. Unrecognized
// phases rank 0 so they sort last.
func (p Phase) Rank() int {
	return phaseLadder[p]
}

// Outranks reports whether p is a strictly more advanced stage than other.
func (p Phase) Outranks(other Phase) bool {
	return p.Rank() > other.Rank()
}

// ParsePhase maps registry phase strings (ClinicalTrials.gov v2 enums and
// common free-text spellings) onto the ladder.
func ParsePhase(raw string) Phase {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	switch s {
	case "EARLYPHASE1", "PHASE1", "1":
		return Phase1
	case "PHASE1PHASE2", "PHASE1/2", "PHASE1/PHASE2":
		return Phase1_2
	case "PHASE2", "2":
		return Phase2
	case "PHASE2PHASE3", "PHASE2/3", "PHASE2/PHASE3":
		return Phase2_3
	case "PHASE3", "3":
		return Phase3
	case "PHASE4", "APPROVED", "MARKETED":
		return PhaseApproved
	case "FILED", "BLA", "NDA":
		return PhaseFiled
	case "PRECLINICAL", "NA", "NOTAPPLICABLE", "":
		return PhasePreclinical
	default:
		return PhaseUnknown
	}
}

// Modality is the structural class of a therapeutic.
type Modality string

const (
	ModalityADC            Modality = "ADC"
	ModalityMAb            Modality = "mAb"
	ModalityBispecific     Modality = "Bispecific"
	ModalityCART           Modality = "CAR-T"
	ModalityRadioconjugate Modality = "Radioconjugate"
	ModalitySmallMolecule  Modality = "Small Molecule"
	ModalityBiTE           Modality = "BiTE"
	ModalityTCE            Modality = "TCE"
	ModalityVaccine        Modality = "Vaccine"
	ModalityOther          Modality = "Other"
)

// OwnerType classifies the sponsoring organization.
type OwnerType string

const (
	OwnerBigPharma      OwnerType = "Big Pharma"
	OwnerBiotech        OwnerType = "Biotech"
	OwnerChineseBiotech OwnerType = "Chinese Biotech"
	OwnerAcademic       OwnerType = "Academic"
	OwnerOther          OwnerType = "Other"
)

// Status is the development status of an asset.
type Status string

const (
	StatusActive       Status = "Active"
	StatusDiscontinued Status = "Discontinued"
	StatusOnHold       Status = "On Hold"
)

// VerificationMethod records which layer of the verification engine decided.
type VerificationMethod string

const (
	MethodCurated      VerificationMethod = "curated_database"
	MethodExcludedList VerificationMethod = "excluded_list"
	MethodNameMatch    VerificationMethod = "name_match"
	MethodMechanism    VerificationMethod = "mechanism_match"
	MethodTrialAssoc   VerificationMethod = "trial_association"
	MethodTrialContext VerificationMethod = "trial_context"
)

// KnownAsset is a hand-curated, verified drug/target association. Curated
// records are ground truth: read-only at runtime and never overwritten by
// trial-derived discoveries.
type KnownAsset struct {
	PrimaryName    string    `json:"primary_name"`
	CodeNames      []string  `json:"code_names,omitempty"`
	GenericName    string    `json:"generic_name,omitempty"`
	Aliases        []string  `json:"aliases,omitempty"`
	Target         string    `json:"target"`
	Modality       Modality  `json:"modality"`
	Owner          string    `json:"owner"`
	OwnerType      OwnerType `json:"owner_type"`
	Partner        string    `json:"partner,omitempty"`
	Phase          Phase     `json:"phase"`
	Status         Status    `json:"status"`
	LeadIndication string    `json:"lead_indication"`
	DealTerms      string    `json:"deal_terms,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	TrialIDs       []string  `json:"trial_ids,omitempty"`
}

// Names returns every name the asset can be matched under.
func (k KnownAsset) Names() []string {
	out := make([]string, 0, 2+len(k.CodeNames)+len(k.Aliases))
	out = append(out, k.PrimaryName)
	if k.GenericName != "" {
		out = append(out, k.GenericName)
	}
	out = append(out, k.CodeNames...)
	out = append(out, k.Aliases...)
	return out
}

// DiscoveredAsset is the pipeline's working unit: one drug folded together
// from every trial whose intervention matched it. Confidence and phase are
// monotone under folding; they never regress once upgraded.
type DiscoveredAsset struct {
	DrugName            string             `json:"drug_name"`
	Aliases             []string           `json:"aliases,omitempty"`
	Target              string             `json:"target"`
	Modality            Modality           `json:"modality"`
	Owner               string             `json:"owner"`
	OwnerType           OwnerType          `json:"owner_type"`
	Phase               Phase              `json:"phase"`
	Status              Status             `json:"status"`
	LeadIndication      string             `json:"lead_indication,omitempty"`
	TrialCount          int                `json:"trial_count"`
	TrialIDs            []string           `json:"trial_ids,omitempty"`
	Confidence          Confidence         `json:"confidence"`
	VerificationMethod  VerificationMethod `json:"verification_method"`
	VerificationDetails string             `json:"verification_details,omitempty"`
}

// ReportSummary aggregates counts over the retained asset list.
type ReportSummary struct {
	Total         int            `json:"total"`
	ByModality    map[string]int `json:"by_modality"`
	ByPhase       map[string]int `json:"by_phase"`
	ExcludedCount int            `json:"excluded_count"`
}

// ResearchReport is the externally meaningful output of
// discovery: assets partitioned by confidence tier.
type ResearchReport struct {
	Target     string            `json:"target"`
	Verified   []DiscoveredAsset `json:"verified"`
	Probable   []DiscoveredAsset `json:"probable"`
	Unverified []DiscoveredAsset `json:"unverified"`
	Summary    ReportSummary     `json:"summary"`
}

// All returns every retained asset in report order (verified, probable,
// unverified).
func (r ResearchReport) All() []DiscoveredAsset {
	out := make([]DiscoveredAsset, 0, len(r.Verified)+len(r.Probable)+len(r.Unverified))
	out = append(out, r.Verified...)
	out = append(out, r.Probable...)
	out = append(out, r.Unverified...)
	return out
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	dosageRe        = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:mg|mcg|ug|g|ml|iu)(?:/(?:kg|m2|ml|day|week))?\b`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
)

// CanonicalKey normalizes a drug name to the key used for deduplication
// across trials and across the curated-vs-discovered merge: lowercase,
// parenthetical content removed, dosage suffixes stripped, then every
// non-alphanumeric character dropped. Normalizing twice yields the same key
// as normalizing once.
func CanonicalKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = dosageRe.ReplaceAllString(s, " ")
	return nonAlnumRe.ReplaceAllString(s, "")
}

// FoldName lowercases and strips hyphens and whitespace, for the
// case/hyphen-insensitive substring matching the verification layers use.
func FoldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", " ", "", "\t", "").Replace(s)
}
