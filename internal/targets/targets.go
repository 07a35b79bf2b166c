// Package targets resolves a therapeutic target to its search surface:
// curated aliases, mechanism keywords, and the generic-drug exclusion list
// applied uniformly across targets.
package targets

import (
	"strings"

	"github.com/joelkehle/targetscout/internal/asset"
)

// Info is one target's search surface. Immutable reference data.
type Info struct {
	OfficialName     string
	Aliases          []string
	CommonMechanisms []string
	GeneSymbol       string
	// Curated is false when the target was not found in the static table and
	// the Info is an inferred stub. Verification then degrades to
	// name-substring matching only.
	Curated bool
}

var targetTable = map[string]Info{
	"tl1a": {
		OfficialName:     "TL1A",
		Aliases:          []string{"TL1A", "TNFSF15", "TNF-like ligand 1A", "VEGI"},
		CommonMechanisms: []string{"anti-TL1A", "TL1A inhibitor", "TNFSF15 blockade", "DR3 pathway"},
		GeneSymbol:       "TNFSF15",
		Curated:          true,
	},
	"b7h3": {
		OfficialName:     "B7-H3",
		Aliases:          []string{"B7-H3", "B7H3", "CD276"},
		CommonMechanisms: []string{"anti-B7-H3", "B7-H3 targeted", "CD276 directed"},
		GeneSymbol:       "CD276",
		Curated:          true,
	},
	"cd19": {
		OfficialName:     "CD19",
		Aliases:          []string{"CD19"},
		CommonMechanisms: []string{"anti-CD19", "CD19 directed", "CD19 CAR"},
		GeneSymbol:       "CD19",
		Curated:          true,
	},
	"claudin182": {
		OfficialName:     "Claudin 18.2",
		Aliases:          []string{"Claudin 18.2", "CLDN18.2", "Claudin18.2"},
		CommonMechanisms: []string{"anti-Claudin 18.2", "CLDN18.2 targeted"},
		GeneSymbol:       "CLDN18",
		Curated:          true,
	},
	"il23": {
		OfficialName:     "IL-23",
		Aliases:          []string{"IL-23", "IL23", "interleukin-23", "IL-23p19"},
		CommonMechanisms: []string{"anti-IL-23", "IL-23 inhibitor", "p19 subunit"},
		GeneSymbol:       "IL23A",
		Curated:          true,
	},
	"trop2": {
		OfficialName:     "TROP2",
		Aliases:          []string{"TROP2", "TROP-2", "TACSTD2"},
		CommonMechanisms: []string{"anti-TROP2", "TROP2 directed"},
		GeneSymbol:       "TACSTD2",
		Curated:          true,
	},
}

// Resolve looks up a target's curated search surface. Unknown targets never
// error: they get a best-effort stub whose only alias is the target itself.
func Resolve(target string) Info {
	key := asset.FoldName(target)
	key = strings.NewReplacer(".", "", "/", "").Replace(key)
	if info, ok := targetTable[key]; ok {
		return info
	}
	return Info{
		OfficialName: strings.TrimSpace(target),
		Aliases:      []string{strings.TrimSpace(target)},
		Curated:      false,
	}
}

// commonNonTargetDrugs are chemotherapy, steroid, and supportive-care agents
// that co-occur in trials for almost any condition. The check is
// target-independent.
var commonNonTargetDrugs = []string{
	"carboplatin", "cisplatin", "oxaliplatin",
	"paclitaxel", "docetaxel", "nab-paclitaxel",
	"gemcitabine", "pemetrexed", "capecitabine", "fluorouracil", "5-fu",
	"doxorubicin", "epirubicin", "irinotecan", "topotecan", "etoposide",
	"cyclophosphamide", "vincristine", "vinorelbine", "temozolomide",
	"methotrexate", "azathioprine", "leucovorin", "folinic acid",
	"prednisone", "prednisolone", "dexamethasone", "methylprednisolone",
	"hydrocortisone", "budesonide",
	"ondansetron", "granisetron", "aprepitant", "loperamide",
	"filgrastim", "pegfilgrastim", "epoetin",
	"placebo", "saline", "normal saline", "standard of care",
	"best supportive care", "observation",
	"acetaminophen", "paracetamol", "ibuprofen", "diphenhydramine",
	"mesalamine", "sulfasalazine", "infliximab biosimilar",
}

// IsCommonNonTargetDrug reports whether the name matches the fixed
// chemo/steroid/supportive-care list. Matching is case, hyphen, and
// whitespace insensitive substring containment so that dosage-suffixed
// registry spellings ("Paclitaxel 175 mg/m2") still hit.
func IsCommonNonTargetDrug(name string) bool {
	folded := asset.FoldName(name)
	if folded == "" {
		return false
	}
	for _, drug := range commonNonTargetDrugs {
		if strings.Contains(folded, asset.FoldName(drug)) {
			return true
		}
	}
	return false
}
