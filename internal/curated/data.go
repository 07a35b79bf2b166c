package curated

import "github.com/joelkehle/targetscout/internal/asset"

// knownAssets is the curated ground-truth table, keyed by folded target name.
// Maintained by hand; deal terms are public figures from company disclosures.
var knownAssets = map[string][]asset.KnownAsset{
	"tl1a": {
		{
			PrimaryName:    "Tulisokibart",
			CodeNames:      []string{"MK-7240", "PRA023"},
			Target:         "TL1A",
			Modality:       asset.ModalityMAb,
			Owner:          "Merck",
			OwnerType:      asset.OwnerBigPharma,
			Phase:          asset.Phase3,
			Status:         asset.StatusActive,
			LeadIndication: "Ulcerative colitis",
			DealTerms:      "Acquired with Prometheus Biosciences for $10.8B (2023)",
			TrialIDs:       []string{"NCT06052059", "NCT06430801"},
		},
		{
			PrimaryName:    "Duvakitug",
			CodeNames:      []string{"TEV-48574", "SAR447189"},
			Target:         "TL1A",
			Modality:       asset.ModalityMAb,
			Owner:          "Teva",
			OwnerType:      asset.OwnerBigPharma,
			Partner:        "Sanofi",
			Phase:          asset.Phase3,
			Status:         asset.StatusActive,
			LeadIndication: "Inflammatory bowel disease",
			DealTerms:      "Sanofi co-development, $500M upfront (2023)",
			TrialIDs:       []string{"NCT05499130"},
		},
		{
			PrimaryName:    "Afimkibart",
			CodeNames:      []string{"RVT-3101", "PF-06480605", "RG6631"},
			Target:         "TL1A",
			Modality:       asset.ModalityMAb,
			Owner:          "Roche",
			OwnerType:      asset.OwnerBigPharma,
			Phase:          asset.Phase3,
			Status:         asset.StatusActive,
			LeadIndication: "Ulcerative colitis",
			DealTerms:      "Acquired from Roivant (Telavant) for $7.1B (2023)",
			TrialIDs:       []string{"NCT05910528"},
		},
	},
	"b7h3": {
		{
			PrimaryName:    "Ifinatamab deruxtecan",
			CodeNames:      []string{"DS-7300", "I-DXd"},
			Target:         "B7-H3",
			Modality:       asset.ModalityADC,
			Owner:          "Daiichi Sankyo",
			OwnerType:      asset.OwnerBigPharma,
			Partner:        "Merck",
			Phase:          asset.Phase3,
			Status:         asset.StatusActive,
			LeadIndication: "Small cell lung cancer",
			DealTerms:      "Merck global co-development, up to $22B across three ADCs (2023)",
			TrialIDs:       []string{"NCT05280470", "NCT06203210"},
		},
		{
			PrimaryName:    "Vobramitamab duocarmazine",
			CodeNames:      []string{"MGC018"},
			Target:         "B7-H3",
			Modality:       asset.ModalityADC,
			Owner:          "MacroGenics",
			OwnerType:      asset.OwnerBiotech,
			Phase:          asset.Phase2,
			Status:         asset.StatusActive,
			LeadIndication: "Metastatic castration-resistant prostate cancer",
			TrialIDs:       []string{"NCT05551117"},
		},
		{
			PrimaryName:    "HS-20093",
			CodeNames:      []string{"GSK5764227"},
			Target:         "B7-H3",
			Modality:       asset.ModalityADC,
			Owner:          "Hansoh Pharma",
			OwnerType:      asset.OwnerChineseBiotech,
			Partner:        "GSK",
			Phase:          asset.Phase3,
			Status:         asset.StatusActive,
			LeadIndication: "Small cell lung cancer",
			DealTerms:      "GSK ex-China license, $185M upfront (2023)",
			TrialIDs:       []string{"NCT06063681"},
		},
		{
			PrimaryName:    "Obrixtamig",
			CodeNames:      []string{"BI 764532"},
			Target:         "B7-H3",
			Modality:       asset.ModalityTCE,
			Owner:          "Boehringer Ingelheim",
			OwnerType:      asset.OwnerBigPharma,
			Phase:          asset.Phase1,
			Status:         asset.StatusActive,
			LeadIndication: "DLL3-positive tumors",
			Notes:          "DLL3xCD3 engager with B7-H3 combination arms",
		},
	},
	"cd19": {
		{
			PrimaryName:    "Tisagenlecleucel",
			GenericName:    "tisagenlecleucel",
			CodeNames:      []string{"CTL019"},
			Aliases:        []string{"Kymriah"},
			Target:         "CD19",
			Modality:       asset.ModalityCART,
			Owner:          "Novartis",
			OwnerType:      asset.OwnerBigPharma,
			Phase:          asset.PhaseApproved,
			Status:         asset.StatusActive,
			LeadIndication: "B-cell acute lymphoblastic leukemia",
		},
		{
			PrimaryName:    "Blinatumomab",
			Aliases:        []string{"Blincyto"},
			Target:         "CD19",
			Modality:       asset.ModalityBiTE,
			Owner:          "Amgen",
			OwnerType:      asset.OwnerBigPharma,
			Phase:          asset.PhaseApproved,
			Status:         asset.StatusActive,
			LeadIndication: "B-cell acute lymphoblastic leukemia",
		},
	},
}

// excludedDrugs lists, per target, drugs that verifiably target something
// else but recur in trials for the target's conditions. A hit here is a hard
// EXCLUDE unless the name independently matches the target.
var excludedDrugs = map[string][]string{
	"tl1a": {
		"vedolizumab",  // alpha4beta7 integrin
		"ustekinumab",  // IL-12/23
		"risankizumab", // IL-23
		"adalimumab",   // TNF
		"tofacitinib",  // JAK
		"ozanimod",     // S1P
	},
	"b7h3": {
		"pembrolizumab", // PD-1
		"nivolumab",     // PD-1
		"atezolizumab",  // PD-L1
		"durvalumab",    // PD-L1
		"ipilimumab",    // CTLA-4
		"tarlatamab",    // DLL3
	},
}
