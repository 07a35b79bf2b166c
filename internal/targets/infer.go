package targets

import (
	"strings"

	"github.com/joelkehle/targetscout/internal/asset"
)

// modalityKeywords maps name/description substrings to a modality. Entries
// are checked in order; more specific classes come before broader ones so
// "bispecific ADC" classifies as ADC.
var modalityKeywords = []struct {
	Keyword  string
	Modality asset.Modality
}{
	{"antibody-drug conjugate", asset.ModalityADC},
	{"antibody drug conjugate", asset.ModalityADC},
	{"adc", asset.ModalityADC},
	{"deruxtecan", asset.ModalityADC},
	{"vedotin", asset.ModalityADC},
	{"car-t", asset.ModalityCART},
	{"car t", asset.ModalityCART},
	{"chimeric antigen receptor", asset.ModalityCART},
	{"bite", asset.ModalityBiTE},
	{"t-cell engager", asset.ModalityTCE},
	{"t cell engager", asset.ModalityTCE},
	{"bispecific", asset.ModalityBispecific},
	{"radioconjugate", asset.ModalityRadioconjugate},
	{"radioligand", asset.ModalityRadioconjugate},
	{"radiolabeled", asset.ModalityRadioconjugate},
	{"lutetium", asset.ModalityRadioconjugate},
	{"actinium", asset.ModalityRadioconjugate},
	{"vaccine", asset.ModalityVaccine},
	{"monoclonal antibody", asset.ModalityMAb},
	{"-mab", asset.ModalityMAb},
	{"mab ", asset.ModalityMAb},
	{"antibody", asset.ModalityMAb},
	{"small molecule", asset.ModalitySmallMolecule},
	{"inhibitor", asset.ModalitySmallMolecule},
	{"-tinib", asset.ModalitySmallMolecule},
	{"oral", asset.ModalitySmallMolecule},
}

// InferModality guesses the structural class from the intervention name and
// description. Defaulting to Other keeps the guess honest when nothing hits.
func InferModality(name, description string) asset.Modality {
	haystack := strings.ToLower(name + " " + description)
	for _, row := range modalityKeywords {
		if strings.Contains(haystack, row.Keyword) {
			return row.Modality
		}
	}
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), "mab") {
		return asset.ModalityMAb
	}
	return asset.ModalityOther
}

var bigPharmaKeywords = []string{
	"pfizer", "merck", "roche", "genentech", "novartis", "sanofi",
	"astrazeneca", "gsk", "glaxosmithkline", "johnson & johnson", "janssen",
	"bristol-myers", "bristol myers", "abbvie", "eli lilly", "lilly",
	"amgen", "gilead", "takeda", "bayer", "boehringer", "novo nordisk",
	"astellas", "daiichi sankyo", "regeneron",
}

var chineseBiotechKeywords = []string{
	"shanghai", "beijing", "suzhou", "jiangsu", "hangzhou", "guangzhou",
	"nanjing", "chengdu", "wuhan", "zhejiang", "shenzhen", "china",
	"sino", "hengrui", "innovent", "beigene", "junshi", "akeso",
	"zai lab", "hutchmed", "biotheus", "keymed", "cstone",
}

var academicKeywords = []string{
	"university", "hospital", "medical center", "medical centre", "college",
	"institute of", "national cancer institute", "nci", "nih",
	"foundation", "memorial", "clinic", "academy",
}

// InferOwnerType classifies a trial sponsor by name-substring matching
// against the keyword tables. Biotech is the default: most industry sponsors
// that are not recognizably big pharma, Chinese, or academic are biotechs.
func InferOwnerType(sponsor string) asset.OwnerType {
	s := strings.ToLower(strings.TrimSpace(sponsor))
	if s == "" {
		return asset.OwnerOther
	}
	for _, kw := range bigPharmaKeywords {
		if strings.Contains(s, kw) {
			return asset.OwnerBigPharma
		}
	}
	for _, kw := range chineseBiotechKeywords {
		if strings.Contains(s, kw) {
			return asset.OwnerChineseBiotech
		}
	}
	for _, kw := range academicKeywords {
		if strings.Contains(s, kw) {
			return asset.OwnerAcademic
		}
	}
	return asset.OwnerBiotech
}
