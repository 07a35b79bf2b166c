package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const MaxFilingChars = 120000

// PipelineEntry is one reported development program.
type PipelineEntry struct {
	Drug       string `json:"drug"`
	Phase      string `json:"phase"`
	Indication string `json:"indication"`
	Status     string `json:"status,omitempty"`
	Catalyst   string `json:"catalyst,omitempty"`
}

// Financials carries the cash/runway figures the model extracted. Pointer
// fields distinguish "not reported" from zero.
type Financials struct {
	CashPositionUSD *float64 `json:"cash_position_usd"`
	CashAsOf        string   `json:"cash_as_of,omitempty"`
	RunwayMonths    *float64 `json:"runway_months"`
	BurnRateUSD     *float64 `json:"burn_rate_usd,omitempty"`
}

// Result is the structured filing analysis after validation and cleanup.
// ParseError and RawResponse are populated instead of failing when the model
// returns something that is not valid JSON.
type Result struct {
	Ticker      string          `json:"ticker"`
	Summary     string          `json:"summary"`
	Pipeline    []PipelineEntry `json:"pipeline"`
	Financials  Financials      `json:"financials"`
	Risks       []string        `json:"risks,omitempty"`
	DataWarning string          `json:"data_warning,omitempty"`
	FilingDate  string          `json:"filing_date,omitempty"`
	Model       string          `json:"model"`
	AnalyzedAt  time.Time       `json:"analyzed_at"`
	ParseError  string          `json:"parse_error,omitempty"`
	RawResponse string          `json:"raw_response,omitempty"`
}

// Analyzer wraps a Caller with the filing-analysis prompt and the
// post-processing cleanups.
type Analyzer struct {
	caller Caller
}

func NewAnalyzer(caller Caller) *Analyzer {
	return &Analyzer{caller: caller}
}

// Analyze summarizes a filing body into a structured result. LLM transport
// failure is the one hard error in the system; malformed model output is
// downgraded to a placeholder result carrying the raw text.
func (a *Analyzer) Analyze(ctx context.Context, filingText, ticker, filingDate string) (Result, error) {
	if len(filingText) > MaxFilingChars {
		filingText = filingText[:MaxFilingChars]
	}
	prompt := buildFilingPrompt(filingText, ticker)
	obj, raw, err := generate(ctx, a.caller, prompt)
	if err != nil {
		if raw == "" {
			return Result{}, err
		}
		// Parse failure: keep the unparsed text for diagnostics instead of
		// crashing the caller.
		return Result{
			Ticker:      ticker,
			Model:       a.caller.ModelName(),
			AnalyzedAt:  time.Now(),
			ParseError:  err.Error(),
			RawResponse: raw,
		}, nil
	}

	res := resultFromJSON(obj, ticker)
	res.Model = a.caller.ModelName()
	res.AnalyzedAt = time.Now()
	res.FilingDate = filingDate
	res.Pipeline = DedupePipeline(res.Pipeline)
	ApplyFinancialSanityFlags(&res)
	return res, nil
}

func buildFilingPrompt(filingText, ticker string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following SEC filing excerpt for %s.\n\n", ticker)
	b.WriteString(`Return strict JSON with this schema:
{
  "summary": "string (3-6 sentences)",
  "pipeline": [{"drug": "string", "phase": "string", "indication": "string", "status": "string", "catalyst": "string"}],
  "financials": {"cash_position_usd": "number or null", "cash_as_of": "YYYY-MM-DD or empty", "runway_months": "number or null", "burn_rate_usd": "number or null"},
  "risks": ["string"]
}

Only report figures that appear in the text. Use null for anything not stated.

FILING TEXT:
`)
	b.WriteString(filingText)
	return b.String()
}

// resultFromJSON converts the untyped model response field-by-field, giving
// every missing or mistyped field an explicit default.
func resultFromJSON(obj map[string]any, ticker string) Result {
	res := Result{Ticker: ticker}
	res.Summary = str(obj["summary"])

	if arr, ok := obj["pipeline"].([]any); ok {
		for _, item := range arr {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entry := PipelineEntry{
				Drug:       str(m["drug"]),
				Phase:      str(m["phase"]),
				Indication: str(m["indication"]),
				Status:     str(m["status"]),
				Catalyst:   str(m["catalyst"]),
			}
			if entry.Drug == "" {
				continue
			}
			res.Pipeline = append(res.Pipeline, entry)
		}
	}

	if fin, ok := obj["financials"].(map[string]any); ok {
		res.Financials.CashPositionUSD = num(fin["cash_position_usd"])
		res.Financials.CashAsOf = str(fin["cash_as_of"])
		res.Financials.RunwayMonths = num(fin["runway_months"])
		res.Financials.BurnRateUSD = num(fin["burn_rate_usd"])
	}

	if arr, ok := obj["risks"].([]any); ok {
		for _, item := range arr {
			if s := str(item); s != "" {
				res.Risks = append(res.Risks, s)
			}
		}
	}
	return res
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func num(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
