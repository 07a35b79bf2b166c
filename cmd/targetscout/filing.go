package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelkehle/targetscout/internal/analysis"
	"github.com/joelkehle/targetscout/internal/edgar"
	"github.com/joelkehle/targetscout/internal/report"
)

var filingCmd = &cobra.Command{
	Use:   "filing [ticker]",
	Short: "Analyze a company's latest SEC filing with the LLM",
	Long: `Filing fetches the latest 10-K or 10-Q for a ticker from SEC EDGAR, runs the
language-model analysis over the filing body, and prints the pipeline and
financial summary. Requires ANTHROPIC_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := args[0]
		form, _ := cmd.Flags().GetString("form")
		asJSON, _ := cmd.Flags().GetBool("json")
		out, _ := cmd.Flags().GetString("out")

		caller, err := analysis.NewAnthropicCallerFromEnv()
		if err != nil {
			return err
		}

		store := openCache()
		if store != nil {
			defer store.Close()
		}
		ec := edgar.NewClient(edgar.Config{UserAgent: cfg.EdgarUserAgent}, store)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		filing, err := ec.LatestFiling(ctx, ticker, form)
		if err != nil {
			return err
		}

		res, err := analysis.NewAnalyzer(caller).Analyze(ctx, filing.Text, filing.Ticker, filing.FiledDate)
		if err != nil {
			return err
		}

		if asJSON {
			blob, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, append(blob, '\n'))
		}
		return writeOutput(out, []byte(report.BuildFilingMarkdown(res)))
	},
}

func init() {
	filingCmd.Flags().String("form", "10-K", "filing form type (10-K or 10-Q)")
	filingCmd.Flags().Bool("json", false, "output the raw analysis as JSON")
	filingCmd.Flags().String("out", "", "write output to file instead of stdout")

	rootCmd.AddCommand(filingCmd)
}
