package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelkehle/targetscout/internal/ctgov"
	"github.com/joelkehle/targetscout/internal/curated"
	"github.com/joelkehle/targetscout/internal/discovery"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [drug] [target]",
	Short: "Verify a single drug/target association",
	Long: `Verify runs one drug name through the layered verification engine: curated
database, exclusion lists, name match, mechanism match, and trial context.
Prints the confidence tier, the deciding layer, and its evidence.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		drug, target := args[0], args[1]
		description, _ := cmd.Flags().GetString("description")
		noTrials, _ := cmd.Flags().GetBool("no-trials")

		var trials []ctgov.Trial
		if !noTrials {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			found, err := newTrialClient().SearchByIntervention(ctx, drug, 50)
			if err != nil {
				log.Printf("targetscout cli trial_lookup_failed drug=%s err=%v", drug, err)
			} else {
				trials = found
			}
		}

		v := discovery.NewVerifier(curated.Open())
		verdict := v.VerifyDrug(drug, description, target, trials)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"drug":       drug,
			"target":     target,
			"confidence": verdict.Confidence,
			"method":     verdict.Method,
			"details":    verdict.Details,
		})
	},
}

func init() {
	verifyCmd.Flags().String("description", "", "intervention description text, if available")
	verifyCmd.Flags().Bool("no-trials", false, "skip the registry lookup for trial context")

	rootCmd.AddCommand(verifyCmd)
}
