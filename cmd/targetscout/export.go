package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelkehle/targetscout/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export [target]",
	Short: "Export a research report as Excel or PDF",
	Long: `Export runs (or reuses the cached) research for a target and writes it as an
Excel workbook or a PDF. PDF rendering requires a local Chromium install.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		refresh, _ := cmd.Flags().GetBool("refresh")

		if out == "" {
			out = fmt.Sprintf("%s-assets.%s", strings.ToLower(target), format)
		}

		store := openCache()
		if store != nil {
			defer store.Close()
		}
		ctx := context.Background()
		r, err := runResearch(ctx, target, store, refresh)
		if err != nil {
			return err
		}

		switch format {
		case "xlsx":
			if err := report.WriteExcel(r, out); err != nil {
				return err
			}
		case "pdf":
			md := report.BuildMarkdown(r, report.Extras{})
			ctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			pdf, err := report.NewPDFRenderer().Render(ctx, md, "Target Asset Report: "+target)
			if err != nil {
				return err
			}
			return writeOutput(out, pdf)
		default:
			return fmt.Errorf("unknown format %q (want xlsx or pdf)", format)
		}
		fmt.Println("Wrote", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "xlsx", "output format: xlsx or pdf")
	exportCmd.Flags().String("out", "", "output path (default: <target>-assets.<format>)")
	exportCmd.Flags().Bool("refresh", false, "ignore the cache and rerun discovery")

	rootCmd.AddCommand(exportCmd)
}
