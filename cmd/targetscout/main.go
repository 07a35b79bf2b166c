// Package main is the entry point for the targetscout CLI: biotech target
// asset research over clinical-trial registries, SEC filings, and curated
// competitive intelligence.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joelkehle/targetscout/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is loaded once before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "targetscout",
	Short: "Competitive asset research for biotech drug targets",
	Long: `targetscout researches the competitive landscape around a drug target.
It discovers assets from clinical-trial registries, verifies each drug/target
association against a curated database, and renders reports in markdown,
Excel, and PDF. A separate filing command runs an LLM analysis over a
company's latest SEC filing.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./targetscout.yaml or ~/.config/targetscout/config.yaml)")
	rootCmd.PersistentFlags().String("cache", "", "path to the sqlite research cache")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("targetscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "targetscout"))
		}
	}

	viper.SetEnvPrefix("TARGETSCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// cachePath resolves the cache location: flag, then environment, then default.
func cachePath() string {
	if p, _ := rootCmd.PersistentFlags().GetString("cache"); p != "" {
		return p
	}
	return cfg.CachePath
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
