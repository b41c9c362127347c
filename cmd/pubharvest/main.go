// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubharvest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pubharvest CLI.
var rootCmd = &cobra.Command{
	Use:   "pubharvest",
	Short: "Harvest research publication listings into a spreadsheet",
	Long: `pubharvest crawls a research site's publication listings, extracts
structured bibliographic records, scores them against a curated keyword list,
and exports filtered and unfiltered views to a spreadsheet, together with an
auditable robots-compliance journal.

The crawl subcommand is designed for unattended scheduled execution: it
always exits successfully and always writes its artifacts, falling back to
header-only files plus a diagnostic log when a run degrades.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubharvest.yaml or ~/.config/pubharvest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubharvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubharvest"))
		}
	}

	viper.SetEnvPrefix("PUBHARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
