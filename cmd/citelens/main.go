// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citelens CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citelens/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the citelens CLI.
var rootCmd = &cobra.Command{
	Use:   "citelens",
	Short: "Citation extraction and theme analysis for academic papers",
	Long: `citelens analyzes plain-text and Markdown academic papers. It extracts
structured citation records with per-record confidence scores, counts term
frequencies and co-occurrences to surface dominant themes, concept clusters,
and research gaps, and maintains a queryable SQLite index of results.

Each analysis stage is a subcommand: citations, themes, bibliography, and
store. Per-document outputs feed the store; corpus rollups come from themes.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citelens.yaml or ~/.config/citelens/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citelens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citelens"))
		}
	}

	viper.SetEnvPrefix("CITELENS")
	viper.AutomaticEnv()

	viper.SetDefault("analysis.window_size", types.DefaultWindowSize)
	viper.SetDefault("analysis.cooccurrence_threshold", types.DefaultCooccurrenceThreshold)
	viper.SetDefault("analysis.cluster_threshold", types.DefaultClusterThreshold)
	viper.SetDefault("analysis.top_k_themes", types.DefaultTopKThemes)
	viper.SetDefault("analysis.min_term_frequency", types.DefaultMinTermFrequency)
	viper.SetDefault("analysis.overlap_resolution_threshold", types.DefaultOverlapThreshold)
	viper.SetDefault("analysis.fallback_confidence_threshold", types.DefaultFallbackThreshold)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// analysisConfig assembles the pipeline configuration from the config
// file, environment, and command flags. Flags win when set.
func analysisConfig(cmd *cobra.Command) types.AnalysisConfig {
	cfg := types.AnalysisConfig{
		StopWords:             viper.GetStringSlice("analysis.stop_words"),
		WindowSize:            viper.GetInt("analysis.window_size"),
		CooccurrenceThreshold: viper.GetInt("analysis.cooccurrence_threshold"),
		ClusterThreshold:      viper.GetInt("analysis.cluster_threshold"),
		TopKThemes:            viper.GetInt("analysis.top_k_themes"),
		MinTermFrequency:      viper.GetInt("analysis.min_term_frequency"),
		OverlapThreshold:      viper.GetFloat64("analysis.overlap_resolution_threshold"),
		FallbackThreshold:     viper.GetFloat64("analysis.fallback_confidence_threshold"),
		ReferenceVocabulary:   viper.GetStringSlice("analysis.reference_vocabulary"),
	}

	if cmd.Flags().Changed("window-size") {
		cfg.WindowSize, _ = cmd.Flags().GetInt("window-size")
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopKThemes, _ = cmd.Flags().GetInt("top-k")
	}
	if cmd.Flags().Changed("min-frequency") {
		cfg.MinTermFrequency, _ = cmd.Flags().GetInt("min-frequency")
	}
	if cmd.Flags().Changed("fallback-threshold") {
		cfg.FallbackThreshold, _ = cmd.Flags().GetFloat64("fallback-threshold")
	}
	if cmd.Flags().Changed("vocabulary") {
		cfg.ReferenceVocabulary, _ = cmd.Flags().GetStringSlice("vocabulary")
	}

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
