// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the update-scholar command. It fetches the author's
// publication list from a scholar profile and merges it into the site's
// data/publications.json, keeping manual edits to existing records.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pamolchanov/pamolchanov.github.io/internal/config"
	"github.com/pamolchanov/pamolchanov.github.io/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	settings      *viper.Viper
	loadedSecrets secrets.Secrets
)

// scholarFlags maps config keys to the flags that override them.
var scholarFlags = map[string]string{
	"scholar.author_id":        "author",
	"scholar.source":           "source",
	"scholar.data_dir":         "data-dir",
	"scholar.cache_path":       "cache",
	"scholar.request_interval": "interval",
	"scholar.export_yaml":      "export-yaml",
	"scholar.export_csl":       "export-csl",
	"scholar.dry_run":          "dry-run",
}

var rootCmd = &cobra.Command{
	Use:   "update-scholar",
	Short: "Merge the scholar profile into data/publications.json",
	Long: `update-scholar fetches every publication on the configured author profile,
normalizes each one, and merges the result into the site's publication list.

Records are matched by title (case-insensitive). Fetched values replace
title, authors, venue and year; links and tags are unioned; existing ids and
any manually added fields are kept. Records the profile no longer lists are
preserved. The list is written sorted by year, newest first.

Publications that fail to expand are reported and skipped. Expanded records
are cached in SQLite so re-runs only fetch what is new.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runUpdateScholar,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./site-tools.yaml or ~/.config/site-tools/site-tools.yaml)")

	f := rootCmd.Flags()
	f.String("author", "", "author id on the selected source (for --source file, a path to a JSON dump)")
	f.String("source", "", "scholar backend: google_scholar, semantic_scholar or file (default google_scholar)")
	f.String("data-dir", "", "site data directory holding publications.json (default data)")
	f.String("cache", "", "SQLite fetch cache path (default .cache/scholar.db)")
	f.Bool("no-cache", false, "fetch every publication live")
	f.Duration("interval", 0, "minimum delay between Google Scholar requests (default 2s)")
	f.String("export-yaml", "", "also write the merged list as YAML to this path")
	f.String("export-csl", "", "also write the merged list as CSL-YAML to this path")
	f.Bool("dry-run", false, "report the merge without writing any file")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := secrets.Load(secrets.DefaultDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	loadedSecrets = s
	if keys := s.Keys(); len(keys) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Loaded secrets: %v\n", keys)
	}

	settings = config.New()
	if err := config.BindFlags(settings, cmd.Root().Flags(), scholarFlags); err != nil {
		return err
	}
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Read(settings, cfgFile, cmd.ErrOrStderr())
}

func runUpdateScholar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Scholar(settings, loadedSecrets)
	if err != nil {
		return err
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.CachePath = ""
	}
	return updateScholar(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
