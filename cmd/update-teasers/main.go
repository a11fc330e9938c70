// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the update-teasers command. It points each featured
// paper in data/featured_details.json at the teaser image stored under its
// identifier.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pamolchanov/pamolchanov.github.io/internal/config"
	"github.com/pamolchanov/pamolchanov.github.io/internal/teasers"
)

// version is set at build time via ldflags.
var version = "dev"

var settings *viper.Viper

// teaserFlags maps config keys to the flags that override them.
var teaserFlags = map[string]string{
	"teasers.details_path": "details",
	"teasers.teasers_dir":  "teasers-dir",
	"teasers.web_prefix":   "web-prefix",
}

var rootCmd = &cobra.Command{
	Use:   "update-teasers",
	Short: "Point featured papers at their teaser images",
	Long: `update-teasers looks for <id>.jpg, <id>.jpeg, <id>.png or <id>.webp (first match
wins) in the teasers directory for every entry of the featured details file,
and rewrites the entry's image field when it differs. The file is only
written when at least one entry changed.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings = config.New()
		if err := config.BindFlags(settings, cmd.Root().Flags(), teaserFlags); err != nil {
			return err
		}
		cfgFile, _ := cmd.Flags().GetString("config")
		return config.Read(settings, cfgFile, cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Teasers(settings)
		if err != nil {
			return err
		}
		_, err = teasers.Run(cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./site-tools.yaml or ~/.config/site-tools/site-tools.yaml)")

	f := rootCmd.Flags()
	f.String("details", "", "featured details JSON file (default data/featured_details.json)")
	f.String("teasers-dir", "", "directory holding teaser images (default assets/images/teasers)")
	f.String("web-prefix", "", "site-relative prefix written into image fields (default assets/images/teasers)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
