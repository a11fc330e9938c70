// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads site-tools settings. Values come from command-line
// flags, SITE_TOOLS_* environment variables, an optional YAML file and
// built-in defaults, in that order of precedence.
//
// Example site-tools.yaml:
//
//	scholar:
//	  author_id: 8M7Hy_4AAAAJ
//	  source: google_scholar
//	  request_interval: 3s
//	teasers:
//	  teasers_dir: assets/images/teasers
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pamolchanov/pamolchanov.github.io/internal/secrets"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

const (
	// Name is the config file base name and the user config directory.
	Name = "site-tools"

	// EnvPrefix prefixes environment overrides, e.g.
	// SITE_TOOLS_SCHOLAR_AUTHOR_ID.
	EnvPrefix = "SITE_TOOLS"

	// DefaultUserAgent is browser-like; the profile site rejects obvious
	// bots.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// File is the shape of the config file.
type File struct {
	Scholar types.ScholarConfig `mapstructure:"scholar"`
	Teasers types.TeaserConfig  `mapstructure:"teasers"`
}

var defaults = map[string]any{
	"scholar.author_id":                "",
	"scholar.source":                   string(types.SourceGoogleScholar),
	"scholar.data_dir":                 "data",
	"scholar.cache_path":               filepath.Join(".cache", "scholar.db"),
	"scholar.cache_max_age":            30 * 24 * time.Hour,
	"scholar.request_interval":         2 * time.Second,
	"scholar.timeout":                  60 * time.Second,
	"scholar.user_agent":               DefaultUserAgent,
	"scholar.export_yaml":              "",
	"scholar.export_csl":               "",
	"scholar.dry_run":                  false,
	"scholar.semantic_scholar_api_key": "",
	"scholar.scholar_cookie":           "",
	"teasers.details_path":             filepath.Join("data", "featured_details.json"),
	"teasers.teasers_dir":              filepath.Join("assets", "images", "teasers"),
	"teasers.web_prefix":               "assets/images/teasers",
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file. An explicit path must exist; without one,
// site-tools.yaml is searched in the working directory and in
// ~/.config/site-tools, and its absence is not an error.
func Read(v *viper.Viper, path string, w io.Writer) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(w, "Using config file:", v.ConfigFileUsed())
	return nil
}

// BindFlags binds config keys to the named flags so a flag set on the
// command line overrides the file and environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("binding %s: no flag --%s", key, name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

// Decode unmarshals every resolved setting.
func Decode(v *viper.Viper) (File, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, fmt.Errorf("decoding config: %w", err)
	}
	return f, nil
}

// Scholar returns the scholar settings with credentials filled from s
// where the config leaves them empty.
func Scholar(v *viper.Viper, s secrets.Secrets) (types.ScholarConfig, error) {
	f, err := Decode(v)
	if err != nil {
		return types.ScholarConfig{}, err
	}
	cfg := f.Scholar
	cfg.SemanticScholarAPIKey = s.Get(secrets.SemanticScholarAPIKey, cfg.SemanticScholarAPIKey)
	cfg.ScholarCookie = s.Get(secrets.ScholarCookie, cfg.ScholarCookie)
	return cfg, nil
}

// Teasers returns the teaser settings.
func Teasers(v *viper.Viper) (types.TeaserConfig, error) {
	f, err := Decode(v)
	if err != nil {
		return types.TeaserConfig{}, err
	}
	return f.Teasers, nil
}
