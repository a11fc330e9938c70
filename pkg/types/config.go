// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the scholar sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceKind selects the backend the scholar command fetches from.
type SourceKind string

const (
	SourceGoogleScholar   SourceKind = "google_scholar"
	SourceSemanticScholar SourceKind = "semantic_scholar"
	SourceFile            SourceKind = "file"
)

// ScholarConfig holds settings for the update-scholar command.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// AuthorID identifies the author profile on the selected source
	// (a Google Scholar user id, a Semantic Scholar author id, or a file
	// path for the file source).
	AuthorID string `json:"author_id" yaml:"author_id" mapstructure:"author_id"`

	// Source selects the backend (default google_scholar).
	Source SourceKind `json:"source" yaml:"source" mapstructure:"source"`

	// DataDir is the site's data directory holding publications.json.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// CachePath is the SQLite file caching expanded records. Empty disables
	// the cache.
	CachePath string `json:"cache_path" yaml:"cache_path" mapstructure:"cache_path"`

	// CacheMaxAge bounds how old a cached record may be before it is
	// fetched again. Zero means cached records never expire.
	CacheMaxAge time.Duration `json:"cache_max_age" yaml:"cache_max_age" mapstructure:"cache_max_age"`

	// RequestInterval paces requests to the Google Scholar site.
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval" mapstructure:"request_interval"`

	// ExportYAML, when set, receives a YAML copy of the merged list.
	ExportYAML string `json:"export_yaml,omitempty" yaml:"export_yaml,omitempty" mapstructure:"export_yaml"`

	// ExportCSL, when set, receives the merged list as CSL-YAML.
	ExportCSL string `json:"export_csl,omitempty" yaml:"export_csl,omitempty" mapstructure:"export_csl"`

	// DryRun reports the merge without writing any file.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`

	// SemanticScholarAPIKey is an optional key for higher rate limits.
	SemanticScholarAPIKey string `json:"-" yaml:"-" mapstructure:"semantic_scholar_api_key"`

	// ScholarCookie is an optional Cookie header for Google Scholar, used
	// when the site starts answering with CAPTCHA pages.
	ScholarCookie string `json:"-" yaml:"-" mapstructure:"scholar_cookie"`
}

// PublicationsFile is the file name of the publication list in DataDir.
const PublicationsFile = "publications.json"

// TeaserConfig holds settings for the update-teasers command.
type TeaserConfig struct {
	// DetailsPath is the featured details JSON file.
	DetailsPath string `json:"details_path" yaml:"details_path" mapstructure:"details_path"`

	// TeasersDir is the directory scanned for teaser images.
	TeasersDir string `json:"teasers_dir" yaml:"teasers_dir" mapstructure:"teasers_dir"`

	// WebPrefix is the site-relative directory written into image pointers.
	WebPrefix string `json:"web_prefix" yaml:"web_prefix" mapstructure:"web_prefix"`
}
