// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamolchanov/pamolchanov.github.io/internal/secrets"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site-tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	v := New()

	sc, err := Scholar(v, secrets.Secrets{})
	require.NoError(t, err)
	assert.Equal(t, types.SourceGoogleScholar, sc.Source)
	assert.Equal(t, "data", sc.DataDir)
	assert.Equal(t, filepath.Join(".cache", "scholar.db"), sc.CachePath)
	assert.Equal(t, 2*time.Second, sc.RequestInterval)
	assert.Equal(t, 60*time.Second, sc.Timeout)
	assert.Equal(t, DefaultUserAgent, sc.UserAgent)
	assert.Empty(t, sc.AuthorID)

	tc, err := Teasers(v)
	require.NoError(t, err)
	assert.Equal(t, types.TeaserConfig{
		DetailsPath: filepath.Join("data", "featured_details.json"),
		TeasersDir:  filepath.Join("assets", "images", "teasers"),
		WebPrefix:   "assets/images/teasers",
	}, tc)
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `
scholar:
  author_id: ABC123
  source: semantic_scholar
  request_interval: 5s
teasers:
  web_prefix: /img/teasers
`)
	v := New()
	var w bytes.Buffer
	require.NoError(t, Read(v, path, &w))
	assert.Contains(t, w.String(), "Using config file:")

	sc, err := Scholar(v, secrets.Secrets{})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", sc.AuthorID)
	assert.Equal(t, types.SourceSemanticScholar, sc.Source)
	assert.Equal(t, 5*time.Second, sc.RequestInterval)
	assert.Equal(t, "data", sc.DataDir, "unset keys keep defaults")

	tc, err := Teasers(v)
	require.NoError(t, err)
	assert.Equal(t, "/img/teasers", tc.WebPrefix)
}

func TestReadMissingExplicitFile(t *testing.T) {
	err := Read(New(), filepath.Join(t.TempDir(), "nope.yaml"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, "scholar:\n  author_id: FROM_FILE\n  data_dir: file-data\n  dry_run: false\n")
	t.Setenv("SITE_TOOLS_SCHOLAR_DATA_DIR", "env-data")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("author", "", "")
	flags.Bool("dry-run", false, "")
	require.NoError(t, flags.Parse([]string{"--author", "FROM_FLAG"}))

	v := New()
	require.NoError(t, BindFlags(v, flags, map[string]string{
		"scholar.author_id": "author",
		"scholar.dry_run":   "dry-run",
	}))
	require.NoError(t, Read(v, path, &bytes.Buffer{}))

	sc, err := Scholar(v, secrets.Secrets{})
	require.NoError(t, err)
	assert.Equal(t, "FROM_FLAG", sc.AuthorID, "flag beats file")
	assert.Equal(t, "env-data", sc.DataDir, "env beats file")
	assert.False(t, sc.DryRun, "unset flag does not override")
}

func TestBindFlagsUnknown(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(New(), flags, map[string]string{"scholar.author_id": "author"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no flag --author")
}

func TestScholarSecrets(t *testing.T) {
	s := secrets.Secrets{
		secrets.SemanticScholarAPIKey: "file-key",
		secrets.ScholarCookie:         "file-cookie",
	}

	sc, err := Scholar(New(), s)
	require.NoError(t, err)
	assert.Equal(t, "file-key", sc.SemanticScholarAPIKey)
	assert.Equal(t, "file-cookie", sc.ScholarCookie)

	t.Setenv("SITE_TOOLS_SCHOLAR_SCHOLAR_COOKIE", "env-cookie")
	sc, err = Scholar(New(), s)
	require.NoError(t, err)
	assert.Equal(t, "env-cookie", sc.ScholarCookie, "configured value beats the secrets file")
}
