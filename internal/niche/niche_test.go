package niche

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ngoYAML = `
id: ngo
name: NGO Jobs
keywords: [charity, ngo]
serp_queries:
  - "charity project manager jobs UK"
ats_boards:
  greenhouse: [oxfam]
  lever: [sierraclub]
api_sources:
  - type: reliefweb
    filters:
      theme: [Health, Education]
tags:
  - tag: grant-management
    keywords: [grant manager, grant writing]
  - tag: fundraising
    keywords: [fundraising, donor]
`

const climateYAML = `
id: climate
name: Climate Jobs
ats_boards:
  ashby: [rmi]
`

func writeNiches(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ngo.yml"), []byte(ngoYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "climate.yml"), []byte(climateYAML), 0o644))
	return dir
}

func TestLoadDir(t *testing.T) {
	r, err := LoadDir(writeNiches(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"climate", "ngo"}, r.IDs())

	ngo, err := r.Get("ngo")
	require.NoError(t, err)
	assert.Equal(t, "NGO Jobs", ngo.Name)
	assert.Equal(t, []string{"oxfam"}, ngo.ATSBoards.Greenhouse)
	require.Len(t, ngo.APISources, 1)
	assert.Equal(t, "reliefweb", ngo.APISources[0].Type)
	assert.Equal(t, []string{"Health", "Education"}, ngo.APISources[0].Filters["theme"])
	require.Len(t, ngo.Tags, 2)
	assert.Equal(t, "grant-management", ngo.Tags[0].Tag)
}

func TestGetUnknownNicheFails(t *testing.T) {
	r, err := LoadDir(writeNiches(t))
	require.NoError(t, err)

	_, err = r.Get("crypto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown niche")
	assert.Contains(t, err.Error(), "climate, ngo")
}

func TestGetEmptyIDUsesDefault(t *testing.T) {
	r, err := LoadDir(writeNiches(t))
	require.NoError(t, err)

	cfg, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, "ngo", cfg.ID)
}

func TestLoadDirMissingID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte("name: nameless"), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
}
