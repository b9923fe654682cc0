package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lookmlint/internal/cli/config"
	"github.com/leapstack-labs/lookmlint/internal/cli/output"
)

func TestDiscoverFiles(t *testing.T) {
	files, err := discoverFiles([]string{"testdata"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "orders.view.lkml"),
		filepath.Join("testdata", "users.view.lkml"),
	}, files)
}

func TestDiscoverFilesDeduplicates(t *testing.T) {
	path := filepath.Join("testdata", "orders.view.lkml")
	files, err := discoverFiles([]string{path, "testdata"})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverFilesMissingPath(t *testing.T) {
	_, err := discoverFiles([]string{"testdata/nope"})
	assert.Error(t, err)
}

func TestCheckFilesFlagsViolations(t *testing.T) {
	files, err := discoverFiles([]string{"testdata"})
	require.NoError(t, err)

	results, err := checkFiles(files, nil, 2)
	require.NoError(t, err)

	// orders.view.lkml has a count measure not named count_*; users is clean.
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join("testdata", "orders.view.lkml"), results[0].Path)
	require.Len(t, results[0].Violations, 1)
	assert.Equal(t, "M100", results[0].Violations[0].Code)
	assert.Equal(t, 16, results[0].Violations[0].Line)
}

func TestBuildCheckOptionsMergesConfigAndFlags(t *testing.T) {
	cfg := &config.Config{Select: []string{"M100"}, Ignore: []string{"D106"}}
	opts := &CheckOptions{Select: []string{"D100"}, Ignore: []string{"D110"}}

	styleOpts, err := buildCheckOptions(cfg, opts)
	require.NoError(t, err)
	assert.Len(t, styleOpts, 2)
}

func TestBuildCheckOptionsInvalidCustomRule(t *testing.T) {
	cfg := &config.Config{
		CustomRules: []map[string]any{
			{"type": "NotARuleType", "title": "x", "code": "X1", "select": "view"},
		},
	}
	_, err := buildCheckOptions(cfg, &CheckOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid rule type")
}

func TestBuildCheckOptionsMissingRulesFile(t *testing.T) {
	_, err := buildCheckOptions(&config.Config{}, &CheckOptions{Rules: "testdata/absent.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening rules file")
}

func TestRenderCheckResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeJSON)

	files, err := discoverFiles([]string{"testdata"})
	require.NoError(t, err)
	results, err := checkFiles(files, nil, 1)
	require.NoError(t, err)

	hasIssues := renderCheckResults(r, results, len(files))
	assert.True(t, hasIssues)

	var out output.CheckOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.Summary.FilesChecked)
	assert.Equal(t, 1, out.Summary.FilesFlagged)
	assert.Equal(t, 1, out.Summary.TotalIssues)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "M100", out.Files[0].Diagnostics[0].Code)
}

func TestRenderCheckResultsCleanRun(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeMarkdown)

	hasIssues := renderCheckResults(r, nil, 3)
	assert.False(t, hasIssues)
	assert.Contains(t, buf.String(), "No style violations found in 3 files")
}

func TestJobLimit(t *testing.T) {
	assert.Equal(t, 4, jobLimit(&config.Config{Jobs: 4}, &CheckOptions{}))
	assert.Equal(t, 2, jobLimit(&config.Config{Jobs: 4}, &CheckOptions{Jobs: 2}))
	assert.Positive(t, jobLimit(&config.Config{}, &CheckOptions{}))
}
