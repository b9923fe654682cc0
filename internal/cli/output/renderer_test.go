package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveModeExplicit(t *testing.T) {
	var buf bytes.Buffer
	for _, mode := range []Mode{ModeText, ModeMarkdown, ModeJSON} {
		r := NewRenderer(&buf, &buf, mode)
		assert.Equal(t, mode, r.EffectiveMode())
	}
}

func TestEffectiveModeAutoFallsBackToMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	// A bytes.Buffer is not a terminal.
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestEmptyModeDefaultsToAuto(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, "")
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestJSONWritesIndented(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	require.NoError(t, r.JSON(CheckSummary{FilesChecked: 2, TotalIssues: 1}))

	var summary CheckSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, 2, summary.FilesChecked)
	assert.Contains(t, buf.String(), "\n  ")
}

func TestSuccessSuppressedInJSONMode(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)
	r.Success("done")
	assert.Empty(t, buf.String())

	r = NewRenderer(&buf, &buf, ModeText)
	r.Success("done")
	assert.Contains(t, buf.String(), "done")
}

func TestStylesArePlainOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)
	assert.Equal(t, "hello", r.Styles().Error.Render("hello"))
}
