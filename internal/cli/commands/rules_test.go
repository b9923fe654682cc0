package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lookmlint/pkg/style"
)

func TestRulesCommandListsCatalogJSON(t *testing.T) {
	cmd := NewRulesCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--format", "json"})

	require.NoError(t, cmd.Execute())

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, style.Default().Len(), result.Count)
	assert.Len(t, result.Rules, result.Count)
}

func TestRulesCommandShowsSingleRule(t *testing.T) {
	cmd := NewRulesCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"M100", "--format", "markdown"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "M100")
	assert.Contains(t, out.String(), "count_")
}

func TestRulesCommandUnknownCode(t *testing.T) {
	cmd := NewRulesCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Z999"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommandKindFilter(t *testing.T) {
	cmd := NewRulesCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--kind", "OrderRule", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.NotEmpty(t, result.Rules)
	for _, rule := range result.Rules {
		assert.Equal(t, "OrderRule", rule.Kind)
	}
}
