package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRuleUnknownType(t *testing.T) {
	def, err := DecodeRuleDef(map[string]any{
		"type":   "NotARuleType",
		"title":  "x",
		"code":   "X100",
		"select": "view",
	})
	require.NoError(t, err)

	_, err = BuildRule(def)
	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "NotARuleType", invalid.Name)
	assert.Contains(t, err.Error(), "not a valid rule type")
}

func TestBuildRuleUnknownFunction(t *testing.T) {
	def, err := DecodeRuleDef(map[string]any{
		"type":   "PatternMatchRule",
		"title":  "x",
		"code":   "X100",
		"select": "view",
		"regex":  "^x",
		"filters": []map[string]any{
			{"function": "not_a_function"},
		},
	})
	require.NoError(t, err)

	_, err = BuildRule(def)
	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "not_a_function", invalid.Name)
	assert.Contains(t, err.Error(), "not a valid function")
}

func TestBuildRuleMissingRegex(t *testing.T) {
	def, err := DecodeRuleDef(map[string]any{
		"type":   "PatternMatchRule",
		"title":  "x",
		"code":   "X100",
		"select": "view",
	})
	require.NoError(t, err)

	_, err = BuildRule(def)
	var invalid *InvalidRuleError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "regex", invalid.Field)
	assert.Contains(t, err.Error(), `"regex"`)
}

func TestBuildRuleMissingParameterName(t *testing.T) {
	def, err := DecodeRuleDef(map[string]any{
		"type":   "UniquenessRule",
		"title":  "x",
		"code":   "X100",
		"select": "view",
	})
	require.NoError(t, err)

	_, err = BuildRule(def)
	var invalid *InvalidRuleError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "parameter_name", invalid.Field)
}

func TestBuildRuleOrderDisciplineExclusive(t *testing.T) {
	def, err := DecodeRuleDef(map[string]any{
		"type":         "OrderRule",
		"title":        "x",
		"code":         "X100",
		"select":       "dimension",
		"alphabetical": true,
		"is_first":     true,
	})
	require.NoError(t, err)

	_, err = BuildRule(def)
	var invalid *InvalidRuleError
	assert.ErrorAs(t, err, &invalid)
}

func TestDecodeRuleDefSelectAcceptsStringOrList(t *testing.T) {
	fromString, err := DecodeRuleDef(map[string]any{
		"type":   "PatternMatchRule",
		"select": "dimension,measure",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dimension", "measure"}, fromString.Select)

	fromList, err := DecodeRuleDef(map[string]any{
		"type":   "PatternMatchRule",
		"select": []string{"dimension", "measure"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dimension", "measure"}, fromList.Select)
}

func TestBuildRuleCompleteRecord(t *testing.T) {
	def, err := DecodeRuleDef(map[string]any{
		"type":      "PatternMatchRule",
		"title":     "Count measures start with count_",
		"code":      "W100",
		"rationale": "Names should state the aggregation.",
		"select":    "measure",
		"regex":     "^count_",
		"filters": []map[string]any{
			{
				"function":       "block_has_valid_parameter",
				"parameter_name": "type",
				"value":          "count",
			},
		},
	})
	require.NoError(t, err)

	rule, err := BuildRule(def)
	require.NoError(t, err)
	assert.Equal(t, "W100", rule.Code())
	assert.Equal(t, "PatternMatchRule", rule.RuleKind())

	violations, err := Check(`
view: orders {
  measure: num_orders {
    type: count
  }
  measure: avg_amount {
    type: average
    sql: ${orders.amount} ;;
  }
}`, WithCatalog(mustCatalog(t, rule)))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 3, violations[0].Line)
}

func mustCatalog(t *testing.T, rules ...Rule) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(rules...)
	require.NoError(t, err)
	return catalog
}

func TestLoadRulesFromYAML(t *testing.T) {
	source := `
rules:
  - type: PatternMatchRule
    title: View names use snake_case
    code: Y100
    select: view
    regex: "^[a-z][a-z0-9_]*$"
  - type: UniquenessRule
    title: Duplicate table reference
    code: Y110
    select: view
    parameter_name: sql_table_name
`
	rules, err := LoadRules(strings.NewReader(source))
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Y100", rules[0].Code())
	assert.Equal(t, "UniquenessRule", rules[1].RuleKind())
}

func TestLoadRulesInvalidRecord(t *testing.T) {
	source := `
rules:
  - type: OrderRule
    title: broken
    code: Y200
    select: dimension
`
	_, err := LoadRules(strings.NewReader(source))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom rule 1")
}
