package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

func codes(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Code)
	}
	return out
}

func TestPatternMatchRuleOnPairValue(t *testing.T) {
	rule, err := NewPatternMatchRule(Meta{
		Title:  "sql references TABLE",
		Code:   "T100",
		Select: []string{"measure.sql"},
	}, `\$\{TABLE\}`, true)
	require.NoError(t, err)

	tree, err := lkml.Parse(`
view: orders {
  measure: count_orders {
    type: count
    sql: ${TABLE}.id ;;
  }
}`)
	require.NoError(t, err)

	violations, err := NewChecker([]Rule{rule}).Run(tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "T100", violations[0].Code)
	assert.Equal(t, 5, violations[0].Line)
}

func TestPatternMatchRuleOnBlockName(t *testing.T) {
	rule, err := NewPatternMatchRule(Meta{
		Title:  "count measure named count_",
		Code:   "T101",
		Select: []string{"measure"},
	}, `^count_`, false)
	require.NoError(t, err)

	tree, err := lkml.Parse(`
view: orders {
  measure: count_orders {
    type: count
  }
  measure: num_orders {
    type: count
  }
}`)
	require.NoError(t, err)

	violations, err := NewChecker([]Rule{rule}).Run(tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 6, violations[0].Line)
}

func TestPatternMatchRuleInvalidRegex(t *testing.T) {
	_, err := NewPatternMatchRule(Meta{Code: "T102", Select: []string{"view"}}, `(unclosed`, false)
	assert.Error(t, err)
}

func TestParameterRuleWithFilters(t *testing.T) {
	// Non-hidden dimensions must carry a description.
	rule := NewParameterRule(Meta{
		Title:   "dimension missing description",
		Code:    "T110",
		Select:  []string{"dimension"},
		Filters: []Predicate{BlockHasParameter("hidden", "yes", true)},
	}, BlockHasParameter("description", "", false), false)

	tree, err := lkml.Parse(`
view: orders {
  dimension: id {
    hidden: yes
  }
  dimension: status {
    description: "Order lifecycle state"
  }
  dimension: amount {
    type: number
  }
}`)
	require.NoError(t, err)

	violations, err := NewChecker([]Rule{rule}).Run(tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 9, violations[0].Line)
}

func TestUniquenessRuleFlagsSecondOccurrence(t *testing.T) {
	rule := NewUniquenessRule(Meta{
		Title:  "duplicate table reference",
		Code:   "T120",
		Select: []string{"view"},
	}, "sql_table_name")

	tree, err := lkml.Parse(`
view: orders {
  sql_table_name: analytics.orders ;;
}
view: orders_copy {
  sql_table_name: analytics.orders ;;
}
view: users {
  sql_table_name: analytics.users ;;
}
view: settings {
  extends: [orders]
}`)
	require.NoError(t, err)

	violations, err := NewChecker([]Rule{rule}).Run(tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 5, violations[0].Line)
}

func TestVacuousPassesLeaveNoViolations(t *testing.T) {
	// A pattern rule selected onto a list node has nothing to extract.
	rule, err := NewPatternMatchRule(Meta{
		Title:  "fields list",
		Code:   "T130",
		Select: []string{"explore.fields"},
	}, `^ALL_FIELDS\*$`, false)
	require.NoError(t, err)

	tree, err := lkml.Parse(`
explore: orders {
  fields: [orders.id, orders.status]
}`)
	require.NoError(t, err)

	violations, err := NewChecker([]Rule{rule}).Run(tree)
	require.NoError(t, err)
	assert.Empty(t, violations)
}
