package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

func TestLineageSuffixSelection(t *testing.T) {
	// The same selector must not match a sql pair under a dimension.
	rule, err := NewPatternMatchRule(Meta{
		Title:  "measure sql references TABLE",
		Code:   "C100",
		Select: []string{"measure.sql"},
	}, `\$\{TABLE\}`, true)
	require.NoError(t, err)

	tree, err := lkml.Parse(`
view: orders {
  dimension: amount {
    sql: ${TABLE}.amount ;;
  }
  measure: total_amount {
    type: sum
    sql: ${TABLE}.amount ;;
  }
}`)
	require.NoError(t, err)

	violations, err := NewChecker([]Rule{rule}).Run(tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 8, violations[0].Line)
}

func TestCheckerIsDeterministic(t *testing.T) {
	source := `
view: orders {
  dimension: zeta {}
  dimension: alpha {
    type: yesno
  }
  measure: orders {
    type: count
  }
}`
	first, err := Check(source)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	for i := 0; i < 5; i++ {
		again, err := Check(source)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCheckWithDefaultCatalog(t *testing.T) {
	violations, err := Check(`
view: orders {
  measure: num_orders {
    type: count
  }
}`, WithSelect("M100"))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "M100", violations[0].Code)
	assert.Equal(t, 3, violations[0].Line)
}

func TestCheckCompliantMeasurePasses(t *testing.T) {
	violations, err := Check(`
view: users {
  measure: count_users {
    type: count
  }
}`, WithSelect("M100"))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckIsolatesStateAcrossSources(t *testing.T) {
	// Both sources reference the same table, but each check runs with a
	// fresh context, so neither reports a duplicate.
	source := `
view: orders {
  sql_table_name: analytics.orders ;;
}`
	for i := 0; i < 2; i++ {
		violations, err := Check(source, WithSelect("V111"))
		require.NoError(t, err)
		assert.Empty(t, violations)
	}
}

func TestCheckParseErrorSurfaces(t *testing.T) {
	_, err := Check("view: broken {")
	require.Error(t, err)
	var parseErr *lkml.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestCheckMultipleRulesOnOneNode(t *testing.T) {
	violations, err := Check(`
view: orders {
  dimension: flag {
    type: yesno
  }
}`, WithSelect("D100", "D106", "D110"))
	require.NoError(t, err)

	// One dimension, two failing rules; traversal order keeps them stable.
	assert.Equal(t, []string{"D100", "D110"}, codes(violations))
}

func TestDefaultCatalogCodesAreUnique(t *testing.T) {
	catalog := Default()
	seen := make(map[string]bool)
	for _, r := range catalog.Rules() {
		assert.False(t, seen[r.Code()], "duplicate code %s", r.Code())
		seen[r.Code()] = true
	}
	assert.Greater(t, catalog.Len(), 10)
}
