package style

import "sync"

// Catalog is an immutable, ordered collection of rules with unique codes.
type Catalog struct {
	rules  []Rule
	byCode map[string]Rule
}

// NewCatalog builds a catalog from rules in the given order. A duplicate
// code is a fatal configuration error raised here, never during a check.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	c := &Catalog{
		rules:  make([]Rule, 0, len(rules)),
		byCode: make(map[string]Rule, len(rules)),
	}
	for _, r := range rules {
		if _, ok := c.byCode[r.Code()]; ok {
			return nil, &DuplicateCodeError{Code: r.Code()}
		}
		c.byCode[r.Code()] = r
		c.rules = append(c.rules, r)
	}
	return c, nil
}

// Rules returns the catalog's rules in stable order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Get returns the rule with the given code.
func (c *Catalog) Get(code string) (Rule, bool) {
	r, ok := c.byCode[code]
	return r, ok
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int { return len(c.rules) }

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(builtinRules()...)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the built-in rule catalog. The catalog is immutable and
// shared; callers wanting a different rule set resolve it per check.
func Default() *Catalog {
	return defaultCatalog()
}

func mustPattern(meta Meta, expr string, negative bool) *PatternMatchRule {
	r, err := NewPatternMatchRule(meta, expr, negative)
	if err != nil {
		panic(err)
	}
	return r
}

func mustOrder(meta Meta, mode OrderMode, order []string, useKey bool) *OrderRule {
	r, err := NewOrderRule(meta, mode, order, useKey)
	if err != nil {
		panic(err)
	}
	return r
}

func builtinRules() []Rule {
	return []Rule{
		mustPattern(Meta{
			Title:     "Don't include all views",
			Code:      "V100",
			Rationale: "Wildcard includes pull every view into the model, slowing validation and hiding real dependencies. Include the views the model needs.",
			Select:    []string{"include"},
		}, `^\*\.view`, true),

		NewParameterRule(Meta{
			Title:     "View must define at least one primary key dimension",
			Code:      "V110",
			Rationale: "Without a primary key, symmetric aggregates and joins can silently produce incorrect results.",
			Select:    []string{"view"},
		}, NodeHasAtLeastOneValidChild(BlockHasParameter("primary_key", "yes", false)), false),

		NewUniquenessRule(Meta{
			Title:     "Multiple views reference the same table",
			Code:      "V111",
			Rationale: "Two views over one table duplicate field definitions and drift apart. Extend or refine a single view instead.",
			Select:    []string{"view"},
		}, "sql_table_name"),

		mustPattern(Meta{
			Title:     "Yesno dimension doesn't start with 'is_' or 'has_'",
			Code:      "D100",
			Rationale: "Boolean dimensions read naturally in Explores when their names ask a question.",
			Select:    []string{"dimension"},
			Filters:   []Predicate{BlockHasParameter("type", "yesno", false)},
		}, `^(?:is|has)_`, false),

		mustPattern(Meta{
			Title:     "Unnecessary type specification for string dimension",
			Code:      "D101",
			Rationale: "string is the default dimension type, so declaring it adds noise.",
			Select:    []string{"dimension.type"},
		}, `^string$`, true),

		NewParameterRule(Meta{
			Title:     "Primary key dimension not hidden",
			Code:      "D102",
			Rationale: "Surrogate keys rarely mean anything to Explore users; hide them to keep field pickers clean.",
			Select:    []string{"dimension"},
			Filters:   []Predicate{BlockHasParameter("primary_key", "yes", false)},
		}, BlockHasParameter("hidden", "yes", false), false),

		mustOrder(Meta{
			Title:     "Dimension not in alphabetical order",
			Code:      "D106",
			Rationale: "Alphabetized dimensions are easier to scan and keep diffs small when fields are added.",
			Select:    []string{"dimension"},
		}, OrderAlphabetical, nil, false),

		mustOrder(Meta{
			Title:     "Primary key dimension not declared first",
			Code:      "D107",
			Rationale: "Declaring the primary key before other dimensions makes the view's grain obvious.",
			Select:    []string{"dimension"},
			Filters:   []Predicate{BlockHasParameter("primary_key", "yes", false)},
		}, OrderFirst, nil, false),

		NewParameterRule(Meta{
			Title:     "Non-hidden dimension missing description",
			Code:      "D110",
			Rationale: "Descriptions surface in Explores and data dictionaries; user-facing fields should carry one.",
			Select:    []string{"dimension"},
			Filters:   []Predicate{BlockHasParameter("hidden", "yes", true)},
		}, BlockHasParameter("description", "", false), false),

		mustPattern(Meta{
			Title:     "Dimension group name ends with redundant word",
			Code:      "D200",
			Rationale: "Dimension groups expand with timeframe suffixes, so created_at_date renders as created_at_date_date.",
			Select:    []string{"dimension_group"},
		}, `_(?:at|date|time)$`, true),

		mustPattern(Meta{
			Title:     "Name of count measure doesn't start with 'count_'",
			Code:      "M100",
			Rationale: "Stating the aggregation in the name tells other developers and Explore users how the measure is calculated.",
			Select:    []string{"measure"},
			Filters:   []Predicate{BlockHasParameter("type", "count", false)},
		}, `^count_`, false),

		mustPattern(Meta{
			Title:     "Name of sum measure doesn't start with 'total_'",
			Code:      "M101",
			Rationale: "Stating the aggregation in the name tells other developers and Explore users how the measure is calculated.",
			Select:    []string{"measure"},
			Filters:   []Predicate{BlockHasParameter("type", "sum", false)},
		}, `^total_`, false),

		mustPattern(Meta{
			Title:     "Name of average measure doesn't start with 'avg_'",
			Code:      "M102",
			Rationale: "Stating the aggregation in the name tells other developers and Explore users how the measure is calculated.",
			Select:    []string{"measure"},
			Filters:   []Predicate{BlockHasParameter("type", "average", false)},
		}, `^(?:avg|average)_`, false),

		mustPattern(Meta{
			Title:     "Measure references table column directly",
			Code:      "M110",
			Rationale: "Measures should aggregate dimensions, not raw columns, so renames and logic changes happen in one place.",
			Select:    []string{"measure.sql"},
		}, `\$\{TABLE\}`, true),

		NewParameterRule(Meta{
			Title:     "Explore doesn't declare fields",
			Code:      "E100",
			Rationale: "An explicit fields list keeps the Explore's surface intentional as the underlying views grow.",
			Select:    []string{"explore"},
		}, BlockHasParameter("fields", "", false), false),

		mustPattern(Meta{
			Title:     "Label is not title-cased",
			Code:      "G100",
			Rationale: "Labels render in the UI; consistent casing keeps field pickers tidy.",
			Select:    []string{"label"},
		}, `^(?:[A-Z][^\s]*\s?)+$`, false),
	}
}
