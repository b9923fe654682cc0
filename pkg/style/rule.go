package style

import (
	"regexp"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

// Violation records a node failing an applicable rule. Violations are
// collected in traversal order and never mutated.
type Violation struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// Rule is the contract shared by all rule kinds. Rules are immutable after
// construction; per-run state lives in the RunContext passed to Evaluate.
type Rule interface {
	// Code returns the unique identifier, stable across runs, e.g. "M100".
	Code() string

	// Title returns the human-readable description of the violation.
	Title() string

	// Rationale explains why the rule exists.
	Rationale() string

	// RuleKind returns the kind discriminator used by declarative rule
	// records, e.g. "PatternMatchRule".
	RuleKind() string

	// Selectors returns the lineage-suffix selector strings. A rule is
	// selected for a node when the lineage ends with any of them.
	Selectors() []string

	// AppliesTo reports whether every filter accepts the node. Called only
	// for nodes the selectors matched.
	AppliesTo(node lkml.Node) bool

	// Evaluate reports whether the node follows the rule, updating the run
	// context. A false result becomes a violation. Errors abort the walk.
	Evaluate(node lkml.Node, run *RunContext) (bool, error)
}

// Meta holds the fields common to every rule kind.
type Meta struct {
	Title     string
	Code      string
	Rationale string
	Select    []string
	Filters   []Predicate
}

// ruleMeta implements the shared metadata accessors.
type ruleMeta struct {
	title     string
	code      string
	rationale string
	selectors []string
	filters   []Predicate
}

func newRuleMeta(meta Meta) ruleMeta {
	return ruleMeta{
		title:     meta.Title,
		code:      meta.Code,
		rationale: meta.Rationale,
		selectors: meta.Select,
		filters:   meta.Filters,
	}
}

func (m *ruleMeta) Code() string        { return m.code }
func (m *ruleMeta) Title() string       { return m.title }
func (m *ruleMeta) Rationale() string   { return m.rationale }
func (m *ruleMeta) Selectors() []string { return m.selectors }

func (m *ruleMeta) AppliesTo(node lkml.Node) bool {
	for _, filter := range m.filters {
		if !filter(node) {
			return false
		}
	}
	return true
}

// PatternMatchRule checks a node's extracted text against a regular
// expression: a pair's value, or a block's name. Other node kinds pass
// vacuously, having no extractable text.
type PatternMatchRule struct {
	ruleMeta
	pattern  *regexp.Regexp
	negative bool
}

// NewPatternMatchRule compiles expr and returns the rule. negative inverts
// the match result.
func NewPatternMatchRule(meta Meta, expr string, negative bool) (*PatternMatchRule, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &PatternMatchRule{ruleMeta: newRuleMeta(meta), pattern: pattern, negative: negative}, nil
}

func (r *PatternMatchRule) RuleKind() string { return "PatternMatchRule" }

func (r *PatternMatchRule) Evaluate(node lkml.Node, _ *RunContext) (bool, error) {
	var text string
	switch node.Kind() {
	case lkml.KindPair:
		text = node.Value()
	case lkml.KindBlock:
		text = node.Name()
	default:
		return true, nil
	}

	matched := r.pattern.MatchString(text)
	if r.negative {
		return !matched, nil
	}
	return matched, nil
}

// ParameterRule checks a node against a criteria predicate, typically over
// the node's child parameters. negative inverts the result.
type ParameterRule struct {
	ruleMeta
	criteria Predicate
	negative bool
}

// NewParameterRule returns a rule that passes when criteria holds for the
// node (or does not hold, when negative).
func NewParameterRule(meta Meta, criteria Predicate, negative bool) *ParameterRule {
	return &ParameterRule{ruleMeta: newRuleMeta(meta), criteria: criteria, negative: negative}
}

func (r *ParameterRule) RuleKind() string { return "ParameterRule" }

func (r *ParameterRule) Evaluate(node lkml.Node, _ *RunContext) (bool, error) {
	ok := r.criteria(node)
	if r.negative {
		return !ok, nil
	}
	return ok, nil
}
