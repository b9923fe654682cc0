package style

import (
	"strings"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

// Checker runs a resolved rule set against parsed trees. A Checker holds
// no per-run state and may be shared across goroutines; each Run gets its
// own RunContext.
type Checker struct {
	rules []Rule
}

// NewChecker returns a checker over the given resolved rule set.
func NewChecker(rules []Rule) *Checker {
	return &Checker{rules: rules}
}

// Run walks the tree once, depth-first in document order, and returns the
// violations in traversal order. Typed nodes (blocks, pairs, lists) are
// evaluated against every rule whose selectors match the current lineage;
// document, container and token nodes are traversed but never evaluated.
func (c *Checker) Run(tree lkml.Node) ([]Violation, error) {
	w := &walker{rules: c.rules, run: NewRunContext()}
	if err := w.visit(tree); err != nil {
		return nil, err
	}
	return w.violations, nil
}

// walker carries the traversal state of a single run.
type walker struct {
	rules      []Rule
	lineage    []string
	run        *RunContext
	violations []Violation
}

func (w *walker) visit(node lkml.Node) error {
	if t := node.Type(); t != "" {
		w.lineage = append(w.lineage, t)
		defer func() { w.lineage = w.lineage[:len(w.lineage)-1] }()
	}

	switch node.Kind() {
	case lkml.KindBlock, lkml.KindPair, lkml.KindList:
		path := strings.Join(w.lineage, ".")
		for _, rule := range w.rules {
			if !selected(path, rule.Selectors()) {
				continue
			}
			if !rule.AppliesTo(node) {
				continue
			}
			ok, err := rule.Evaluate(node, w.run)
			if err != nil {
				return err
			}
			if !ok {
				w.violations = append(w.violations, Violation{
					Code:  rule.Code(),
					Title: rule.Title(),
					Line:  node.Line(),
				})
			}
		}
	}

	for _, child := range node.Children() {
		if err := w.visit(child); err != nil {
			return err
		}
	}
	return nil
}

// selected reports whether the lineage path ends with any selector.
// Suffix match, not full match: "measure.sql" selects a sql pair under a
// measure at any depth.
func selected(path string, selectors []string) bool {
	for _, s := range selectors {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
