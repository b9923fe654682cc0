package style

import "github.com/leapstack-labs/lookmlint/pkg/lkml"

// UniquenessRule extracts the value of a named child parameter from a
// block and fails when that value was already recorded earlier in the
// traversal. Blocks without the parameter pass vacuously. The canonical
// use is flagging a second view declared over the same table.
type UniquenessRule struct {
	ruleMeta
	parameter string
}

// NewUniquenessRule returns a rule comparing the named child parameter's
// value across all selected blocks of one run.
func NewUniquenessRule(meta Meta, parameter string) *UniquenessRule {
	return &UniquenessRule{ruleMeta: newRuleMeta(meta), parameter: parameter}
}

func (r *UniquenessRule) RuleKind() string { return "UniquenessRule" }

func (r *UniquenessRule) Evaluate(node lkml.Node, run *RunContext) (bool, error) {
	if node.Kind() != lkml.KindBlock {
		return true, nil
	}

	pair := findChildPair(node, r.parameter)
	if pair == nil {
		return true, nil
	}

	id := pair.Value()
	if _, ok := run.Seen(r.code, id); ok {
		return false, nil
	}
	run.Record(r.code, id, node.Line())
	return true, nil
}

// findChildPair returns the first child pair with the given key, looking
// through container nodes but not into nested blocks.
func findChildPair(node lkml.Node, key string) lkml.Node {
	for _, child := range node.Children() {
		switch child.Kind() {
		case lkml.KindContainer:
			if found := findChildPair(child, key); found != nil {
				return found
			}
		case lkml.KindPair:
			if child.Type() == key {
				return child
			}
		}
	}
	return nil
}
