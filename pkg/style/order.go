package style

import "github.com/leapstack-labs/lookmlint/pkg/lkml"

// OrderMode selects the sort discipline of an order rule.
type OrderMode int

const (
	// OrderAlphabetical requires each node's value to sort strictly after
	// the previous node's value (case-sensitive ordinal comparison).
	OrderAlphabetical OrderMode = iota
	// OrderFirst requires the first qualifying node to be the only one.
	OrderFirst
	// OrderFixed requires the first node to carry the first declared value
	// and each following node to form a declared adjacent transition with
	// its predecessor, in either direction.
	OrderFixed
)

// OrderRule checks the relative order of nodes matched by the same rule
// across one traversal. The compared value is a pair's key (useKey) or
// value, or a block's name; nodes without a comparable value pass
// vacuously. The run context's last node for this code is updated after
// every evaluation, pass or fail.
type OrderRule struct {
	ruleMeta
	mode   OrderMode
	order  []string
	useKey bool
	// adjacent holds the declared transitions as unordered pairs.
	adjacent map[[2]string]bool
}

// NewOrderRule returns an order rule with the given discipline. OrderFixed
// requires at least two declared values; the other modes take none.
func NewOrderRule(meta Meta, mode OrderMode, order []string, useKey bool) (*OrderRule, error) {
	switch mode {
	case OrderAlphabetical, OrderFirst:
		if len(order) > 0 {
			return nil, &InvalidRuleError{RuleType: "OrderRule", Field: "order"}
		}
	case OrderFixed:
		if len(order) < 2 {
			return nil, &InvalidRuleError{RuleType: "OrderRule", Field: "order"}
		}
	default:
		return nil, &InvalidRuleError{RuleType: "OrderRule", Field: "alphabetical|is_first|order"}
	}

	r := &OrderRule{ruleMeta: newRuleMeta(meta), mode: mode, order: order, useKey: useKey}
	if mode == OrderFixed {
		r.adjacent = make(map[[2]string]bool, 2*(len(order)-1))
		for i := 0; i < len(order)-1; i++ {
			r.adjacent[[2]string{order[i], order[i+1]}] = true
			r.adjacent[[2]string{order[i+1], order[i]}] = true
		}
	}
	return r, nil
}

func (r *OrderRule) RuleKind() string { return "OrderRule" }

// compareValue extracts the value the discipline compares. The second
// return reports whether the node kind carries one at all.
func (r *OrderRule) compareValue(node lkml.Node) (string, bool) {
	switch node.Kind() {
	case lkml.KindPair, lkml.KindList:
		if r.useKey {
			return node.Type(), true
		}
		if node.Kind() == lkml.KindList {
			return "", false
		}
		return node.Value(), true
	case lkml.KindBlock:
		return node.Name(), true
	default:
		return "", false
	}
}

func (r *OrderRule) Evaluate(node lkml.Node, run *RunContext) (bool, error) {
	cur, ok := r.compareValue(node)
	if !ok {
		return true, nil
	}

	prev := run.Last(r.code)
	run.SetLast(r.code, node)

	if r.mode == OrderFirst {
		return prev == nil, nil
	}
	if prev == nil {
		if r.mode == OrderFixed {
			return cur == r.order[0], nil
		}
		return true, nil
	}

	prevVal, ok := r.compareValue(prev)
	if !ok {
		// The stored node always carried a value when it was evaluated, so
		// this is outside the rule's contract.
		return false, &ExtractionError{Code: r.code, Kind: prev.Kind()}
	}

	switch r.mode {
	case OrderAlphabetical:
		return cur > prevVal, nil
	case OrderFixed:
		return r.adjacent[[2]string{prevVal, cur}], nil
	default:
		return true, nil
	}
}
