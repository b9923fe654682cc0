package style

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

// Predicate is a boolean test over a single node. Predicates narrow which
// selected nodes a rule actually evaluates, and serve as the criteria of
// parameter rules.
type Predicate func(node lkml.Node) bool

// NodeHasType matches nodes whose LookML type equals value.
func NodeHasType(value string) Predicate {
	return func(node lkml.Node) bool {
		return node.Type() == value
	}
}

// PairHasValue matches pair nodes whose value equals value.
func PairHasValue(value string) Predicate {
	return func(node lkml.Node) bool {
		return node.Kind() == lkml.KindPair && node.Value() == value
	}
}

// NodeHasAtLeastOneValidChild matches nodes with at least one child
// accepted by isValid. Container children are looked through, so the test
// sees a block's items rather than its grouping node.
func NodeHasAtLeastOneValidChild(isValid Predicate) Predicate {
	var search func(node lkml.Node) bool
	search = func(node lkml.Node) bool {
		for _, child := range node.Children() {
			if child.Kind() == lkml.KindContainer {
				if search(child) {
					return true
				}
			} else if isValid(child) {
				return true
			}
		}
		return false
	}
	return search
}

// BlockHasParameter matches block nodes containing a pair with the given
// key and, when value is non-empty, that value. negative inverts the test
// while still requiring a block node.
func BlockHasParameter(name, value string, negative bool) Predicate {
	isParam := func(node lkml.Node) bool {
		if node.Kind() != lkml.KindPair {
			return false
		}
		if node.Type() != name {
			return false
		}
		if value != "" && node.Value() != value {
			return false
		}
		return true
	}
	hasParam := NodeHasAtLeastOneValidChild(isParam)

	return func(node lkml.Node) bool {
		if node.Kind() != lkml.KindBlock {
			return false
		}
		ok := hasParam(node)
		if negative {
			return !ok
		}
		return ok
	}
}

// predicateBuilder constructs a predicate from the arguments of a
// declarative filter record.
type predicateBuilder func(args map[string]any) (Predicate, error)

// predicateRegistry maps declarative function names to builders. Consulted
// at config-load time; unknown names are configuration errors, never a
// runtime lookup. Filled in init because buildNodeHasValidChild recurses
// through BuildPredicate, which reads the registry.
var predicateRegistry = make(map[string]predicateBuilder)

func init() {
	predicateRegistry["block_has_valid_parameter"] = buildBlockHasParameter
	predicateRegistry["node_has_at_least_one_valid_child"] = buildNodeHasValidChild
	predicateRegistry["node_has_valid_type"] = buildNodeHasType
	predicateRegistry["pair_has_valid_value"] = buildPairHasValue
}

// PredicateNames returns the known predicate function names, sorted.
func PredicateNames() []string {
	names := make([]string, 0, len(predicateRegistry))
	for name := range predicateRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildPredicate constructs a predicate from a declarative filter record of
// the form {function: name, ...args}. Unknown function names yield an
// InvalidConfigError naming the function.
func BuildPredicate(record map[string]any) (Predicate, error) {
	name, _ := record["function"].(string)
	if name == "" {
		return nil, &InvalidRuleError{RuleType: "filter", Field: "function"}
	}
	builder, ok := predicateRegistry[name]
	if !ok {
		return nil, &InvalidConfigError{Name: name, Reason: "not a valid function"}
	}
	pred, err := builder(record)
	if err != nil {
		return nil, err
	}
	return pred, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func buildBlockHasParameter(args map[string]any) (Predicate, error) {
	name := stringArg(args, "parameter_name")
	if name == "" {
		return nil, &InvalidRuleError{RuleType: "block_has_valid_parameter", Field: "parameter_name"}
	}
	return BlockHasParameter(name, stringArg(args, "value"), boolArg(args, "negative")), nil
}

func buildNodeHasValidChild(args map[string]any) (Predicate, error) {
	nested, ok := args["is_valid"].(map[string]any)
	if !ok {
		return nil, &InvalidRuleError{RuleType: "node_has_at_least_one_valid_child", Field: "is_valid"}
	}
	inner, err := BuildPredicate(nested)
	if err != nil {
		return nil, fmt.Errorf("is_valid: %w", err)
	}
	return NodeHasAtLeastOneValidChild(inner), nil
}

func buildNodeHasType(args map[string]any) (Predicate, error) {
	value := stringArg(args, "value")
	if value == "" {
		return nil, &InvalidRuleError{RuleType: "node_has_valid_type", Field: "value"}
	}
	return NodeHasType(value), nil
}

func buildPairHasValue(args map[string]any) (Predicate, error) {
	value := stringArg(args, "value")
	if value == "" {
		return nil, &InvalidRuleError{RuleType: "pair_has_valid_value", Field: "value"}
	}
	return PairHasValue(value), nil
}
