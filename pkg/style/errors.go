package style

import (
	"fmt"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

// InvalidConfigError reports a rule record naming an unknown rule type or
// predicate function. It carries the offending name so users can fix their
// definition without reading engine internals.
type InvalidConfigError struct {
	Name   string // the offending type or function name
	Reason string // "not a valid rule type" or "not a valid function"
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%q is %s", e.Name, e.Reason)
}

// InvalidRuleError reports a rule record missing a field required by its
// declared kind.
type InvalidRuleError struct {
	RuleType string
	Field    string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("%s is missing required field %q", e.RuleType, e.Field)
}

// DuplicateCodeError reports two rules sharing a code within one catalog.
// Raised at catalog construction, never during a check.
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("duplicate rule code %q in catalog", e.Code)
}

// ExtractionError reports a value extraction from a node kind the rule's
// contract does not define behavior for. Distinct from the vacuous-pass
// cases where a missing value is expected.
type ExtractionError struct {
	Code string
	Kind lkml.NodeKind
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("rule %s cannot extract a value from a %s node", e.Code, e.Kind)
}
