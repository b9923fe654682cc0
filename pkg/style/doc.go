// Package style implements a configurable rule engine for LookML style
// checking. Rules select nodes by lineage (the dot-joined chain of ancestor
// types), narrow them with predicates, and evaluate one of four rule kinds:
// pattern match, parameter presence, ordering and uniqueness.
//
// A check is a single depth-first walk over a parsed tree. All cross-node
// state lives in a per-run context so resolved rule sets can be shared
// read-only between concurrent checks.
package style
