package style

import "github.com/leapstack-labs/lookmlint/pkg/lkml"

// RunContext carries the mutable state of one check invocation: the last
// node seen per rule code (for order rules) and the identifiers recorded
// per rule code (for uniqueness rules). A fresh context is created for
// every check and discarded afterwards; contexts are never shared across
// concurrent checks.
type RunContext struct {
	prev map[string]lkml.Node
	seen map[string]map[string]int
}

// NewRunContext returns an empty per-run context.
func NewRunContext() *RunContext {
	return &RunContext{
		prev: make(map[string]lkml.Node),
		seen: make(map[string]map[string]int),
	}
}

// Last returns the node most recently evaluated by the rule with this code,
// or nil if none has been seen yet.
func (c *RunContext) Last(code string) lkml.Node {
	return c.prev[code]
}

// SetLast records node as the most recent node for the rule code.
func (c *RunContext) SetLast(code string, node lkml.Node) {
	c.prev[code] = node
}

// Seen returns the line an identifier was first recorded on for the rule
// code, and whether it was recorded at all.
func (c *RunContext) Seen(code, id string) (int, bool) {
	line, ok := c.seen[code][id]
	return line, ok
}

// Record stores an identifier and its origin line for the rule code.
func (c *RunContext) Record(code, id string, line int) {
	ids := c.seen[code]
	if ids == nil {
		ids = make(map[string]int)
		c.seen[code] = ids
	}
	ids[id] = line
}
