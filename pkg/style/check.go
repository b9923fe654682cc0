package style

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/lookmlint/pkg/lkml"
)

// Options configures a single check invocation.
type Options struct {
	selectCodes []string
	ignore      []string
	custom      []Rule
	catalog     *Catalog
}

// Option mutates check options.
type Option func(*Options)

// WithSelect restricts the check to the given rule codes.
func WithSelect(codes ...string) Option {
	return func(o *Options) { o.selectCodes = append(o.selectCodes, codes...) }
}

// WithIgnore removes the given rule codes from the check. Ignore wins over
// select for overlapping codes.
func WithIgnore(codes ...string) Option {
	return func(o *Options) { o.ignore = append(o.ignore, codes...) }
}

// WithCustomRules adds user-defined rules. A custom rule sharing a code
// with a resolved catalog rule replaces it.
func WithCustomRules(rules ...Rule) Option {
	return func(o *Options) { o.custom = append(o.custom, rules...) }
}

// WithCatalog substitutes the rule catalog. Default() is used otherwise.
func WithCatalog(catalog *Catalog) Option {
	return func(o *Options) { o.catalog = catalog }
}

// Check parses source and runs the resolved rule set over it, returning
// violations in document order. Each call uses a fresh run context, so
// stateful rules never leak observations across sources.
func Check(source string, opts ...Option) ([]Violation, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = Default()
	}

	tree, err := lkml.Parse(source)
	if err != nil {
		return nil, err
	}

	rules := Resolve(o.catalog, o.selectCodes, o.ignore, o.custom)
	return NewChecker(rules).Run(tree)
}

// CheckTree runs the resolved rule set over an already parsed tree.
func CheckTree(tree lkml.Node, opts ...Option) ([]Violation, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = Default()
	}
	rules := Resolve(o.catalog, o.selectCodes, o.ignore, o.custom)
	return NewChecker(rules).Run(tree)
}

// CheckFile reads and checks a single file.
func CheckFile(path string, opts ...Option) ([]Violation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Check(string(data), opts...)
}
