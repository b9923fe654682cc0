package style

import (
	"fmt"
	"io"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// RuleDef is a declarative rule record as found in configuration files.
// The type field names the rule kind; the remaining fields are common
// metadata plus the kind-specific ones. Records are validated against the
// known kinds and predicate names before any rule is constructed.
type RuleDef struct {
	Type      string           `mapstructure:"type"`
	Title     string           `mapstructure:"title"`
	Code      string           `mapstructure:"code"`
	Rationale string           `mapstructure:"rationale"`
	Select    []string         `mapstructure:"select"`
	Filters   []map[string]any `mapstructure:"filters"`

	// PatternMatchRule
	Regex    *string `mapstructure:"regex"`
	Negative bool    `mapstructure:"negative"`

	// ParameterRule
	Criteria map[string]any `mapstructure:"criteria"`

	// OrderRule
	Alphabetical bool     `mapstructure:"alphabetical"`
	IsFirst      bool     `mapstructure:"is_first"`
	Order        []string `mapstructure:"order"`
	UseKey       bool     `mapstructure:"use_key"`

	// UniquenessRule
	ParameterName *string `mapstructure:"parameter_name"`
}

// DecodeRuleDef decodes a raw record into a RuleDef. A bare string select
// is accepted in place of a list.
func DecodeRuleDef(record map[string]any) (RuleDef, error) {
	var def RuleDef
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &def,
		DecodeHook: mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return def, err
	}
	if err := dec.Decode(record); err != nil {
		return def, fmt.Errorf("invalid rule record: %w", err)
	}
	return def, nil
}

// BuildRule validates a RuleDef and constructs the rule it describes.
// Unknown kinds and predicate names yield InvalidConfigError; fields
// missing for the declared kind yield InvalidRuleError naming the field.
func BuildRule(def RuleDef) (Rule, error) {
	switch def.Type {
	case "PatternMatchRule", "ParameterRule", "OrderRule", "UniquenessRule":
	case "":
		return nil, &InvalidRuleError{RuleType: "rule", Field: "type"}
	default:
		return nil, &InvalidConfigError{Name: def.Type, Reason: "not a valid rule type"}
	}

	if def.Code == "" {
		return nil, &InvalidRuleError{RuleType: def.Type, Field: "code"}
	}
	if def.Title == "" {
		return nil, &InvalidRuleError{RuleType: def.Type, Field: "title"}
	}
	if len(def.Select) == 0 {
		return nil, &InvalidRuleError{RuleType: def.Type, Field: "select"}
	}

	filters := make([]Predicate, 0, len(def.Filters))
	for _, record := range def.Filters {
		pred, err := BuildPredicate(record)
		if err != nil {
			return nil, err
		}
		filters = append(filters, pred)
	}

	meta := Meta{
		Title:     def.Title,
		Code:      def.Code,
		Rationale: def.Rationale,
		Select:    def.Select,
		Filters:   filters,
	}

	switch def.Type {
	case "PatternMatchRule":
		if def.Regex == nil {
			return nil, &InvalidRuleError{RuleType: def.Type, Field: "regex"}
		}
		return NewPatternMatchRule(meta, *def.Regex, def.Negative)

	case "ParameterRule":
		if def.Criteria == nil {
			return nil, &InvalidRuleError{RuleType: def.Type, Field: "criteria"}
		}
		criteria, err := BuildPredicate(def.Criteria)
		if err != nil {
			return nil, err
		}
		return NewParameterRule(meta, criteria, def.Negative), nil

	case "OrderRule":
		mode, err := orderModeFor(def)
		if err != nil {
			return nil, err
		}
		return NewOrderRule(meta, mode, def.Order, def.UseKey)

	default: // UniquenessRule
		if def.ParameterName == nil {
			return nil, &InvalidRuleError{RuleType: def.Type, Field: "parameter_name"}
		}
		return NewUniquenessRule(meta, *def.ParameterName), nil
	}
}

// orderModeFor maps the three mutually exclusive order fields to a mode.
func orderModeFor(def RuleDef) (OrderMode, error) {
	set := 0
	if def.Alphabetical {
		set++
	}
	if def.IsFirst {
		set++
	}
	if len(def.Order) > 0 {
		set++
	}
	if set != 1 {
		return 0, &InvalidRuleError{RuleType: "OrderRule", Field: "alphabetical|is_first|order"}
	}
	switch {
	case def.Alphabetical:
		return OrderAlphabetical, nil
	case def.IsFirst:
		return OrderFirst, nil
	default:
		return OrderFixed, nil
	}
}

// RulesFromRecords decodes and builds rules from raw declarative records,
// e.g. the custom_rules list of a configuration file.
func RulesFromRecords(records []map[string]any) ([]Rule, error) {
	rules := make([]Rule, 0, len(records))
	for i, record := range records {
		def, err := DecodeRuleDef(record)
		if err != nil {
			return nil, err
		}
		rule, err := BuildRule(def)
		if err != nil {
			return nil, fmt.Errorf("custom rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadRules reads a standalone rules file: a YAML document with a "rules"
// list of declarative rule records.
func LoadRules(r io.Reader) ([]Rule, error) {
	var doc struct {
		Rules []map[string]any `yaml:"rules"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	return RulesFromRecords(doc.Rules)
}
