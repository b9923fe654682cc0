package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lookmlint/internal/cli/output"
	"github.com/leapstack-labs/lookmlint/pkg/style"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Kind   string // Filter by rule kind
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [code]",
		Short: "List available style rules",
		Long: `List the built-in style rules with their codes and selectors.

Pass a rule code to see its full documentation, including the rationale
behind the rule.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  lookmlint rules

  # Show details for a specific rule
  lookmlint rules M100

  # List only order rules
  lookmlint rules --kind OrderRule

  # Output as JSON
  lookmlint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Filter by rule kind")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func rulesRenderer(cmd *cobra.Command, opts *RulesOptions) *output.Renderer {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}
	return r
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts)

	rules := style.Default().Rules()
	if opts.Kind != "" {
		var filtered []style.Rule
		for _, rule := range rules {
			if strings.EqualFold(rule.RuleKind(), opts.Kind) {
				filtered = append(filtered, rule)
			}
		}
		rules = filtered
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules)
	default:
		return listRulesText(r, rules)
	}
}

// listRulesText renders the catalog as a table.
func listRulesText(r *output.Renderer, rules []style.Rule) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Style Rules (%d)", len(rules))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"CODE", "KIND", "SELECT", "TITLE"})
	for _, rule := range rules {
		t.AppendRow(table.Row{
			rule.Code(),
			strings.TrimSuffix(rule.RuleKind(), "Rule"),
			strings.Join(rule.Selectors(), ", "),
			rule.Title(),
		})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'lookmlint rules <code>' for detailed documentation"))
	r.Println("")

	return nil
}

func listRulesMarkdown(r *output.Renderer, rules []style.Rule) error {
	r.Println("# Style Rules")
	r.Println("")
	r.Println("| Code | Kind | Select | Title |")
	r.Println("|------|------|--------|-------|")
	for _, rule := range rules {
		r.Printf("| %s | %s | %s | %s |\n",
			rule.Code(),
			strings.TrimSuffix(rule.RuleKind(), "Rule"),
			strings.Join(rule.Selectors(), ", "),
			rule.Title(),
		)
	}
	r.Println("")
	return nil
}

// ruleInfo is the JSON shape of one rule.
type ruleInfo struct {
	Code      string   `json:"code"`
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Rationale string   `json:"rationale,omitempty"`
	Select    []string `json:"select"`
}

// RulesJSONOutput is the JSON output structure for the rules listing.
type RulesJSONOutput struct {
	Rules []ruleInfo `json:"rules"`
	Count int        `json:"count"`
}

func toRuleInfo(rule style.Rule) ruleInfo {
	return ruleInfo{
		Code:      rule.Code(),
		Kind:      rule.RuleKind(),
		Title:     rule.Title(),
		Rationale: rule.Rationale(),
		Select:    rule.Selectors(),
	}
}

func listRulesJSON(r *output.Renderer, rules []style.Rule) error {
	jsonOut := RulesJSONOutput{Rules: make([]ruleInfo, 0, len(rules)), Count: len(rules)}
	for _, rule := range rules {
		jsonOut.Rules = append(jsonOut.Rules, toRuleInfo(rule))
	}
	return r.JSON(jsonOut)
}

func showRule(cmd *cobra.Command, code string, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts)

	rule, ok := style.Default().Get(code)
	if !ok {
		return fmt.Errorf("rule %q not found", code)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(toRuleInfo(rule))
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

func showRuleText(r *output.Renderer, rule style.Rule) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.Code(), rule.Title())))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Kind"), rule.RuleKind())
	r.Printf("  %s: %s\n", styles.Bold.Render("Select"), strings.Join(rule.Selectors(), ", "))
	r.Println("")

	if rule.Rationale() != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale())
		r.Println("")
	}

	return nil
}

func showRuleMarkdown(r *output.Renderer, rule style.Rule) error {
	r.Printf("# %s - %s\n\n", rule.Code(), rule.Title())
	r.Printf("**Kind:** %s | **Select:** `%s`\n\n", rule.RuleKind(), strings.Join(rule.Selectors(), "`, `"))
	if rule.Rationale() != "" {
		r.Println(rule.Rationale())
		r.Println("")
	}
	return nil
}
