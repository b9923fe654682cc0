package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/lookmlint/internal/cli/config"
	"github.com/leapstack-labs/lookmlint/internal/cli/output"
	"github.com/leapstack-labs/lookmlint/pkg/style"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Paths  []string // Files or directories to check
	Format string   // Output format: text, markdown, json
	Select []string // Rule codes to run exclusively
	Ignore []string // Rule codes to skip
	Rules  string   // Path to a standalone rules file
	Jobs   int      // Max files checked concurrently
	Watch  bool     // Re-check on file changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check LookML files against style rules",
		Long: `Check LookML files for style violations.

Paths may be files or directories; directories are searched recursively
for .lkml and .lookml files. Rules can be selected, ignored or replaced
in lookmlint.yaml, or supplied from a separate rules file.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the current directory
  lookmlint check

  # Check specific files
  lookmlint check views/orders.view.lkml models/

  # Run only two rules
  lookmlint check --select M100,D100

  # Skip a rule
  lookmlint check --ignore D106

  # Use a shared team rules file
  lookmlint check --rules team_rules.yaml

  # Re-check whenever files change
  lookmlint check --watch

  # Output as JSON
  lookmlint check --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			if len(opts.Paths) == 0 {
				opts.Paths = []string{"."}
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Select, "select", nil, "Rule codes to run exclusively")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Rule codes to skip")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Path to a rules file")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Max files checked concurrently (0 = one per CPU)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when files change")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	checkOpts, err := buildCheckOptions(cfg, opts)
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchAndCheck(cmd, opts, checkOpts, r, cmdCtx.Logger)
	}

	files, err := discoverFiles(opts.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no LookML files found under %s", strings.Join(opts.Paths, ", "))
	}

	results, err := checkFiles(files, checkOpts, jobLimit(cfg, opts))
	if err != nil {
		return err
	}

	if renderCheckResults(r, results, len(files)) {
		return fmt.Errorf("style violations found")
	}
	return nil
}

// buildCheckOptions assembles the style options from project config and
// CLI flags. Flags extend the config's select and ignore lists; rules from
// a rules file and inline custom rules are combined, flags winning on the
// file path.
func buildCheckOptions(cfg *config.Config, opts *CheckOptions) ([]style.Option, error) {
	var styleOpts []style.Option

	selectCodes := append(append([]string{}, cfg.Select...), opts.Select...)
	if len(selectCodes) > 0 {
		styleOpts = append(styleOpts, style.WithSelect(selectCodes...))
	}
	ignore := append(append([]string{}, cfg.Ignore...), opts.Ignore...)
	if len(ignore) > 0 {
		styleOpts = append(styleOpts, style.WithIgnore(ignore...))
	}

	var custom []style.Rule
	rulesFile := cfg.RulesFile
	if opts.Rules != "" {
		rulesFile = opts.Rules
	}
	if rulesFile != "" {
		f, err := os.Open(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("opening rules file: %w", err)
		}
		loaded, err := style.LoadRules(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rulesFile, err)
		}
		custom = append(custom, loaded...)
	}
	if len(cfg.CustomRules) > 0 {
		inline, err := style.RulesFromRecords(cfg.CustomRules)
		if err != nil {
			return nil, err
		}
		custom = append(custom, inline...)
	}
	if len(custom) > 0 {
		styleOpts = append(styleOpts, style.WithCustomRules(custom...))
	}

	return styleOpts, nil
}

func jobLimit(cfg *config.Config, opts *CheckOptions) int {
	jobs := cfg.Jobs
	if opts.Jobs > 0 {
		jobs = opts.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return jobs
}

// discoverFiles expands paths into the sorted list of LookML files.
func discoverFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isLookMLFile(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func isLookMLFile(path string) bool {
	switch filepath.Ext(path) {
	case ".lkml", ".lookml":
		return true
	}
	return false
}

// fileResult holds the violations found in one file.
type fileResult struct {
	Path       string
	Source     string
	Violations []style.Violation
}

// checkFiles checks files concurrently, at most jobs at a time. Each file
// gets its own check so rule state never crosses file boundaries. Results
// come back sorted by path.
func checkFiles(files []string, opts []style.Option, jobs int) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			source := string(data)
			violations, err := style.Check(source, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = fileResult{Path: path, Source: source, Violations: violations}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flagged []fileResult
	for _, res := range results {
		if len(res.Violations) > 0 {
			flagged = append(flagged, res)
		}
	}
	return flagged, nil
}

// renderCheckResults writes the results in the renderer's mode and reports
// whether any violations were found.
func renderCheckResults(r *output.Renderer, results []fileResult, filesChecked int) bool {
	total := 0
	for _, res := range results {
		total += len(res.Violations)
	}

	if r.EffectiveMode() == output.ModeJSON {
		jsonOut := output.CheckOutput{
			Summary: output.CheckSummary{
				FilesChecked: filesChecked,
				FilesFlagged: len(results),
				TotalIssues:  total,
			},
			Files: []output.CheckFileResult{},
		}
		for _, res := range results {
			fileOut := output.CheckFileResult{Path: res.Path}
			for _, v := range res.Violations {
				fileOut.Diagnostics = append(fileOut.Diagnostics, output.CheckDiagnostic{
					Code:  v.Code,
					Title: v.Title,
					Line:  v.Line,
				})
			}
			jsonOut.Files = append(jsonOut.Files, fileOut)
		}
		_ = r.JSON(jsonOut)
		return total > 0
	}

	if len(results) == 0 {
		r.Success(fmt.Sprintf("No style violations found in %d files", filesChecked))
		return false
	}

	for _, res := range results {
		r.Println(r.Styles().FilePath.Render(res.Path))
		for _, v := range res.Violations {
			r.Printf("  %s %s %s\n",
				r.Styles().Warning.Render(v.Code),
				r.Styles().Muted.Render(fmt.Sprintf("line %d", v.Line)),
				v.Title,
			)
			printSourceContext(r, res.Source, v.Line)
		}
		r.Println("")
	}

	r.Printf("Summary: %d violations in %d of %d files\n", total, len(results), filesChecked)
	return true
}

// contextLines is how many source lines to show around a violation.
const contextLines = 2

// printSourceContext shows the violating line with surrounding context,
// the way compilers point at the offending code.
func printSourceContext(r *output.Renderer, source string, line int) {
	if line <= 0 || r.EffectiveMode() != output.ModeText {
		return
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return
	}

	start := line - contextLines
	if start < 1 {
		start = 1
	}
	end := line + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	for n := start; n <= end; n++ {
		prefix := fmt.Sprintf("  %4d | ", n)
		text := prefix + lines[n-1]
		if n == line {
			r.Println(r.Styles().Bold.Render(text))
		} else {
			r.Println(r.Styles().Muted.Render(text))
		}
	}
}
