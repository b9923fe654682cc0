package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command. buildDate and gitCommit
// are stamped at build time and printed when set.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display lookmlint version information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "lookmlint v%s\n", version)
			if buildDate != "" && buildDate != "unknown" {
				_, _ = fmt.Fprintf(out, "  built:  %s\n", buildDate)
			}
			if gitCommit != "" && gitCommit != "unknown" {
				_, _ = fmt.Fprintf(out, "  commit: %s\n", gitCommit)
			}
			_, _ = fmt.Fprintln(out, "A style checker and linter for LookML")
		},
	}
}
