package output

// CheckDiagnostic is one violation in machine-readable check output.
type CheckDiagnostic struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// CheckFileResult groups the diagnostics of one checked file.
type CheckFileResult struct {
	Path        string            `json:"path"`
	Diagnostics []CheckDiagnostic `json:"diagnostics"`
}

// CheckSummary aggregates counts across all checked files.
type CheckSummary struct {
	FilesChecked int `json:"files_checked"`
	FilesFlagged int `json:"files_flagged"`
	TotalIssues  int `json:"total_issues"`
}

// CheckOutput is the top-level JSON structure of the check command.
type CheckOutput struct {
	Summary CheckSummary      `json:"summary"`
	Files   []CheckFileResult `json:"files"`
}
