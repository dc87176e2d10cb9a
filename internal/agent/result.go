package agent

// Result envelopes for the role capabilities. Every envelope carries
// Success plus a human-readable Error that is non-empty whenever Success
// is false.

type TestFileResult struct {
	Success  bool   `json:"success"`
	TestFile string `json:"test_file,omitempty"`
	Error    string `json:"error,omitempty"`
}

type TestRunResult struct {
	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	TestFile string `json:"test_file,omitempty"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`

	// Filled by the orchestrator when a failed run is routed to the
	// debugger.
	DebugAnalysis string `json:"debug_analysis,omitempty"`
}

type CodeMetrics struct {
	NumFunctions  int      `json:"num_functions"`
	NumTypes      int      `json:"num_types"`
	HasPackageDoc bool     `json:"has_package_doc"`
	Imports       []string `json:"imports"`
}

type ReviewResult struct {
	Success     bool         `json:"success"`
	Review      string       `json:"review,omitempty"`
	Metrics     *CodeMetrics `json:"metrics,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
	Error       string       `json:"error,omitempty"`
}

type DebugResult struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}
