package canonval

// Issue is one validation failure: a stable reason code, the document
// location it applies to, a human-readable message, and the contract
// section documenting the requirement.
type Issue struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
	Doc     string `json:"doc"`
}

// Summary aggregates a report for quick inspection.
type Summary struct {
	Checked     int      `json:"checked"`
	Failed      int      `json:"failed"`
	ReasonCodes []string `json:"reason_codes"`
}

// Report is the complete outcome of validating one document.
type Report struct {
	OK      bool    `json:"ok"`
	Errors  []Issue `json:"errors"`
	Summary Summary `json:"summary"`
}

// ExitCode maps the report to the CLI exit convention: 0 valid, 1 schema
// or invariant failure, 2 file-not-found or parse failure.
func (r Report) ExitCode() int {
	if r.OK {
		return 0
	}
	for _, issue := range r.Errors {
		if issue.Code == CodeFileError || issue.Code == CodeParseError {
			return 2
		}
	}
	return 1
}

func buildReport(issues []Issue) Report {
	if issues == nil {
		issues = []Issue{}
	}
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return Report{
		OK:     len(issues) == 0,
		Errors: issues,
		Summary: Summary{
			Checked:     len(issues),
			Failed:      len(issues),
			ReasonCodes: codes,
		},
	}
}
