package sarif

import (
	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

// newURIResult builds a result with the common artifactLocation.uri location.
// An empty level leaves the result without one.
func newURIResult(ruleID, level, uri string, line int, message string) *gosarif.Result {
	result := &gosarif.Result{
		RuleID:  strPtr(ruleID),
		Message: gosarif.Message{Text: strPtr(message)},
		Locations: []*gosarif.Location{{
			PhysicalLocation: &gosarif.PhysicalLocation{
				ArtifactLocation: &gosarif.ArtifactLocation{URI: strPtr(uri)},
				Region:           &gosarif.Region{StartLine: intPtr(line)},
			},
		}},
	}
	if level != "" {
		result.Level = strPtr(level)
	}
	return result
}

// newLocationlessResult builds a result with no location source at all.
func newLocationlessResult(ruleID, message string) *gosarif.Result {
	return &gosarif.Result{
		RuleID:  strPtr(ruleID),
		Message: gosarif.Message{Text: strPtr(message)},
	}
}

func newTestRun(toolName string, results ...*gosarif.Result) *gosarif.Run {
	return &gosarif.Run{
		Tool: gosarif.Tool{
			Driver: &gosarif.ToolComponent{Name: toolName},
		},
		Results: results,
	}
}

func newTestReport(runs ...*gosarif.Run) *gosarif.Report {
	return &gosarif.Report{
		Version: string(gosarif.Version210),
		Runs:    runs,
	}
}
