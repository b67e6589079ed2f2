package sarif

import (
	"fmt"
	"strconv"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// Severity levels a SARIF result can carry, per section 3.27.10 of the SARIF
// standard.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityNote    = "note"
)

// Severities lists the SARIF severities in reporting order.
var Severities = []string{SeverityError, SeverityWarning, SeverityNote}

// Record is a simplified, flat view of a single SARIF result object.
type Record struct {
	Tool     string
	Location string
	Line     string
	Severity string
	Code     string
}

// ExtractionError reports a result that carries no usable location in any of
// its physical or logical location fields.
type ExtractionError struct {
	RuleID string
	Tool   string
}

// Error implements the error interface for ExtractionError.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no location in %s output from %s", e.RuleID, e.Tool)
}

// NewExtractionError creates an ExtractionError for the given rule and tool.
func NewExtractionError(ruleID, toolName string) error {
	return &ExtractionError{RuleID: ruleID, Tool: toolName}
}

// resultToRecord converts one SARIF result object into a Record.
//
// The location is resolved through a fallback chain because tools encode it
// inconsistently: DevSkim writes physicalLocation.address.fullyQualifiedName,
// MobSF and SpotBugs write physicalLocation.artifactLocation.uri, and SpotBugs
// uses logicalLocations for some findings.
func resultToRecord(result *gosarif.Result, toolName string, prefixesUpper []string) (*Record, error) {
	ruleID := *result.RuleID
	line := "1"
	var location string
	if len(result.Locations) > 0 {
		loc := result.Locations[0]
		if phys := loc.PhysicalLocation; phys != nil {
			// SpotBugs reports some findings without a line number; leave
			// those at 1.
			if phys.Region != nil && phys.Region.StartLine != nil {
				line = strconv.Itoa(*phys.Region.StartLine)
			}
			if phys.Address != nil && phys.Address.FullyQualifiedName != nil {
				location = *phys.Address.FullyQualifiedName
			}
			if location == "" && phys.ArtifactLocation != nil && phys.ArtifactLocation.URI != nil {
				location = *phys.ArtifactLocation.URI
			}
		}
		if location == "" && len(loc.LogicalLocations) > 0 {
			if fqn := loc.LogicalLocations[0].FullyQualifiedName; fqn != nil {
				location = *fqn
			}
		}
	}
	if location == "" {
		return nil, NewExtractionError(ruleID, toolName)
	}
	location = stripPathPrefix(location, prefixesUpper)

	// A result with no level is a warning by default.
	severity := SeverityWarning
	if result.Level != nil {
		severity = *result.Level
	}

	return &Record{
		Tool:     toolName,
		Location: location,
		Line:     line,
		Severity: severity,
		Code:     fmt.Sprintf("%s %s", ruleID, *result.Message.Text),
	}, nil
}
