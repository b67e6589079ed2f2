package sarif

import (
	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// Run wraps one entry of a SARIF document's top-level "runs" list, as defined
// in section 3.14 of the SARIF standard. It owns the lazily computed records
// derived from its results and the path prefix stripping configuration they
// were computed under.
type Run struct {
	index int
	data  *gosarif.Run

	// prefixesUpper is the active stripping configuration; nil disables
	// stripping. cachedRecords is only valid for that configuration.
	prefixesUpper []string
	cachedRecords []*Record
}

func newRun(index int, data *gosarif.Run) *Run {
	return &Run{index: index, data: data}
}

// GetIndex returns this run's position within its parent document.
func (r *Run) GetIndex() int {
	return r.index
}

// GetToolName returns the name of the tool that produced this run.
func (r *Run) GetToolName() string {
	return r.data.Tool.Driver.Name
}

// GetResults returns the raw result objects of this run, as defined in
// section 3.27 of the SARIF standard. Callers must not mutate them.
func (r *Run) GetResults() []*gosarif.Result {
	return r.data.Results
}

// InitPathPrefixStripping configures path prefix stripping for subsequently
// obtained records. Explicit prefixes are stripped verbatim; with autotrim, a
// prefix inferred from this run's own unstripped records is stripped as well.
// Previously cached records are discarded.
func (r *Run) InitPathPrefixStripping(autotrim bool, pathPrefixes []string) error {
	var records []*Record
	if autotrim {
		// The inference must see unstripped locations.
		r.prefixesUpper = nil
		r.cachedRecords = nil
		var err error
		records, err = r.GetRecords()
		if err != nil {
			return err
		}
	}
	r.prefixesUpper = computePrefixes(autotrim, pathPrefixes, records)
	r.cachedRecords = nil
	return nil
}

// GetRecords returns the simplified records derived from this run's results,
// in result order. Records are computed once per stripping configuration and
// cached. A result with no derivable location fails the whole run.
func (r *Run) GetRecords() ([]*Record, error) {
	if r.cachedRecords == nil {
		results := r.GetResults()
		toolName := r.GetToolName()
		records := make([]*Record, 0, len(results))
		for _, result := range results {
			record, err := resultToRecord(result, toolName, r.prefixesUpper)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		r.cachedRecords = records
	}
	return r.cachedRecords, nil
}

// GetRecordsGroupedBySeverity returns this run's records grouped under each
// canonical severity.
func (r *Run) GetRecordsGroupedBySeverity() (map[string][]*Record, error) {
	records, err := r.GetRecords()
	if err != nil {
		return nil, err
	}
	return groupRecordsBySeverity(records), nil
}

// GetResultCount returns the total number of results in this run.
func (r *Run) GetResultCount() int {
	return len(r.GetResults())
}

// GetResultCountBySeverity returns the number of records per canonical
// severity.
func (r *Run) GetResultCountBySeverity() (map[string]int, error) {
	records, err := r.GetRecords()
	if err != nil {
		return nil, err
	}
	return countRecordsBySeverity(records), nil
}

// GetIssueCodeHistogram returns (code, count) pairs for this run's records
// with the given severity, most frequent first.
func (r *Run) GetIssueCodeHistogram(severity string) ([]HistogramEntry, error) {
	records, err := r.GetRecords()
	if err != nil {
		return nil, err
	}
	return countRecordsByIssueCode(records, severity), nil
}
