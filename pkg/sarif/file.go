package sarif

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// datetimeRegex matches the timestamp convention used in scan file names,
// e.g. 20211012T110000Z (`date +"%Y%m%dT%H%M%SZ"`). Not part of the SARIF
// standard.
var datetimeRegex = regexp.MustCompile(`\d{8}T\d{6}Z`)

// HasSarifFileExtension reports whether filename carries a SARIF extension.
// Per section 3.2 of the SARIF standard, file names SHOULD end in ".sarif"
// and MAY end in ".sarif.json".
func HasSarifFileExtension(filename string) bool {
	upper := strings.ToUpper(strings.TrimSpace(filename))
	return strings.HasSuffix(upper, ".SARIF") || strings.HasSuffix(upper, ".SARIF.JSON")
}

// File holds one parsed SARIF document together with the path it was loaded
// from, and owns one Run per entry in the document's "runs" list.
type File struct {
	absPath string
	report  *gosarif.Report
	runs    []*Run
}

// NewFile wraps an already parsed SARIF document. The path is made absolute;
// reading and parsing raw bytes into the document is the caller's concern.
func NewFile(filePath string, report *gosarif.Report) *File {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filepath.Clean(filePath)
	}
	f := &File{absPath: absPath, report: report}
	for index, runData := range report.Runs {
		f.runs = append(f.runs, newRun(index, runData))
	}
	return f
}

// IsEmpty reports whether this file contains no runs. A run with zero
// results still counts as present.
func (f *File) IsEmpty() bool {
	return len(f.runs) == 0
}

// GetRuns returns this file's runs in document order.
func (f *File) GetRuns() []*Run {
	return f.runs
}

// GetAbsFilePath returns the absolute path this SARIF data was loaded from.
func (f *File) GetAbsFilePath() string {
	return f.absPath
}

// GetFileName returns the final segment of the file path.
func (f *File) GetFileName() string {
	return filepath.Base(f.absPath)
}

// GetFileNameWithoutExtension returns the file name up to its first dot, or
// the whole name when it has none.
func (f *File) GetFileNameWithoutExtension() string {
	name := f.GetFileName()
	if dot := strings.Index(name, "."); dot > -1 {
		return name[:dot]
	}
	return name
}

// GetFileNameExtension returns everything after the file name's first dot,
// or "" when it has none.
func (f *File) GetFileNameExtension() string {
	name := f.GetFileName()
	if dot := strings.Index(name, "."); dot > -1 {
		return name[dot+1:]
	}
	return ""
}

// GetFilenameTimestamp extracts the scan timestamp embedded in the file
// name. It returns "" unless the name contains exactly one timestamp, so
// ambiguous names are treated as carrying none.
func (f *File) GetFilenameTimestamp() string {
	matches := datetimeRegex.FindAllString(f.GetFileName(), -1)
	if len(matches) == 1 {
		return matches[0]
	}
	return ""
}

// GetDistinctToolNames returns the deduplicated tool names across this
// file's runs, sorted alphabetically.
func (f *File) GetDistinctToolNames() []string {
	seen := map[string]struct{}{}
	names := []string{}
	for _, run := range f.runs {
		name := run.GetToolName()
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// InitPathPrefixStripping forwards the stripping configuration to every run.
func (f *File) InitPathPrefixStripping(autotrim bool, pathPrefixes []string) error {
	for _, run := range f.runs {
		if err := run.InitPathPrefixStripping(autotrim, pathPrefixes); err != nil {
			return err
		}
	}
	return nil
}

// GetResults returns the raw result objects of all runs, in run order.
func (f *File) GetResults() []*gosarif.Result {
	var results []*gosarif.Result
	for _, run := range f.runs {
		results = append(results, run.GetResults()...)
	}
	return results
}

// GetRecords returns the simplified records of all runs, in run order.
func (f *File) GetRecords() ([]*Record, error) {
	var records []*Record
	for _, run := range f.runs {
		runRecords, err := run.GetRecords()
		if err != nil {
			return nil, err
		}
		records = append(records, runRecords...)
	}
	return records, nil
}

// GetRecordsGroupedBySeverity returns the records of all runs grouped under
// each canonical severity.
func (f *File) GetRecordsGroupedBySeverity() (map[string][]*Record, error) {
	records, err := f.GetRecords()
	if err != nil {
		return nil, err
	}
	return groupRecordsBySeverity(records), nil
}

// GetResultCount returns the total number of results across all runs.
func (f *File) GetResultCount() int {
	count := 0
	for _, run := range f.runs {
		count += run.GetResultCount()
	}
	return count
}

// GetResultCountBySeverity returns the number of records per canonical
// severity across all runs.
func (f *File) GetResultCountBySeverity() (map[string]int, error) {
	var counts []map[string]int
	for _, run := range f.runs {
		c, err := run.GetResultCountBySeverity()
		if err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return mergeSeverityCounts(counts), nil
}

// GetIssueCodeHistogram returns (code, count) pairs for the records of all
// runs with the given severity, most frequent first.
func (f *File) GetIssueCodeHistogram(severity string) ([]HistogramEntry, error) {
	records, err := f.GetRecords()
	if err != nil {
		return nil, err
	}
	return countRecordsByIssueCode(records, severity), nil
}
