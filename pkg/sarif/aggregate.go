package sarif

import (
	"sort"
	"strings"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// Aggregator is the query surface shared by every level of the composite.
// Run answers for its own results, File merges across its runs and FileSet
// merges across its whole tree, so callers can treat all three uniformly.
type Aggregator interface {
	GetResults() []*gosarif.Result
	GetRecords() ([]*Record, error)
	GetRecordsGroupedBySeverity() (map[string][]*Record, error)
	GetResultCount() int
	GetResultCountBySeverity() (map[string]int, error)
	GetIssueCodeHistogram(severity string) ([]HistogramEntry, error)
	InitPathPrefixStripping(autotrim bool, pathPrefixes []string) error
}

var (
	_ Aggregator = (*Run)(nil)
	_ Aggregator = (*File)(nil)
	_ Aggregator = (*FileSet)(nil)
)

// HistogramEntry is one (issue code, occurrence count) pair.
type HistogramEntry struct {
	Code  string
	Count int
}

// groupRecordsBySeverity buckets records under each canonical severity,
// preserving record order. Records with a non-canonical severity string are
// dropped from every bucket.
func groupRecordsBySeverity(records []*Record) map[string][]*Record {
	grouped := make(map[string][]*Record, len(Severities))
	for _, severity := range Severities {
		group := []*Record{}
		for _, record := range records {
			if record.Severity == severity {
				group = append(group, record)
			}
		}
		grouped[severity] = group
	}
	return grouped
}

// countRecordsBySeverity counts records per canonical severity. The check is
// substring containment rather than equality; since the three severity names
// are pairwise non-substrings, a record still lands in at most one bucket.
func countRecordsBySeverity(records []*Record) map[string]int {
	counts := make(map[string]int, len(Severities))
	for _, severity := range Severities {
		n := 0
		for _, record := range records {
			if strings.Contains(record.Severity, severity) {
				n++
			}
		}
		counts[severity] = n
	}
	return counts
}

// countRecordsByIssueCode builds the issue code histogram for one severity,
// sorted by descending count. Ties keep first-encountered order.
func countRecordsByIssueCode(records []*Record, severity string) []HistogramEntry {
	counts := map[string]int{}
	var order []string
	for _, record := range records {
		if record.Severity != severity {
			continue
		}
		if _, seen := counts[record.Code]; !seen {
			order = append(order, record.Code)
		}
		counts[record.Code]++
	}
	histogram := make([]HistogramEntry, 0, len(order))
	for _, code := range order {
		histogram = append(histogram, HistogramEntry{Code: code, Count: counts[code]})
	}
	sort.SliceStable(histogram, func(i, j int) bool {
		return histogram[i].Count > histogram[j].Count
	})
	return histogram
}

// mergeSeverityCounts sums per-severity counts produced by child aggregators.
func mergeSeverityCounts(counts []map[string]int) map[string]int {
	merged := make(map[string]int, len(Severities))
	for _, severity := range Severities {
		total := 0
		for _, c := range counts {
			total += c[severity]
		}
		merged[severity] = total
	}
	return merged
}
