package sarif

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasSarifFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"scan.sarif", true},
		{"scan.sarif.json", true},
		{"SCAN.SARIF", true},
		{" scan.sarif ", true},
		{"scan.json", false},
		{"scan.sarif.txt", false},
		{"sarif", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasSarifFileExtension(tt.filename))
		})
	}
}

func TestFileIdentityAccessors(t *testing.T) {
	file := NewFile("/scans/output/scan_20211012T110000Z.sarif.json", newTestReport())

	assert.Equal(t, filepath.FromSlash("/scans/output/scan_20211012T110000Z.sarif.json"), file.GetAbsFilePath())
	assert.Equal(t, "scan_20211012T110000Z.sarif.json", file.GetFileName())
	assert.Equal(t, "scan_20211012T110000Z", file.GetFileNameWithoutExtension())
	assert.Equal(t, "sarif.json", file.GetFileNameExtension())
}

func TestFileNameWithoutDot(t *testing.T) {
	file := NewFile("/scans/report", newTestReport())

	assert.Equal(t, "report", file.GetFileNameWithoutExtension())
	assert.Equal(t, "", file.GetFileNameExtension())
}

func TestFileGetFilenameTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "single timestamp",
			path:     "/scans/scan_20211012T110000Z.sarif",
			expected: "20211012T110000Z",
		},
		{
			name:     "no timestamp",
			path:     "/scans/scan.sarif",
			expected: "",
		},
		{
			name:     "two timestamps are ambiguous",
			path:     "/scans/scan_20211012T110000Z_20211013T120000Z.sarif",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := NewFile(tt.path, newTestReport())
			assert.Equal(t, tt.expected, file.GetFilenameTimestamp())
		})
	}
}

func TestFileEmptiness(t *testing.T) {
	empty := NewFile("/scans/empty.sarif", newTestReport())
	assert.True(t, empty.IsEmpty())

	// A run with zero results still counts as present.
	withEmptyRun := NewFile("/scans/present.sarif", newTestReport(newTestRun("Semgrep")))
	assert.False(t, withEmptyRun.IsEmpty())
	assert.Equal(t, 0, withEmptyRun.GetResultCount())
}

func TestFileGetRunsKeepsDocumentOrder(t *testing.T) {
	file := NewFile("/scans/scan.sarif", newTestReport(
		newTestRun("Semgrep", newURIResult("rule-a", "error", "src/a.go", 1, "first")),
		newTestRun("Bandit", newURIResult("rule-b", "warning", "src/b.go", 2, "second")),
	))

	runs := file.GetRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, 0, runs[0].GetIndex())
	assert.Equal(t, "Semgrep", runs[0].GetToolName())
	assert.Equal(t, 1, runs[1].GetIndex())
	assert.Equal(t, "Bandit", runs[1].GetToolName())
}

func TestFileGetDistinctToolNames(t *testing.T) {
	file := NewFile("/scans/multi.sarif", newTestReport(
		newTestRun("Semgrep"),
		newTestRun("Bandit"),
		newTestRun("Semgrep"),
	))

	assert.Equal(t, []string{"Bandit", "Semgrep"}, file.GetDistinctToolNames())
}

func TestFileAggregatesAcrossRuns(t *testing.T) {
	file := NewFile("/scans/multi.sarif", newTestReport(
		newTestRun("Semgrep",
			newURIResult("E1", "error", "src/a.go", 1, "x"),
			newURIResult("W1", "warning", "src/b.go", 2, "x"),
		),
		newTestRun("Bandit",
			newURIResult("E1", "error", "src/c.py", 3, "x"),
		),
	))

	assert.Equal(t, 3, file.GetResultCount())
	assert.Len(t, file.GetResults(), 3)

	records, err := file.GetRecords()
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Runs are processed in index order.
	assert.Equal(t, "Semgrep", records[0].Tool)
	assert.Equal(t, "Bandit", records[2].Tool)

	counts, err := file.GetResultCountBySeverity()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		SeverityError:   2,
		SeverityWarning: 1,
		SeverityNote:    0,
	}, counts)

	histogram, err := file.GetIssueCodeHistogram(SeverityError)
	require.NoError(t, err)
	assert.Equal(t, []HistogramEntry{{Code: "E1 x", Count: 2}}, histogram)

	grouped, err := file.GetRecordsGroupedBySeverity()
	require.NoError(t, err)
	assert.Len(t, grouped[SeverityError], 2)
}

func TestFileInitPathPrefixStrippingForwardsToRuns(t *testing.T) {
	file := NewFile("/scans/multi.sarif", newTestReport(
		newTestRun("Semgrep",
			newURIResult("E1", "error", "/repo/src/a.go", 1, "x"),
			newURIResult("E2", "error", "/repo/src/b.go", 2, "x"),
		),
		newTestRun("Bandit",
			newURIResult("E3", "error", "/other/lib/c.py", 3, "x"),
		),
	))

	// Autotrim works per run, so each run infers its own prefix.
	require.NoError(t, file.InitPathPrefixStripping(true, nil))

	records, err := file.GetRecords()
	require.NoError(t, err)
	assert.Equal(t, "a.go", records[0].Location)
	assert.Equal(t, "b.go", records[1].Location)
	assert.Equal(t, "c.py", records[2].Location)
}
