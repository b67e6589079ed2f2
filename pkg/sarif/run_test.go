package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGetToolNameAndResults(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "src/a.go", 10, "bad call"),
		newURIResult("rule-b", "warning", "src/b.go", 20, "odd cast"),
	))

	assert.Equal(t, "Semgrep", run.GetToolName())
	assert.Len(t, run.GetResults(), 2)
	assert.Equal(t, 2, run.GetResultCount())
}

func TestRunGetRecordsIsCached(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "src/a.go", 10, "bad call"),
	))

	first, err := run.GetRecords()
	require.NoError(t, err)
	second, err := run.GetRecords()
	require.NoError(t, err)

	require.Len(t, first, 1)
	// Same backing slice until the stripping configuration changes.
	assert.Equal(t, first, second)
	assert.Same(t, first[0], second[0])
}

func TestRunInitPathPrefixStrippingInvalidatesCache(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "/repo/src/a.go", 10, "bad call"),
		newURIResult("rule-b", "warning", "/repo/src/b.go", 20, "odd cast"),
	))

	records, err := run.GetRecords()
	require.NoError(t, err)
	assert.Equal(t, "/repo/src/a.go", records[0].Location)

	require.NoError(t, run.InitPathPrefixStripping(true, nil))

	records, err = run.GetRecords()
	require.NoError(t, err)
	assert.Equal(t, "a.go", records[0].Location)
	assert.Equal(t, "b.go", records[1].Location)

	// Reconfiguring back to no stripping recomputes rather than reusing the
	// stale cache.
	require.NoError(t, run.InitPathPrefixStripping(false, nil))
	records, err = run.GetRecords()
	require.NoError(t, err)
	assert.Equal(t, "/repo/src/a.go", records[0].Location)
}

func TestRunInitPathPrefixStrippingExplicitPrefixes(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "/repo/src/a.go", 10, "bad call"),
	))

	require.NoError(t, run.InitPathPrefixStripping(false, []string{"/repo"}))

	records, err := run.GetRecords()
	require.NoError(t, err)
	assert.Equal(t, "src/a.go", records[0].Location)
}

func TestRunGetRecordsGroupedBySeverity(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "src/a.go", 1, "first"),
		newURIResult("rule-b", "warning", "src/b.go", 2, "second"),
		newURIResult("rule-c", "error", "src/c.go", 3, "third"),
		newURIResult("rule-d", "none", "src/d.go", 4, "dropped"),
	))

	grouped, err := run.GetRecordsGroupedBySeverity()
	require.NoError(t, err)

	require.Len(t, grouped, 3)
	assert.Len(t, grouped[SeverityError], 2)
	assert.Len(t, grouped[SeverityWarning], 1)
	assert.Empty(t, grouped[SeverityNote])
	// Record order is preserved within a group.
	assert.Equal(t, "rule-a first", grouped[SeverityError][0].Code)
	assert.Equal(t, "rule-c third", grouped[SeverityError][1].Code)
}

func TestRunGetResultCountBySeverity(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "src/a.go", 1, "first"),
		newURIResult("rule-b", "error", "src/b.go", 2, "second"),
		newURIResult("rule-c", "warning", "src/c.go", 3, "third"),
	))

	counts, err := run.GetResultCountBySeverity()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		SeverityError:   2,
		SeverityWarning: 1,
		SeverityNote:    0,
	}, counts)
}

func TestRunGetResultCountBySeverityCountsByContainment(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("rule-a", "error", "src/a.go", 1, "first"),
		newURIResult("rule-b", "new-error-x", "src/b.go", 2, "second"),
	))

	// A severity string that merely contains a canonical name still counts
	// under it, even though grouping drops the same record.
	counts, err := run.GetResultCountBySeverity()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		SeverityError:   2,
		SeverityWarning: 0,
		SeverityNote:    0,
	}, counts)

	grouped, err := run.GetRecordsGroupedBySeverity()
	require.NoError(t, err)
	require.Len(t, grouped[SeverityError], 1)
	assert.Equal(t, "rule-a first", grouped[SeverityError][0].Code)
}

func TestRunGetIssueCodeHistogram(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("E1", "error", "src/a.go", 1, "x"),
		newURIResult("E2", "error", "src/b.go", 2, "x"),
		newURIResult("E1", "error", "src/c.go", 3, "x"),
		newURIResult("W1", "warning", "src/d.go", 4, "x"),
	))

	histogram, err := run.GetIssueCodeHistogram(SeverityError)
	require.NoError(t, err)
	assert.Equal(t, []HistogramEntry{
		{Code: "E1 x", Count: 2},
		{Code: "E2 x", Count: 1},
	}, histogram)

	histogram, err = run.GetIssueCodeHistogram(SeverityNote)
	require.NoError(t, err)
	assert.Empty(t, histogram)
}

func TestRunGetIssueCodeHistogramTieKeepsFirstEncounteredOrder(t *testing.T) {
	run := newRun(0, newTestRun("Semgrep",
		newURIResult("E2", "error", "src/a.go", 1, "x"),
		newURIResult("E1", "error", "src/b.go", 2, "x"),
	))

	histogram, err := run.GetIssueCodeHistogram(SeverityError)
	require.NoError(t, err)
	assert.Equal(t, []HistogramEntry{
		{Code: "E2 x", Count: 1},
		{Code: "E1 x", Count: 1},
	}, histogram)
}

func TestRunExtractionFailureAbortsRun(t *testing.T) {
	run := newRun(0, newTestRun("SpotBugs",
		newURIResult("rule-a", "error", "src/a.java", 1, "fine"),
		// Second result carries no location source at all.
		newLocationlessResult("broken-rule", "nowhere"),
	))

	_, err := run.GetRecords()
	require.Error(t, err)
	assert.ErrorContains(t, err, "no location in broken-rule output from SpotBugs")

	_, err = run.GetRecordsGroupedBySeverity()
	require.Error(t, err)
	_, err = run.GetResultCountBySeverity()
	require.Error(t, err)
	_, err = run.GetIssueCodeHistogram(SeverityError)
	require.Error(t, err)
	// The raw result count is unaffected by extraction failures.
	assert.Equal(t, 2, run.GetResultCount())
}
