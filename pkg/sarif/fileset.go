package sarif

import (
	"fmt"
	"sort"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// IndexError reports an out-of-range indexed access into a FileSet.
type IndexError struct {
	Index int
	Count int
}

// Error implements the error interface for IndexError.
func (e *IndexError) Error() string {
	return fmt.Sprintf("file index %d out of range for a set of %d files", e.Index, e.Count)
}

// FileSet is a composite of SARIF files: a set owns its direct files plus one
// nested set per subdirectory, and answers every aggregate query by merging
// across the whole tree. Subdirectories and files keep insertion order.
type FileSet struct {
	subdirs []*FileSet
	files   []*File
}

// NewFileSet returns an empty set.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// AddDir adds a nested set representing a subdirectory.
func (s *FileSet) AddDir(subdir *FileSet) {
	s.subdirs = append(s.subdirs, subdir)
}

// AddFile adds a single SARIF file to the set.
func (s *FileSet) AddFile(file *File) {
	s.files = append(s.files, file)
}

// IsEmpty reports whether the set holds no files at all. A direct file with
// zero runs still makes the set non-empty, even though it does not count
// towards Len.
func (s *FileSet) IsEmpty() bool {
	for _, subdir := range s.subdirs {
		if !subdir.IsEmpty() {
			return false
		}
	}
	return len(s.files) == 0
}

// Len returns the number of files with at least one run across the whole
// tree.
func (s *FileSet) Len() int {
	count := 0
	for _, subdir := range s.subdirs {
		count += subdir.Len()
	}
	for _, file := range s.files {
		if !file.IsEmpty() {
			count++
		}
	}
	return count
}

// Files flattens the tree into the sequence Len counts: subdirectories
// depth-first in insertion order, then direct files in insertion order,
// skipping files without runs.
func (s *FileSet) Files() []*File {
	var files []*File
	for _, subdir := range s.subdirs {
		files = append(files, subdir.Files()...)
	}
	for _, file := range s.files {
		if !file.IsEmpty() {
			files = append(files, file)
		}
	}
	return files
}

// At returns the file at the given position of the flattened sequence.
func (s *FileSet) At(index int) (*File, error) {
	files := s.Files()
	if index < 0 || index >= len(files) {
		return nil, &IndexError{Index: index, Count: len(files)}
	}
	return files[index], nil
}

// GetDescription names the set: the file name for a single-file set, the
// file count otherwise.
func (s *FileSet) GetDescription() string {
	count := s.Len()
	if count == 1 {
		if file, err := s.At(0); err == nil {
			return file.GetFileName()
		}
	}
	return fmt.Sprintf("%d files", count)
}

// InitPathPrefixStripping forwards the stripping configuration to every
// subdirectory and every direct file.
func (s *FileSet) InitPathPrefixStripping(autotrim bool, pathPrefixes []string) error {
	for _, subdir := range s.subdirs {
		if err := subdir.InitPathPrefixStripping(autotrim, pathPrefixes); err != nil {
			return err
		}
	}
	for _, file := range s.files {
		if err := file.InitPathPrefixStripping(autotrim, pathPrefixes); err != nil {
			return err
		}
	}
	return nil
}

// GetDistinctToolNames returns the deduplicated tool names across the whole
// tree, sorted alphabetically.
func (s *FileSet) GetDistinctToolNames() []string {
	seen := map[string]struct{}{}
	names := []string{}
	add := func(toolNames []string) {
		for _, name := range toolNames {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	for _, subdir := range s.subdirs {
		add(subdir.GetDistinctToolNames())
	}
	for _, file := range s.files {
		add(file.GetDistinctToolNames())
	}
	sort.Strings(names)
	return names
}

// GetResults returns the raw result objects of the whole tree, subdirectories
// first.
func (s *FileSet) GetResults() []*gosarif.Result {
	var results []*gosarif.Result
	for _, subdir := range s.subdirs {
		results = append(results, subdir.GetResults()...)
	}
	for _, file := range s.files {
		results = append(results, file.GetResults()...)
	}
	return results
}

// GetRecords returns the simplified records of the whole tree, subdirectories
// first.
func (s *FileSet) GetRecords() ([]*Record, error) {
	var records []*Record
	for _, subdir := range s.subdirs {
		subdirRecords, err := subdir.GetRecords()
		if err != nil {
			return nil, err
		}
		records = append(records, subdirRecords...)
	}
	for _, file := range s.files {
		fileRecords, err := file.GetRecords()
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}

// GetRecordsGroupedBySeverity returns the records of the whole tree grouped
// under each canonical severity.
func (s *FileSet) GetRecordsGroupedBySeverity() (map[string][]*Record, error) {
	records, err := s.GetRecords()
	if err != nil {
		return nil, err
	}
	return groupRecordsBySeverity(records), nil
}

// GetResultCount returns the total number of results across the whole tree.
func (s *FileSet) GetResultCount() int {
	count := 0
	for _, subdir := range s.subdirs {
		count += subdir.GetResultCount()
	}
	for _, file := range s.files {
		count += file.GetResultCount()
	}
	return count
}

// GetResultCountBySeverity returns the number of records per canonical
// severity across the whole tree.
func (s *FileSet) GetResultCountBySeverity() (map[string]int, error) {
	var counts []map[string]int
	for _, subdir := range s.subdirs {
		c, err := subdir.GetResultCountBySeverity()
		if err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	for _, file := range s.files {
		c, err := file.GetResultCountBySeverity()
		if err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return mergeSeverityCounts(counts), nil
}

// GetIssueCodeHistogram returns (code, count) pairs for the records of the
// whole tree with the given severity, most frequent first.
func (s *FileSet) GetIssueCodeHistogram(severity string) ([]HistogramEntry, error) {
	records, err := s.GetRecords()
	if err != nil {
		return nil, err
	}
	return countRecordsByIssueCode(records, severity), nil
}
