// Package blame enriches simplified SARIF records with git authorship for
// the lines they point at.
package blame

import (
	"fmt"
	"strconv"

	git "github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"

	"github.com/sarif-view/sarif-view/pkg/sarif"
)

// Annotation is the git authorship of the line a record points at.
type Annotation struct {
	Author string
	Hash   string
}

// AnnotatedRecord pairs a record with its blame annotation. The annotation is
// nil when the record's file or line could not be blamed.
type AnnotatedRecord struct {
	*sarif.Record
	Annotation *Annotation
}

// AnnotateRecords blames each record's file in the repository at repoPath and
// attaches the author of the record's line. Record locations must be relative
// to the repository root, which path prefix stripping normally arranges.
// Records whose path or line cannot be blamed pass through unannotated.
func AnnotateRecords(repoPath string, records []*sarif.Record, logger hclog.Logger) ([]AnnotatedRecord, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", repoPath, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	blames := map[string]*git.BlameResult{}
	annotated := make([]AnnotatedRecord, 0, len(records))
	for _, record := range records {
		result, ok := blames[record.Location]
		if !ok {
			result, err = git.Blame(commit, record.Location)
			if err != nil {
				logger.Debug("cannot blame file", "path", record.Location, "err", err)
				result = nil
			}
			blames[record.Location] = result
		}
		annotated = append(annotated, AnnotatedRecord{
			Record:     record,
			Annotation: annotationForLine(result, record.Line),
		})
	}
	return annotated, nil
}

// annotationForLine picks the blame line matching a record's 1-based line
// number, or nil when the blame result does not cover it.
func annotationForLine(result *git.BlameResult, line string) *Annotation {
	if result == nil {
		return nil
	}
	number, err := strconv.Atoi(line)
	if err != nil || number < 1 || number > len(result.Lines) {
		return nil
	}
	blameLine := result.Lines[number-1]
	return &Annotation{
		Author: blameLine.Author,
		Hash:   blameLine.Hash.String(),
	}
}
