// Package loader discovers SARIF files on disk and parses them into the
// composite model. It is the only place that performs I/O; the model itself
// works on already parsed documents.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/sarif-view/sarif-view/pkg/sarif"
	"github.com/sarif-view/sarif-view/pkg/shared/files"
)

// LoadFile reads and parses a single SARIF file.
func LoadFile(path string) (*sarif.File, error) {
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	if err := files.ValidatePath(expanded); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", expanded, err)
	}
	report, err := gosarif.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", expanded, err)
	}
	return sarif.NewFile(expanded, report), nil
}

// LoadDir builds a file set from every SARIF file under dir, with one nested
// set per subdirectory. Files without a SARIF extension are skipped.
func LoadDir(dir string, logger hclog.Logger) (*sarif.FileSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}
	fileSet := sarif.NewFileSet()
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			subdir, err := LoadDir(path, logger)
			if err != nil {
				return nil, err
			}
			fileSet.AddDir(subdir)
			continue
		}
		if !sarif.HasSarifFileExtension(entry.Name()) {
			continue
		}
		logger.Debug("loading SARIF file", "path", path)
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		fileSet.AddFile(file)
	}
	return fileSet, nil
}

// Load assembles a file set from a mixed list of file and directory paths.
// Directory arguments become subdirectory sets; file arguments are loaded
// whatever their extension, since the caller named them explicitly.
func Load(paths []string, logger hclog.Logger) (*sarif.FileSet, error) {
	fileSet := sarif.NewFileSet()
	for _, path := range paths {
		expanded, err := files.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand path %q: %w", path, err)
		}
		info, err := os.Stat(expanded)
		if err != nil {
			return nil, fmt.Errorf("cannot access %q: %w", path, err)
		}
		if info.IsDir() {
			subdir, err := LoadDir(expanded, logger)
			if err != nil {
				return nil, err
			}
			fileSet.AddDir(subdir)
			continue
		}
		file, err := LoadFile(expanded)
		if err != nil {
			return nil, err
		}
		fileSet.AddFile(file)
	}
	return fileSet, nil
}
