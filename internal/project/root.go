// Package project scans a Quarto project: it locates the project root,
// parses _quarto.yml, enumerates input documents, detects computation
// engines, and resolves the render formats for each input.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wellmaintained/quartainer/internal/errors"
)

// configNames are the recognized project configuration filenames, in
// priority order.
var configNames = []string{"_quarto.yml", "_quarto.yaml"}

// FindRoot walks up from dir looking for a _quarto.yml (or _quarto.yaml)
// file and returns the directory containing it. Returns a ValidationError
// when no project configuration is found up to the filesystem root.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.NewRuntimeError("failed to resolve directory", err)
	}

	current := abs
	for {
		for _, name := range configNames {
			if info, err := os.Stat(filepath.Join(current, name)); err == nil && !info.IsDir() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.NewValidationError(
				fmt.Sprintf("not a Quarto project: no _quarto.yml found in %s or any parent directory", abs),
				nil,
			)
		}
		current = parent
	}
}

// configPath returns the path of the project configuration file under root,
// or an empty string when none exists.
func configPath(root string) string {
	for _, name := range configNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
