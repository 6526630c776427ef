package devcontainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// DefaultPath is the standard devcontainer.json location relative to the
// project root.
var DefaultPath = filepath.Join(".devcontainer", "devcontainer.json")

// Load reads an existing devcontainer.json, stripping JSONC comments and
// trailing commas before parsing. Returns (nil, nil) when the file does not
// exist, since a missing file is the normal case for this tool.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// The devcontainer spec officially supports JSONC, so real-world files
	// frequently contain comments. Strip them before encoding/json sees the data.
	var spec Spec
	if err := json.Unmarshal(jsonc.ToJSON(data), &spec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &spec, nil
}

// Write serializes the spec as 2-space indented JSON and writes it to path,
// creating the parent directory if needed. The file ends with a newline.
func Write(path string, spec *Spec) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize devcontainer spec: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
