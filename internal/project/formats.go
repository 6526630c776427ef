package project

import (
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formats resolves the render format names for one input file: the
// project-level format declarations merged with the input's own YAML front
// matter. Notebooks carry no front matter this tool reads, so they resolve
// to the project-level formats only. Unreadable or malformed front matter
// degrades to the project-level formats.
func (p *Project) Formats(input string) []string {
	names := append([]string(nil), p.projectFormats...)

	ext := strings.ToLower(filepath.Ext(input))
	if ext == ".ipynb" {
		return names
	}

	data, err := p.ReadInput(input)
	if err != nil {
		return names
	}

	fm := frontMatter(string(data))
	if fm == "" {
		return names
	}

	var doc struct {
		Format interface{} `yaml:"format"`
	}
	if err := yaml.Unmarshal([]byte(fm), &doc); err != nil {
		return names
	}

	for _, name := range formatNames(doc.Format) {
		if !containsString(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// IsPDFFormat reports whether a format name produces PDF output. This covers
// the built-in pdf and beamer formats plus extension formats that render
// through them (e.g. titlepage-pdf).
func IsPDFFormat(name string) bool {
	lower := strings.ToLower(name)
	return lower == "pdf" || lower == "beamer" || strings.HasSuffix(lower, "-pdf")
}

// frontMatter extracts the YAML front matter block from a document, without
// the --- delimiters. Returns an empty string when the document has none.
func frontMatter(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return ""
	}
	rest := normalized[len("---\n"):]
	for _, delim := range []string{"\n---\n", "\n...\n"} {
		if idx := strings.Index(rest, delim); idx >= 0 {
			return rest[:idx]
		}
	}
	if strings.HasSuffix(rest, "\n---") || strings.HasSuffix(rest, "\n...") {
		return rest[:len(rest)-len("\n---")]
	}
	return ""
}

// formatNames normalizes a YAML format declaration into a list of format
// names. The declaration can be a single string ("pdf") or a mapping of
// format name to options. Mapping keys are sorted for determinism.
func formatNames(format interface{}) []string {
	switch v := format.(type) {
	case string:
		return []string{v}
	case map[string]interface{}:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	default:
		return nil
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
