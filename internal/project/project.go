package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wellmaintained/quartainer/internal/errors"
)

// TypeManuscript is the project type with one designated primary article
// file driving the overall tooling choice.
const TypeManuscript = "manuscript"

// inputExtensions are the file extensions recognized as render inputs.
// Compared case-insensitively so .Rmd and .rmd both match.
var inputExtensions = map[string]bool{
	".qmd":   true,
	".ipynb": true,
	".md":    true,
	".rmd":   true,
}

// quartoConfig mirrors the subset of _quarto.yml this tool reads.
type quartoConfig struct {
	Project struct {
		Title string `yaml:"title"`
		Type  string `yaml:"type"`
	} `yaml:"project"`
	Manuscript struct {
		Article string `yaml:"article"`
	} `yaml:"manuscript"`
	Title  string      `yaml:"title"`
	Engine string      `yaml:"engine"`
	Format interface{} `yaml:"format"`
}

// Project describes a scanned Quarto project. Inputs are paths relative to
// Root; Engines is an ordered set.
type Project struct {
	Root    string
	Title   string
	Type    string
	Article string
	Engines []string
	Inputs  []string

	projectFormats []string
}

// Load scans the project rooted at root: it parses the configuration file,
// enumerates input documents, and detects computation engines.
func Load(root string) (*Project, error) {
	path := configPath(root)
	if path == "" {
		return nil, errors.NewValidationError(
			fmt.Sprintf("not a Quarto project: no _quarto.yml found in %s", root), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewRuntimeError("failed to read project configuration", err)
	}

	var cfg quartoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewRuntimeError(fmt.Sprintf("failed to parse %s", path), err)
	}

	p := &Project{
		Root:           root,
		Title:          cfg.Project.Title,
		Type:           cfg.Project.Type,
		Article:        cfg.Manuscript.Article,
		projectFormats: formatNames(cfg.Format),
	}
	if p.Title == "" {
		p.Title = cfg.Title
	}

	if err := p.scanInputs(); err != nil {
		return nil, err
	}
	p.detectEngines(cfg.Engine)

	return p, nil
}

// IsManuscript reports whether the project is a manuscript project with a
// designated article file.
func (p *Project) IsManuscript() bool {
	return p.Type == TypeManuscript && p.Article != ""
}

// ReadInput returns the raw contents of an input file, by its
// root-relative path.
func (p *Project) ReadInput(input string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Root, input))
}

// scanInputs walks the project tree collecting render inputs. Hidden
// directories, directories starting with "_" (such as _site), and
// .devcontainer are skipped.
func (p *Project) scanInputs() error {
	err := filepath.WalkDir(p.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != p.Root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !inputExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		rel, relErr := filepath.Rel(p.Root, path)
		if relErr != nil {
			return relErr
		}
		p.Inputs = append(p.Inputs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return errors.NewRuntimeError("failed to scan project inputs", err)
	}
	sort.Strings(p.Inputs)
	return nil
}

// detectEngines fills Engines. An explicit engine declaration in _quarto.yml
// wins; otherwise engines are inferred from the inputs: R Markdown files or
// {r} code cells imply knitr, notebooks or jupyter front matter imply jupyter.
func (p *Project) detectEngines(explicit string) {
	if explicit != "" {
		// The markdown engine means no compute at all.
		if explicit != "markdown" {
			p.Engines = []string{explicit}
		}
		return
	}

	var knitr, jupyter bool
	for _, input := range p.Inputs {
		ext := strings.ToLower(filepath.Ext(input))
		switch ext {
		case ".rmd":
			knitr = true
		case ".ipynb":
			jupyter = true
		case ".qmd", ".md":
			if knitr && jupyter {
				break
			}
			data, err := p.ReadInput(input)
			if err != nil {
				continue
			}
			content := string(data)
			if !knitr && strings.Contains(content, "```{r") {
				knitr = true
			}
			if !jupyter && (strings.Contains(content, "```{python") || hasJupyterFrontMatter(content)) {
				jupyter = true
			}
		}
		if knitr && jupyter {
			break
		}
	}

	if knitr {
		p.Engines = append(p.Engines, "knitr")
	}
	if jupyter {
		p.Engines = append(p.Engines, "jupyter")
	}
}

// HasEngine reports whether the named engine is declared for the project.
func (p *Project) HasEngine(name string) bool {
	for _, e := range p.Engines {
		if e == name {
			return true
		}
	}
	return false
}

// hasJupyterFrontMatter checks for a jupyter: key in the document's YAML
// front matter.
func hasJupyterFrontMatter(content string) bool {
	fm := frontMatter(content)
	if fm == "" {
		return false
	}
	var doc struct {
		Jupyter interface{} `yaml:"jupyter"`
	}
	if err := yaml.Unmarshal([]byte(fm), &doc); err != nil {
		return false
	}
	return doc.Jupyter != nil
}
