package container

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wellmaintained/quartainer/internal/project"
)

// diagramHint matches a fenced code block opening a mermaid diagram. This is
// a substring scan, not a markdown parse; false positives and negatives are
// accepted. Graphviz blocks are caught separately by the literal "{dot}"
// check because the hint also appears outside fences.
var diagramHint = regexp.MustCompile("(?is)`{3,}\\{mermaid\\}")

// Context is the resolved container context for one run. It is built once
// by Resolve and then adjusted by the interactive confirmation steps before
// being assembled into a devcontainer spec.
type Context struct {
	// Title is the display name; empty until the title confirmation step,
	// after which DefaultTitle applies when the project declares none.
	Title string

	// Tools only grows during resolution, never shrinks.
	Tools []Tool

	// CodeEnvironment is chosen once during resolution and immutable after.
	CodeEnvironment CodeEnvironment

	// Engines is a copy of the project's computation engines.
	Engines []string

	// Quarto is the release channel, passed in rather than inferred.
	Quarto Channel

	// Environments lists detected dependency manifests in registry order.
	Environments []string

	// OpenFiles are workspace files opened automatically; for manuscript
	// projects the article comes first.
	OpenFiles []string

	// EnvVars are environment variables injected into the container.
	EnvVars map[string]string
}

// HasTool reports whether the named tool is required.
func (c *Context) HasTool(t Tool) bool {
	for _, have := range c.Tools {
		if have == t {
			return true
		}
	}
	return false
}

// HasEngine reports whether the named engine is in the context's engine set.
func (c *Context) HasEngine(name string) bool {
	for _, e := range c.Engines {
		if e == name {
			return true
		}
	}
	return false
}

func (c *Context) addTool(t Tool) {
	if !c.HasTool(t) {
		c.Tools = append(c.Tools, t)
	}
}

// Resolver infers a Context from a scanned project. Its constant tables are
// injected via the registry so tests can substitute them.
type Resolver struct {
	reg Registry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegistry replaces the default constant tables.
func WithRegistry(reg Registry) Option {
	return func(r *Resolver) {
		r.reg = reg
	}
}

// NewResolver creates a Resolver with the default registry.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{reg: DefaultRegistry()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the container context for a project. It has no side
// effects beyond reading input file contents for the diagram scan; read
// failures degrade to "tool not required".
func (r *Resolver) Resolve(p *project.Project, channel Channel) *Context {
	ctx := &Context{
		Title:   p.Title,
		Engines: append([]string(nil), p.Engines...),
		Quarto:  channel,
		EnvVars: map[string]string{},
	}

	if p.IsManuscript() {
		ctx.CodeEnvironment = manuscriptEnvironment(p)
		ctx.OpenFiles = append([]string{filepath.ToSlash(p.Article)}, ctx.OpenFiles...)
	} else {
		ctx.CodeEnvironment = majorityEnvironment(p)
	}

	r.scanTools(ctx, p)
	r.detectEnvironments(ctx, p.Root)

	return ctx
}

// manuscriptEnvironment picks the code environment from the designated
// article's extension: .qmd gets the qmd toolchain, anything else gets
// JupyterLab.
func manuscriptEnvironment(p *project.Project) CodeEnvironment {
	if strings.ToLower(filepath.Ext(p.Article)) == ".qmd" {
		return qmdEnvironment(p)
	}
	return JupyterLab
}

// majorityEnvironment compares the number of .qmd and .ipynb inputs. An
// ipynb majority selects JupyterLab; ties (including zero inputs) and qmd
// majorities select the qmd toolchain.
func majorityEnvironment(p *project.Project) CodeEnvironment {
	var qmd, ipynb int
	for _, input := range p.Inputs {
		switch strings.ToLower(filepath.Ext(input)) {
		case ".qmd":
			qmd++
		case ".ipynb":
			ipynb++
		}
	}
	if ipynb > qmd {
		return JupyterLab
	}
	return qmdEnvironment(p)
}

// qmdEnvironment is the toolchain for qmd-centric projects: RStudio when the
// knitr engine is in play, VS Code otherwise.
func qmdEnvironment(p *project.Project) CodeEnvironment {
	if p.HasEngine("knitr") {
		return RStudio
	}
	return VSCode
}

// scanTools makes a single pass over the inputs with two independent
// accumulators. A satisfied flag stops being recomputed while the other
// keeps scanning; the loop exits early only once both are set.
func (r *Resolver) scanTools(ctx *Context, p *project.Project) {
	var needTinyTeX, needChromium bool

	for _, input := range p.Inputs {
		if !needTinyTeX {
			for _, format := range p.Formats(input) {
				if project.IsPDFFormat(format) {
					needTinyTeX = true
					break
				}
			}
		}
		if !needChromium {
			if data, err := p.ReadInput(input); err == nil {
				needChromium = hasDiagramHint(string(data))
			}
		}
		if needTinyTeX && needChromium {
			break
		}
	}

	if needTinyTeX {
		ctx.addTool(ToolTinyTeX)
	}
	if needChromium {
		ctx.addTool(ToolChromium)
	}
}

// hasDiagramHint reports whether the content contains a mermaid fence or a
// graphviz {dot} marker, case-insensitively.
func hasDiagramHint(content string) bool {
	if diagramHint.MatchString(content) {
		return true
	}
	return strings.Contains(strings.ToLower(content), "{dot}")
}

// detectEnvironments appends each registry manifest present at the project
// root, in registry order.
func (r *Resolver) detectEnvironments(ctx *Context, root string) {
	for _, env := range r.reg.Environments {
		if info, err := os.Stat(filepath.Join(root, env.File)); err == nil && !info.IsDir() {
			ctx.Environments = append(ctx.Environments, env.File)
		}
	}
}
