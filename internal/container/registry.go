// Package container infers a devcontainer configuration for a Quarto
// project. The Resolver maps observed project signals (input extensions,
// engines, dependency manifests, content hints) to a Context, which the
// feature mapper and command composer turn into a devcontainer spec.
package container

// CodeEnvironment is the editor/runtime target the generated container is
// tuned for.
type CodeEnvironment string

const (
	VSCode     CodeEnvironment = "vscode"
	RStudio    CodeEnvironment = "rstudio"
	JupyterLab CodeEnvironment = "jupyterlab"
)

// Tool is an auxiliary tool installed into the container alongside the
// base toolchain.
type Tool string

const (
	// ToolTinyTeX is required when any input renders to a PDF format.
	ToolTinyTeX Tool = "tinytex"

	// ToolChromium is required when any input embeds mermaid or graphviz
	// diagrams, which render through a headless browser.
	ToolChromium Tool = "chromium"
)

// Channel selects the Quarto release channel installed in the container.
type Channel string

const (
	ChannelRelease    Channel = "release"
	ChannelPrerelease Channel = "prerelease"
)

// DefaultTitle is the container name used when the project declares no title.
const DefaultTitle = "Devcontainer"

// Devcontainer feature identifiers.
const (
	featureRRig   = "ghcr.io/rocker-org/devcontainer-features/r-rig:1"
	featurePython = "ghcr.io/devcontainers/features/python:1"
	featureQuarto = "ghcr.io/rocker-org/devcontainer-features/quarto-cli:1"
	featureConda  = "ghcr.io/devcontainers/features/conda:1"
)

// EnvironmentSpec describes one recognized dependency-environment file: how
// to restore it inside the container and any extra features it requires.
type EnvironmentSpec struct {
	// File is the manifest filename looked up at the project root.
	File string

	// Restore is the shell command that installs the declared dependencies.
	// Empty means the manifest needs no restore step.
	Restore string

	// Features are extra devcontainer features required by this manifest,
	// merged into the feature map keyed by feature id.
	Features map[string]interface{}
}

// PortSpec is a forwarded port with its display label.
type PortSpec struct {
	Port  int
	Label string
}

// Registry holds the constant tables the resolver consults. It is injected
// rather than read from module-level singletons so tests can substitute
// entries.
type Registry struct {
	// Environments is the ordered set of recognized dependency manifests.
	// Detection order follows this slice, not filesystem discovery order.
	Environments []EnvironmentSpec

	// Images maps each code environment to its base container image.
	Images map[CodeEnvironment]string

	// Ports maps each code environment to the port its server listens on.
	// Environments absent from the map forward no ports.
	Ports map[CodeEnvironment]PortSpec

	// AttachCommands maps each code environment to the command run after
	// the editor attaches. Environments absent from the map run nothing.
	AttachCommands map[CodeEnvironment]string
}

// DefaultRegistry returns the built-in constant tables.
func DefaultRegistry() Registry {
	return Registry{
		Environments: []EnvironmentSpec{
			{
				File:    "renv.lock",
				Restore: `Rscript -e "renv::restore();"`,
			},
			{
				File:    "requirements.txt",
				Restore: "python3 -m pip install -r requirements.txt",
			},
			{
				File:    "environment.yml",
				Restore: "conda env update --file environment.yml",
				Features: map[string]interface{}{
					featureConda: map[string]interface{}{},
				},
			},
		},
		Images: map[CodeEnvironment]string{
			RStudio:    "ghcr.io/rocker-org/devcontainer/r-ver:4",
			VSCode:     "mcr.microsoft.com/devcontainers/base:ubuntu",
			JupyterLab: "mcr.microsoft.com/devcontainers/base:ubuntu",
		},
		Ports: map[CodeEnvironment]PortSpec{
			RStudio:    {Port: 8787, Label: "Rstudio"},
			JupyterLab: {Port: 8888, Label: "Jupyter"},
		},
		AttachCommands: map[CodeEnvironment]string{
			RStudio:    "sudo rstudio-server start",
			JupyterLab: "python3 -m pip install jupyterlab-quarto && python3 -m jupyterlab",
		},
	}
}
