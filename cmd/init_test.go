package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellmaintained/quartainer/internal/container"
	"github.com/wellmaintained/quartainer/internal/errors"
	"github.com/wellmaintained/quartainer/internal/prompt"
	"github.com/wellmaintained/quartainer/pkg/devcontainer"
)

// writeProject creates a project directory from a map of relative path to
// file contents and returns its root.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestInitFlags(t *testing.T) {
	assert.NotNil(t, initCmd.Flags().Lookup("no-prompt"))
	assert.NotNil(t, initCmd.Flags().Lookup("channel"))

	noPrompt, _ := initCmd.Flags().GetBool("no-prompt")
	assert.False(t, noPrompt)

	channel, _ := initCmd.Flags().GetString("channel")
	assert.Equal(t, "release", channel)
}

func TestInitChannelValidation(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		wantErr bool
	}{
		{name: "release", channel: "release", wantErr: false},
		{name: "prerelease", channel: "prerelease", wantErr: false},
		{name: "unknown channel", channel: "nightly", wantErr: true},
		{name: "empty channel", channel: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			initChannel = tt.channel
			err := initCmd.PreRunE(initCmd, []string{})

			if tt.wantErr {
				require.Error(t, err)
				var verr *errors.ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	initChannel = "release"
}

func TestGenerateKnitrProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml": "project:\n  title: Field Notes\n",
		"report.qmd":  "---\nformat: pdf\n---\n\n```{r}\nsummary(cars)\n```\n",
		"renv.lock":   "{}",
	})

	var out bytes.Buffer
	err := generate(root, container.ChannelRelease, &prompt.Script{}, &out)
	require.NoError(t, err)

	spec, err := devcontainer.Load(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, err)
	require.NotNil(t, spec)

	assert.Equal(t, "Field Notes", spec.Name)
	assert.Equal(t, "ghcr.io/rocker-org/devcontainer/r-ver:4", spec.Image)
	assert.Equal(t, `Rscript -e "renv::restore();"`, spec.PostCreateCommand)
	assert.Equal(t, "sudo rstudio-server start", spec.PostAttachCommand)
	assert.Equal(t, []int{8787}, spec.ForwardPorts)
	assert.Contains(t, spec.Features, "ghcr.io/rocker-org/devcontainer-features/r-rig:1")
	assert.Contains(t, spec.Features, "ghcr.io/rocker-org/devcontainer-features/quarto-cli:1")

	// The summary table was rendered for confirmation.
	assert.Contains(t, out.String(), "rstudio")
	assert.Contains(t, out.String(), "renv.lock")
}

func TestGenerateJupyterProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml":      "project:\n  title: Notebooks\n",
		"a.ipynb":          "{}",
		"b.ipynb":          "{}",
		"requirements.txt": "pandas\n",
	})

	var out bytes.Buffer
	err := generate(root, container.ChannelRelease, &prompt.Script{}, &out)
	require.NoError(t, err)

	spec, err := devcontainer.Load(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, err)
	require.NotNil(t, spec)

	assert.Equal(t, "mcr.microsoft.com/devcontainers/base:ubuntu", spec.Image)
	assert.Equal(t, "python3 -m pip install -r requirements.txt", spec.PostCreateCommand)
	assert.Equal(t, "python3 -m pip install jupyterlab-quarto && python3 -m jupyterlab",
		spec.PostAttachCommand)
	assert.Equal(t, []int{8888}, spec.ForwardPorts)
}

func TestGenerateManuscript(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml": `project:
  type: manuscript
manuscript:
  article: paper.ipynb
`,
		"paper.ipynb":      "{}",
		"requirements.txt": "matplotlib\n",
	})

	var out bytes.Buffer
	err := generate(root, container.ChannelRelease, &prompt.Script{}, &out)
	require.NoError(t, err)

	spec, err := devcontainer.Load(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, err)
	require.NotNil(t, spec)
	require.NotNil(t, spec.Codespaces)
	assert.Equal(t, []string{"paper.ipynb"}, spec.Codespaces.OpenFiles)
	assert.Equal(t, []int{8888}, spec.ForwardPorts)
}

func TestGenerateTitleOverride(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml":      "project:\n  title: Original\n",
		"index.qmd":        "# Home\n",
		"requirements.txt": "requests\n",
	})

	var out bytes.Buffer
	script := &prompt.Script{Inputs: []string{"Renamed"}}
	err := generate(root, container.ChannelRelease, script, &out)
	require.NoError(t, err)

	spec, err := devcontainer.Load(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, "Renamed", spec.Name)
}

func TestGenerateDefaultTitle(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml":      "project:\n  type: default\n",
		"index.qmd":        "# Home\n",
		"requirements.txt": "requests\n",
	})

	var out bytes.Buffer
	err := generate(root, container.ChannelRelease, &prompt.Script{}, &out)
	require.NoError(t, err)

	spec, err := devcontainer.Load(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, container.DefaultTitle, spec.Name)
}

func TestGenerateDeclineIsSilentNoop(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml":      "project:\n  title: Demo\n",
		"index.qmd":        "# Home\n",
		"requirements.txt": "requests\n",
	})

	var out bytes.Buffer
	script := &prompt.Script{Confirms: []bool{false}}
	err := generate(root, container.ChannelRelease, script, &out)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(root, devcontainer.DefaultPath))
	assert.True(t, os.IsNotExist(statErr), "declined run must not write anything")
}

func TestGenerateDeclineOverwriteKeepsFile(t *testing.T) {
	existing := `{
  // hand-tuned, do not regenerate
  "name": "Precious",
}`
	root := writeProject(t, map[string]string{
		"_quarto.yml":                     "project:\n  title: Demo\n",
		"index.qmd":                       "# Home\n",
		"requirements.txt":                "requests\n",
		".devcontainer/devcontainer.json": existing,
	})

	var out bytes.Buffer
	script := &prompt.Script{Confirms: []bool{true, false}}
	err := generate(root, container.ChannelRelease, script, &out)
	require.NoError(t, err)

	data, readErr := os.ReadFile(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, readErr)
	assert.Equal(t, existing, string(data))
}

func TestGenerateNoPromptNeverOverwrites(t *testing.T) {
	existing := `{"name": "Precious"}`
	root := writeProject(t, map[string]string{
		"_quarto.yml":                     "project:\n  title: Demo\n",
		"index.qmd":                       "# Home\n",
		"requirements.txt":                "requests\n",
		".devcontainer/devcontainer.json": existing,
	})

	var out bytes.Buffer
	err := generate(root, container.ChannelRelease, prompt.AutoAccept{}, &out)
	require.NoError(t, err)

	data, readErr := os.ReadFile(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, readErr)
	assert.Equal(t, existing, string(data))
}

func TestGenerateOverwriteAccepted(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml":                     "project:\n  title: Demo\n",
		"index.qmd":                       "# Home\n",
		"requirements.txt":                "requests\n",
		".devcontainer/devcontainer.json": `{"name": "Old"}`,
	})

	var out bytes.Buffer
	script := &prompt.Script{Confirms: []bool{true, true, true}}
	err := generate(root, container.ChannelRelease, script, &out)
	require.NoError(t, err)

	spec, err := devcontainer.Load(filepath.Join(root, devcontainer.DefaultPath))
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, "Demo", spec.Name)
}

func TestGenerateNoEnvironmentFails(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml": "project:\n  title: Demo\n",
		"index.qmd":   "# Home\n",
	})

	var out bytes.Buffer
	err := generate(root, container.ChannelRelease, &prompt.Script{}, &out)
	require.Error(t, err)

	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, errors.GetExitCode(err))
}

func TestGenerateOutsideProjectFails(t *testing.T) {
	var out bytes.Buffer
	err := generate(t.TempDir(), container.ChannelRelease, &prompt.Script{}, &out)
	require.Error(t, err)

	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGenerateFromNestedDirectory(t *testing.T) {
	root := writeProject(t, map[string]string{
		"_quarto.yml":      "project:\n  title: Demo\n",
		"posts/intro.qmd":  "# Intro\n",
		"requirements.txt": "requests\n",
	})

	var out bytes.Buffer
	err := generate(filepath.Join(root, "posts"), container.ChannelRelease, &prompt.Script{}, &out)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(root, devcontainer.DefaultPath))
	assert.NoError(t, statErr, "file must be written at the project root")
}
