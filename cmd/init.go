package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wellmaintained/quartainer/internal/container"
	"github.com/wellmaintained/quartainer/internal/errors"
	"github.com/wellmaintained/quartainer/internal/project"
	"github.com/wellmaintained/quartainer/internal/prompt"
	"github.com/wellmaintained/quartainer/internal/ui"
	"github.com/wellmaintained/quartainer/pkg/devcontainer"
)

var (
	initNoPrompt bool
	initChannel  string
)

var initCmd = &cobra.Command{
	Use:   "init [flags]",
	Short: "Generate a devcontainer configuration for the current project",
	Long: `Generate .devcontainer/devcontainer.json for the Quarto project
containing the current directory.

The init command inspects the project's input files and computation engines,
infers a code environment (VS Code, RStudio, or JupyterLab), detects
dependency environment files, and writes a devcontainer configuration after
interactive confirmation.

At least one dependency environment file (renv.lock, requirements.txt, or
environment.yml) must exist at the project root; without one the generated
container would have no way to restore dependencies.`,
	Example: `  # Generate interactively
  quartainer init

  # Accept every default without prompting
  quartainer init --no-prompt

  # Track the Quarto prerelease channel
  quartainer init --channel prerelease`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if initChannel != string(container.ChannelRelease) && initChannel != string(container.ChannelPrerelease) {
			return errors.NewValidationError(
				fmt.Sprintf("invalid --channel %q (must be %q or %q)",
					initChannel, container.ChannelRelease, container.ChannelPrerelease),
				nil,
			)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInit(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(errors.GetExitCode(err))
		}
	},
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.NewRuntimeError("failed to determine working directory", err)
	}

	var prompter prompt.Prompter = prompt.NewStdio(os.Stdin, os.Stderr)
	if initNoPrompt {
		prompter = prompt.AutoAccept{}
	}

	return generate(cwd, container.Channel(initChannel), prompter, os.Stdout)
}

// generate runs the whole flow: scan, resolve, confirm, validate, assemble,
// confirm, write. A declined confirmation is a normal early return; the only
// filesystem mutation happens at the very end, after every confirmation has
// passed.
func generate(dir string, channel container.Channel, prompter prompt.Prompter, out io.Writer) error {
	root, err := project.FindRoot(dir)
	if err != nil {
		return err
	}

	proj, err := project.Load(root)
	if err != nil {
		return err
	}

	resolver := container.NewResolver()
	ctx := resolver.Resolve(proj, channel)

	defaultTitle := ctx.Title
	if defaultTitle == "" {
		defaultTitle = container.DefaultTitle
	}
	title, err := prompter.Input("Container title", defaultTitle)
	if err != nil {
		return errors.NewRuntimeError("failed to read answer", err)
	}
	ctx.Title = title

	printSummary(out, ctx)
	proceed, err := prompter.Confirm("Generate a devcontainer with this configuration?", true)
	if err != nil {
		return errors.NewRuntimeError("failed to read answer", err)
	}
	if !proceed {
		return nil
	}

	if err := resolver.Validate(ctx); err != nil {
		return err
	}

	spec := resolver.Assemble(ctx)
	path := filepath.Join(root, devcontainer.DefaultPath)

	existing, loadErr := devcontainer.Load(path)
	if existing != nil || loadErr != nil {
		if existing != nil && existing.Name != "" {
			ui.Warning("%s already exists (name: %q)\n", devcontainer.DefaultPath, existing.Name)
		} else {
			ui.Warning("%s already exists\n", devcontainer.DefaultPath)
		}
		overwrite, err := prompter.Confirm("Overwrite the existing file?", false)
		if err != nil {
			return errors.NewRuntimeError("failed to read answer", err)
		}
		if !overwrite {
			return nil
		}
	}

	write, err := prompter.Confirm(fmt.Sprintf("Write %s?", devcontainer.DefaultPath), true)
	if err != nil {
		return errors.NewRuntimeError("failed to read answer", err)
	}
	if !write {
		return nil
	}

	if err := devcontainer.Write(path, spec); err != nil {
		return errors.NewRuntimeError("failed to write devcontainer configuration", err)
	}

	ui.Success("Created %s\n", devcontainer.DefaultPath)
	return nil
}

// printSummary renders the resolved context as a key/value table so the user
// can review it before confirming.
func printSummary(out io.Writer, ctx *container.Context) {
	tools := make([]string, 0, len(ctx.Tools))
	for _, tool := range ctx.Tools {
		tools = append(tools, string(tool))
	}

	ui.PrintKeyValues(out, [][2]string{
		{"Title", ctx.Title},
		{"Code environment", string(ctx.CodeEnvironment)},
		{"Engines", strings.Join(ctx.Engines, ", ")},
		{"Tools", strings.Join(tools, ", ")},
		{"Quarto channel", string(ctx.Quarto)},
		{"Environment files", strings.Join(ctx.Environments, ", ")},
		{"Open files", strings.Join(ctx.OpenFiles, ", ")},
	})
}

func init() {
	initCmd.Flags().BoolVar(&initNoPrompt, "no-prompt", false, "Accept every default without asking")
	initCmd.Flags().StringVar(&initChannel, "channel", string(container.ChannelRelease), "Quarto release channel (release or prerelease)")
}
