package container

import (
	"github.com/wellmaintained/quartainer/pkg/devcontainer"
)

// Assemble builds the final devcontainer spec from a validated context.
// Empty commands, ports, open files, and env vars are left unset so they
// are omitted from the serialized document.
func (r *Resolver) Assemble(ctx *Context) *devcontainer.Spec {
	name := ctx.Title
	if name == "" {
		name = DefaultTitle
	}

	spec := &devcontainer.Spec{
		Name:              name,
		Image:             r.Image(ctx),
		Features:          r.Features(ctx),
		PostCreateCommand: r.PostCreate(ctx),
		PostAttachCommand: r.PostAttach(ctx),
	}

	for _, port := range r.Ports(ctx) {
		spec.ForwardPorts = append(spec.ForwardPorts, port.Port)
		require := true
		spec.SetPortAttributes(port.Port, devcontainer.PortAttributes{
			Label:            port.Label,
			RequireLocalPort: &require,
			OnAutoForward:    "ignore",
		})
	}

	if len(ctx.OpenFiles) > 0 {
		spec.Codespaces = &devcontainer.Codespaces{
			OpenFiles: append([]string(nil), ctx.OpenFiles...),
		}
	}

	if len(ctx.EnvVars) > 0 {
		spec.ContainerEnv = ctx.EnvVars
	}

	return spec
}
