package container

import "strings"

// PostCreate composes the container's post-create command: the restore
// command of each detected environment manifest, in detection order, joined
// with " && ". Manifests without a restore command are skipped. Returns an
// empty string when nothing applies.
func (r *Resolver) PostCreate(ctx *Context) string {
	var commands []string
	for _, file := range ctx.Environments {
		for _, env := range r.reg.Environments {
			if env.File == file && env.Restore != "" {
				commands = append(commands, env.Restore)
			}
		}
	}
	return strings.Join(commands, " && ")
}

// PostAttach returns the command run after the editor attaches: the server
// start command for the context's code environment, or an empty string when
// the environment needs none.
func (r *Resolver) PostAttach(ctx *Context) string {
	return r.reg.AttachCommands[ctx.CodeEnvironment]
}

// Ports returns the ports forwarded for the context's code environment.
func (r *Resolver) Ports(ctx *Context) []PortSpec {
	if spec, ok := r.reg.Ports[ctx.CodeEnvironment]; ok {
		return []PortSpec{spec}
	}
	return nil
}
