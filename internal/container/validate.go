package container

import (
	"fmt"
	"strings"

	"github.com/wellmaintained/quartainer/internal/errors"
)

// Validate checks that a devcontainer can be generated from the context.
// The only fatal condition is an empty environment list: without a known
// dependency manifest the container would have no restore mechanism. All
// other fields have safe defaults.
func (r *Resolver) Validate(ctx *Context) error {
	if len(ctx.Environments) == 0 {
		known := make([]string, 0, len(r.reg.Environments))
		for _, env := range r.reg.Environments {
			known = append(known, env.File)
		}
		return errors.NewValidationError(
			fmt.Sprintf("no dependency environment file found (expected one of: %s)",
				strings.Join(known, ", ")),
			nil,
		)
	}
	return nil
}
