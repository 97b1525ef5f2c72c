package interfaces

import (
	"context"

	domaintypes "progman/internal/domain/types"
)

// Resolver locates a program's source and the sources of everything it
// imports. Imports are returned in dependency order.
type Resolver interface {
	ResolveProgram(
		ctx context.Context,
		id domaintypes.ProgramID,
	) (domaintypes.Program, []domaintypes.Program, error)
}
