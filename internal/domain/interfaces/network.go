package interfaces

import (
	"context"

	domaintypes "progman/internal/domain/types"
)

// ProgramFetcher retrieves program source text from a network.
type ProgramFetcher interface {
	FetchProgram(ctx context.Context, id domaintypes.ProgramID) (string, error)
}

// NetworkClient is how we talk to a network's API endpoint.
type NetworkClient interface {
	ProgramFetcher
	BroadcastTransaction(
		ctx context.Context,
		tx domaintypes.Transaction,
	) (domaintypes.TransactionID, error)
}
