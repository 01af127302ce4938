package port

import (
	"context"

	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
)

// VaultsClient defines the calls made against the vaults yield API.
// Payloads are returned undecoded so that formatters can tolerate any shape.
type VaultsClient interface {
	// GetIdleAssets fetches tokens held by userAddress that are not deposited anywhere.
	GetIdleAssets(ctx context.Context, userAddress string) (payload.Value, error)

	// GetDepositOptions fetches vaults each held asset can be deposited into,
	// restricted to the given asset symbols when the list is non-empty.
	GetDepositOptions(ctx context.Context, userAddress string, allowedAssets []string) (payload.Value, error)

	// GetPositions fetches the user's open vault positions.
	GetPositions(ctx context.Context, userAddress string) (payload.Value, error)

	// GetActions asks the API to generate the transactions for an action such as a deposit.
	GetActions(ctx context.Context, req entity.ActionRequest) (payload.Value, error)
}

// TableRenderer draws a table as boxed text.
type TableRenderer interface {
	Render(t entity.Table) string
}
