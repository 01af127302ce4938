package port

import (
	"context"

	"vault_reporter/internal/domain/entity"
)

// WorkflowRunner drives the balances -> deposit options -> transaction -> positions pass.
type WorkflowRunner interface {
	// Run executes every step in order. A failing step is reported in the
	// summary and never stops the steps after it.
	Run(ctx context.Context) entity.RunSummary
}
