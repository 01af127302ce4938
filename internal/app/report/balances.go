package report

import (
	"vault_reporter/internal/app/port"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
)

const (
	BalancesReportName = "balances"

	MsgIdleAssetsUnavailable = "No idle assets available"
	MsgNoIdleAssets          = "No idle assets found"
)

// Balances builds the idle-asset table: one row per asset, in input order.
func Balances(resp payload.Value) Report {
	assets, ok := entity.IdleAssets(resp)
	if !ok {
		return message(BalancesReportName, MsgIdleAssetsUnavailable)
	}
	if len(assets) == 0 {
		return message(BalancesReportName, MsgNoIdleAssets)
	}

	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		symbol := orNA(asset.Symbol())
		rows = append(rows, []string{
			symbol,
			FormatNative(asset.BalanceNative(), symbol),
			FormatUSD(asset.BalanceUSD()),
			asset.Network().NameOr(NotAvailable),
		})
	}

	return Report{
		Name: BalancesReportName,
		Table: entity.Table{
			Headers: []string{"Asset", "Balance", "Balance USD", "Network"},
			Rows:    rows,
		},
	}
}

// FormatUserBalances renders the idle-asset report, or its fallback message.
func FormatUserBalances(resp payload.Value, renderer port.TableRenderer) string {
	return Balances(resp).Render(renderer)
}
