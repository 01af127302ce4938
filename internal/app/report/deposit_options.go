package report

import (
	"vault_reporter/internal/app/port"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
)

const (
	DepositOptionsReportName = "deposit-options"

	MsgNoDepositOptions = "No deposit options available"

	vaultNameLimit = 18
)

// DepositOptions builds one row per (held asset, eligible vault) pair.
// Rows keep the API order; nothing is re-ranked by APY.
func DepositOptions(resp payload.Value) Report {
	entries, ok := entity.UserBalances(resp)
	if !ok || len(entries) == 0 {
		return message(DepositOptionsReportName, MsgNoDepositOptions)
	}

	var rows [][]string
	for _, entry := range entries {
		options, _ := entry.DepositOptions()
		if len(options) == 0 {
			continue
		}
		asset := entry.Asset()
		symbol := orNA(asset.Symbol())
		balanceUSD := FormatUSD(asset.BalanceUSD())

		for _, option := range options {
			rows = append(rows, []string{
				symbol,
				balanceUSD,
				option.Network().NameOr(NotAvailable),
				ShortenName(orNA(option.Name()), vaultNameLimit),
				orNA(option.ProtocolName()),
				FormatPercent(option.APYTotal()),
			})
		}
	}
	if len(rows) == 0 {
		return message(DepositOptionsReportName, MsgNoDepositOptions)
	}

	return Report{
		Name: DepositOptionsReportName,
		Table: entity.Table{
			Headers: []string{"Asset", "Balance USD", "Network", "Vault Name", "Protocol", "APY"},
			Rows:    rows,
		},
	}
}

// FormatDepositOptions renders the deposit-option report, or its fallback message.
func FormatDepositOptions(resp payload.Value, renderer port.TableRenderer) string {
	return DepositOptions(resp).Render(renderer)
}
