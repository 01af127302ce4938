package report

import (
	"vault_reporter/internal/app/port"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
)

const (
	PositionsReportName = "positions"

	MsgPositionsUnavailable = "No positions available"
	MsgNoActivePositions    = "No active positions found"

	unknownVaultName      = "Unknown Vault"
	positionVaultNameSize = 16
)

// Positions builds one row per open position.
func Positions(resp payload.Value) Report {
	positions, ok := entity.Positions(resp)
	if !ok {
		return message(PositionsReportName, MsgPositionsUnavailable)
	}
	if len(positions) == 0 {
		return message(PositionsReportName, MsgNoActivePositions)
	}

	rows := make([][]string, 0, len(positions))
	for _, position := range positions {
		name, ok := position.Name()
		if !ok {
			name = unknownVaultName
		}
		asset := position.Asset()
		rows = append(rows, []string{
			position.Network().NameOr(NotAvailable),
			orNA(position.ProtocolName()),
			ShortenName(name, positionVaultNameSize),
			orNA(asset.Symbol()),
			FormatUSD(asset.BalanceUSD()),
			FormatPercent(position.APYTotal()),
		})
	}

	return Report{
		Name: PositionsReportName,
		Table: entity.Table{
			Headers: []string{"Network", "Protocol", "Vault Name", "Asset", "Balance USD", "APY"},
			Rows:    rows,
		},
	}
}

// FormatPositions renders the position report, or its fallback message.
func FormatPositions(resp payload.Value, renderer port.TableRenderer) string {
	return Positions(resp).Render(renderer)
}
