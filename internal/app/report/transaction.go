package report

import (
	"strconv"

	"vault_reporter/internal/app/port"
	"vault_reporter/internal/domain/entity"
	"vault_reporter/internal/domain/payload"
)

const (
	TransactionReportName = "transaction"

	MsgNoTransactionData = "No transaction data available"
	TransactionBanner    = "\n🎯 Generated Transaction Blob:\n"

	actionNameLimit = 60
	nestedIndent    = "  "
)

// TransactionBlob lists the blob's own properties, then each action with its
// nested tx fields indented underneath.
func TransactionBlob(v payload.Value) Report {
	blob, ok := entity.NewTransactionBlob(v)
	if !ok {
		return message(TransactionReportName, MsgNoTransactionData)
	}

	var rows [][]string
	for _, prop := range blob.Properties() {
		rows = append(rows, []string{prop.Key, propertyValue(prop)})
	}

	if actions, ok := blob.Actions(); ok {
		rows = append(rows,
			spacerRow(),
			[]string{"Total Actions", strconv.Itoa(len(actions))},
			spacerRow(),
		)
		for i, action := range actions {
			rows = append(rows, actionRows(i+1, action)...)
			if i < len(actions)-1 {
				rows = append(rows, spacerRow())
			}
		}
	}

	if len(rows) == 0 {
		return message(TransactionReportName, MsgNoTransactionData)
	}

	return Report{
		Name:   TransactionReportName,
		Banner: TransactionBanner,
		Table: entity.Table{
			Headers:      []string{"Property", "Value"},
			Rows:         rows,
			MaxColWidths: []int{20, 60},
		},
	}
}

func propertyValue(f payload.Field) string {
	if f.Value.IsNull() {
		return NotAvailable
	}
	if s, ok := f.Value.Str(); ok && s == "" {
		return NotAvailable
	}
	return Truncate(f.Key, f.Value.Text())
}

func actionRows(index int, action entity.TransactionAction) [][]string {
	label := "Action " + strconv.Itoa(index)
	if !action.IsObject() {
		return [][]string{{label, Truncate("action", action.Raw().Text())}}
	}

	name, ok := action.Name()
	if !ok {
		name = label
	}
	rows := [][]string{{label, ShortenName(name, actionNameLimit)}}

	tx, _ := action.Tx()
	for _, f := range tx {
		rows = append(rows, []string{nestedIndent + f.Key, Truncate(f.Key, f.Value.Text())})
	}
	return rows
}

// FormatTransactionBlob renders the transaction report, or its fallback message.
func FormatTransactionBlob(v payload.Value, renderer port.TableRenderer) string {
	return TransactionBlob(v).Render(renderer)
}
