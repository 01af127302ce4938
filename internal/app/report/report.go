// Package report turns raw vaults API payloads into tables.
//
// Builders never fail: unusable fields become "N/A" and missing lists become a
// fixed message, so every payload yields something printable.
package report

import (
	"vault_reporter/internal/app/port"
	"vault_reporter/internal/domain/entity"
)

// Report is either a table (optionally preceded by a banner) or a message
// explaining why there is nothing to tabulate.
type Report struct {
	Name    string
	Banner  string
	Message string
	Table   entity.Table
}

// HasTable reports whether the builder produced rows.
func (r Report) HasTable() bool { return r.Message == "" }

// Render returns the printable form of the report.
func (r Report) Render(renderer port.TableRenderer) string {
	if !r.HasTable() {
		return r.Message
	}
	return r.Banner + renderer.Render(r.Table)
}

func message(name, msg string) Report {
	return Report{Name: name, Message: msg}
}

func spacerRow() []string { return []string{"", ""} }
