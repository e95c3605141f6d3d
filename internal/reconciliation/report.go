package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertHorizonDays is how far ahead a pending invoice's due date may be for
// it to appear in the alerts output.
const AlertHorizonDays = 7

// DisplayDateFormat renders dates the way the report expects them.
const DisplayDateFormat = "02/01/2006"

// AlertRow is an invoice that is overdue or due within the alert horizon.
type AlertRow struct {
	Client       string
	DaysUntilDue int
	DueDate      time.Time
	Folio        string
	Total        decimal.Decimal
	Currency     string
}

// SummaryRow is one client's aggregate line in the summary output.
type SummaryRow struct {
	ClientName     string
	ClientRFC      string
	OutstandingMXN decimal.Decimal
	OutstandingUSD decimal.Decimal
	InvoiceCount   int
	OverdueMXN     decimal.Decimal
	OverdueUSD     decimal.Decimal
}

// DetailTable is one client's full invoice listing plus column totals for
// the synthetic trailing TOTAL row.
type DetailTable struct {
	Client       ClientKey
	Rows         []ClassifiedInvoice
	TotalInvoice decimal.Decimal
	TotalMXN     decimal.Decimal
	TotalUSD     decimal.Decimal
}

// Report is the assembled output of one reconciliation run, still free of
// any spreadsheet concern.
type Report struct {
	Alerts    []AlertRow
	Summaries []SummaryRow
	Details   []DetailTable
}

// BuildReport projects a ledger into the three report shapes. Clients appear
// in first-encounter order; alert rows follow the same traversal.
func BuildReport(ledger *ClientLedger) *Report {
	report := &Report{}

	for _, key := range ledger.Clients() {
		invoices := ledger.Invoices(key)

		for _, inv := range invoices {
			if qualifiesForAlert(inv) {
				report.Alerts = append(report.Alerts, AlertRow{
					Client:       DisplayName(inv.ClientName),
					DaysUntilDue: inv.DaysUntilDue,
					DueDate:      inv.DueDate,
					Folio:        inv.Folio,
					Total:        inv.Total,
					Currency:     inv.Currency,
				})
			}
		}

		summary := ledger.Summary(key)
		report.Summaries = append(report.Summaries, SummaryRow{
			ClientName:     DisplayName(key.Name),
			ClientRFC:      DisplayRFC(key.RFC),
			OutstandingMXN: summary.OutstandingMXN,
			OutstandingUSD: summary.OutstandingUSD,
			InvoiceCount:   summary.InvoiceCount,
			OverdueMXN:     summary.OverdueMXN,
			OverdueUSD:     summary.OverdueUSD,
		})

		table := DetailTable{
			Client:       key,
			Rows:         invoices,
			TotalInvoice: decimal.Zero,
			TotalMXN:     decimal.Zero,
			TotalUSD:     decimal.Zero,
		}
		for _, inv := range invoices {
			table.TotalInvoice = table.TotalInvoice.Add(inv.Total)
			table.TotalMXN = table.TotalMXN.Add(inv.OutstandingMXN)
			table.TotalUSD = table.TotalUSD.Add(inv.OutstandingUSD)
		}
		report.Details = append(report.Details, table)
	}

	return report
}

func qualifiesForAlert(inv ClassifiedInvoice) bool {
	if inv.Status == StatusOverdue {
		return true
	}
	return inv.Status == StatusPending && inv.DaysUntilDue <= AlertHorizonDays
}

// DisplayUUID renders an invoice identifier for the report, substituting the
// sentinel when the document carried no fiscal stamp.
func DisplayUUID(uuid string) string {
	if uuid == "" {
		return NoUUID
	}
	return uuid
}

// DisplayName renders a client name, substituting the sentinel when the
// recipient block omitted it.
func DisplayName(name string) string {
	if name == "" {
		return NoName
	}
	return name
}

// DisplayRFC renders a client tax ID, substituting the sentinel when the
// recipient block omitted it.
func DisplayRFC(rfc string) string {
	if rfc == "" {
		return NoRFC
	}
	return rfc
}

// DisplayPaid renders the paid flag as the report's Sí/No label.
func DisplayPaid(paid bool) string {
	if paid {
		return "Sí"
	}
	return "No"
}
