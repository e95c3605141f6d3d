package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func withDays(inv ClassifiedInvoice, days int) ClassifiedInvoice {
	inv.DaysUntilDue = days
	return inv
}

func TestBuildReportAlertBoundary(t *testing.T) {
	ledger := NewClientLedger()
	dueAtHorizon := withDays(classified("ACME", "AAA", CurrencyMXN, 100, StatusPending), AlertHorizonDays)
	dueAfterHorizon := withDays(classified("ACME", "AAA", CurrencyMXN, 200, StatusPending), AlertHorizonDays+1)
	overdue := withDays(classified("ACME", "AAA", CurrencyMXN, 300, StatusOverdue), -12)
	paid := withDays(classified("ACME", "AAA", CurrencyMXN, 400, StatusPaid), -30)
	ledger.Add(dueAtHorizon)
	ledger.Add(dueAfterHorizon)
	ledger.Add(overdue)
	ledger.Add(paid)

	report := BuildReport(ledger)

	require.Len(t, report.Alerts, 2)
	require.Equal(t, AlertHorizonDays, report.Alerts[0].DaysUntilDue)
	require.Equal(t, -12, report.Alerts[1].DaysUntilDue)
}

func TestBuildReportSummaryRow(t *testing.T) {
	ledger := NewClientLedger()
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 1000, StatusOverdue))
	ledger.Add(classified("ACME", "AAA", CurrencyUSD, 50, StatusPending))

	report := BuildReport(ledger)
	require.Len(t, report.Summaries, 1)

	row := report.Summaries[0]
	require.Equal(t, "ACME", row.ClientName)
	require.Equal(t, "AAA", row.ClientRFC)
	require.True(t, row.OutstandingMXN.Equal(decimal.NewFromInt(1000)))
	require.True(t, row.OutstandingUSD.Equal(decimal.NewFromInt(50)))
	require.True(t, row.OverdueMXN.Equal(decimal.NewFromInt(1000)))
	require.True(t, row.OverdueUSD.IsZero())
	require.Equal(t, 2, row.InvoiceCount)
}

func TestBuildReportDetailTotalsSumColumns(t *testing.T) {
	ledger := NewClientLedger()
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 1000, StatusPending))
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 250, StatusOverdue))
	ledger.Add(classified("ACME", "AAA", CurrencyUSD, 75, StatusPending))
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 500, StatusPaid))

	report := BuildReport(ledger)
	require.Len(t, report.Details, 1)

	table := report.Details[0]
	require.Len(t, table.Rows, 4)
	// Invoice-total column sums every row, paid ones included.
	require.True(t, table.TotalInvoice.Equal(decimal.NewFromInt(1825)))
	// Per-currency columns only carry unpaid amounts.
	require.True(t, table.TotalMXN.Equal(decimal.NewFromInt(1250)))
	require.True(t, table.TotalUSD.Equal(decimal.NewFromInt(75)))
}

func TestBuildReportClientOrderIsStable(t *testing.T) {
	build := func() *Report {
		ledger := NewClientLedger()
		ledger.Add(classified("ZETA", "ZZZ", CurrencyMXN, 1, StatusPending))
		ledger.Add(classified("ACME", "AAA", CurrencyMXN, 2, StatusPending))
		return BuildReport(ledger)
	}

	first := build()
	second := build()
	require.Equal(t, first.Summaries, second.Summaries)
	require.Equal(t, first.Alerts, second.Alerts)
	require.Equal(t, "ZETA", first.Summaries[0].ClientName)
	require.Equal(t, "ACME", first.Summaries[1].ClientName)
}

func TestDisplaySentinels(t *testing.T) {
	require.Equal(t, NoUUID, DisplayUUID(""))
	require.Equal(t, "AAAA-BBBB", DisplayUUID("AAAA-BBBB"))
	require.Equal(t, NoName, DisplayName(""))
	require.Equal(t, "ACME", DisplayName("ACME"))
	require.Equal(t, NoRFC, DisplayRFC(""))
	require.Equal(t, "XAXX010101000", DisplayRFC("XAXX010101000"))
	require.Equal(t, "Sí", DisplayPaid(true))
	require.Equal(t, "No", DisplayPaid(false))
}
