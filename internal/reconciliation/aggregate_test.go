package reconciliation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func classified(client, rfc, currency string, total int64, status Status) ClassifiedInvoice {
	inv := ClassifiedInvoice{
		Invoice: Invoice{
			Folio:      "F1",
			IssueDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Total:      decimal.NewFromInt(total),
			Currency:   currency,
			ClientName: client,
			ClientRFC:  rfc,
		},
		DueDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:  status,
		Paid:    status == StatusPaid,
	}
	if !inv.Paid {
		switch currency {
		case CurrencyMXN:
			inv.OutstandingMXN = inv.Total
			if status == StatusOverdue {
				inv.OverdueMXN = inv.Total
			}
		case CurrencyUSD:
			inv.OutstandingUSD = inv.Total
			if status == StatusOverdue {
				inv.OverdueUSD = inv.Total
			}
		}
	}
	return inv
}

func TestClientLedgerAccumulatesByCurrency(t *testing.T) {
	ledger := NewClientLedger()
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 1000, StatusPending))
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 300, StatusOverdue))
	ledger.Add(classified("ACME", "AAA", CurrencyUSD, 50, StatusPending))
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 700, StatusPaid))

	key := ClientKey{Name: "ACME", RFC: "AAA"}
	summary := ledger.Summary(key)

	require.True(t, summary.OutstandingMXN.Equal(decimal.NewFromInt(1300)))
	require.True(t, summary.OutstandingUSD.Equal(decimal.NewFromInt(50)))
	require.True(t, summary.OverdueMXN.Equal(decimal.NewFromInt(300)))
	require.True(t, summary.OverdueUSD.IsZero())
	// Paid invoices count toward volume but not toward totals.
	require.Equal(t, 4, summary.InvoiceCount)
}

func TestClientLedgerExcludesUnknownCurrencyFromTotals(t *testing.T) {
	ledger := NewClientLedger()
	ledger.Add(classified("ACME", "AAA", "EUR", 900, StatusOverdue))

	summary := ledger.Summary(ClientKey{Name: "ACME", RFC: "AAA"})
	require.True(t, summary.OutstandingMXN.IsZero())
	require.True(t, summary.OutstandingUSD.IsZero())
	require.True(t, summary.OverdueMXN.IsZero())
	require.True(t, summary.OverdueUSD.IsZero())
	require.Equal(t, 1, summary.InvoiceCount)
}

func TestClientLedgerKeepsEncounterOrder(t *testing.T) {
	ledger := NewClientLedger()
	ledger.Add(classified("ZETA", "ZZZ", CurrencyMXN, 1, StatusPending))
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 2, StatusPending))
	ledger.Add(classified("ZETA", "ZZZ", CurrencyMXN, 3, StatusPending))

	require.Equal(t, []ClientKey{
		{Name: "ZETA", RFC: "ZZZ"},
		{Name: "ACME", RFC: "AAA"},
	}, ledger.Clients())

	zeta := ledger.Invoices(ClientKey{Name: "ZETA", RFC: "ZZZ"})
	require.Len(t, zeta, 2)
	require.True(t, zeta[0].Total.Equal(decimal.NewFromInt(1)))
	require.True(t, zeta[1].Total.Equal(decimal.NewFromInt(3)))
}

func TestClientLedgerSameNameDifferentRFCAreDistinct(t *testing.T) {
	ledger := NewClientLedger()
	ledger.Add(classified("ACME", "AAA", CurrencyMXN, 100, StatusPending))
	ledger.Add(classified("ACME", "BBB", CurrencyMXN, 200, StatusPending))

	require.Equal(t, 2, ledger.Len())
	require.True(t, ledger.Summary(ClientKey{Name: "ACME", RFC: "AAA"}).OutstandingMXN.Equal(decimal.NewFromInt(100)))
	require.True(t, ledger.Summary(ClientKey{Name: "ACME", RFC: "BBB"}).OutstandingMXN.Equal(decimal.NewFromInt(200)))
}
