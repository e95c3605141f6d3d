package reconciliation

// ClientLedger groups classified invoices by client and keeps running
// per-client totals. Keys are ordered by first encounter and invoices keep
// insertion order within their client, so reports come out stable across
// identical runs.
type ClientLedger struct {
	keys      []ClientKey
	invoices  map[ClientKey][]ClassifiedInvoice
	summaries map[ClientKey]*ClientSummary
}

// NewClientLedger returns an empty ledger.
func NewClientLedger() *ClientLedger {
	return &ClientLedger{
		invoices:  make(map[ClientKey][]ClassifiedInvoice),
		summaries: make(map[ClientKey]*ClientSummary),
	}
}

// Add appends an invoice to its client group and folds it into the client's
// summary. Every invoice counts toward volume; only unpaid ones contribute
// to outstanding totals, and only overdue ones to overdue totals. Currencies
// other than MXN and USD are excluded from both totals.
func (l *ClientLedger) Add(inv ClassifiedInvoice) {
	key := inv.Key()

	summary, ok := l.summaries[key]
	if !ok {
		summary = &ClientSummary{Key: key}
		l.summaries[key] = summary
		l.keys = append(l.keys, key)
	}

	l.invoices[key] = append(l.invoices[key], inv)

	if !inv.Paid {
		switch inv.Currency {
		case CurrencyMXN:
			summary.OutstandingMXN = summary.OutstandingMXN.Add(inv.Total)
		case CurrencyUSD:
			summary.OutstandingUSD = summary.OutstandingUSD.Add(inv.Total)
		}
	}
	if inv.Status == StatusOverdue {
		switch inv.Currency {
		case CurrencyMXN:
			summary.OverdueMXN = summary.OverdueMXN.Add(inv.Total)
		case CurrencyUSD:
			summary.OverdueUSD = summary.OverdueUSD.Add(inv.Total)
		}
	}
	summary.InvoiceCount++
}

// Clients returns the client keys in first-encounter order.
func (l *ClientLedger) Clients() []ClientKey {
	return l.keys
}

// Invoices returns the client's invoices in encounter order.
func (l *ClientLedger) Invoices(key ClientKey) []ClassifiedInvoice {
	return l.invoices[key]
}

// Summary returns the client's accumulated totals.
func (l *ClientLedger) Summary(key ClientKey) ClientSummary {
	if s, ok := l.summaries[key]; ok {
		return *s
	}
	return ClientSummary{Key: key}
}

// Len returns the number of distinct clients.
func (l *ClientLedger) Len() int {
	return len(l.keys)
}
