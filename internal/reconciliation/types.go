package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived payment state of a classified invoice. The values
// are the operator-facing Spanish labels used throughout the report.
type Status string

const (
	StatusPaid    Status = "PAGADA"
	StatusOverdue Status = "VENCIDA"
	StatusPending Status = "POR PAGAR"
)

// Recognized currencies. Amounts in any other currency are excluded from
// outstanding/overdue totals but still count toward invoice volume.
const (
	CurrencyMXN = "MXN"
	CurrencyUSD = "USD"
)

// Display sentinels, applied only at the reporting boundary. Internally an
// absent identifier, name, or tax ID is the empty string.
const (
	NoUUID = "SIN_UUID"
	NoName = "SIN NOMBRE"
	NoRFC  = "SIN RFC"
)

// Invoice is the extracted, receivable-relevant content of one CFDI income
// voucher.
type Invoice struct {
	UUID          string // fiscal stamp identifier, upper-cased; empty when the stamp is absent
	Folio         string // human-facing reference, upper-cased; not globally unique
	IssueDate     time.Time
	Total         decimal.Decimal
	Currency      string
	PaymentMethod string
	CreditTerms   string // raw text, e.g. "30 DIAS", "CONTADO"
	ClientName    string // empty when the recipient block omits it
	ClientRFC     string // empty when the recipient block omits it
}

// ClientKey identifies a client by legal name and tax ID. Folio collisions
// across clients are not scoped by this key (see manual overrides).
type ClientKey struct {
	Name string
	RFC  string
}

// ClassifiedInvoice is an Invoice plus its derived payment state. It is
// built once by the classifier and immutable afterwards.
type ClassifiedInvoice struct {
	Invoice

	DueDate      time.Time
	DaysUntilDue int // negative when overdue
	Paid         bool
	Status       Status

	// Per-currency projections of the invoice total: zero when paid, and
	// zero for the currency the invoice is not denominated in.
	OutstandingMXN decimal.Decimal
	OutstandingUSD decimal.Decimal
	OverdueMXN     decimal.Decimal
	OverdueUSD     decimal.Decimal
}

// Key returns the client grouping key for the invoice.
func (ci *ClassifiedInvoice) Key() ClientKey {
	return ClientKey{Name: ci.ClientName, RFC: ci.ClientRFC}
}

// ClientSummary accumulates per-client receivable totals by currency.
type ClientSummary struct {
	Key ClientKey

	OutstandingMXN decimal.Decimal
	OutstandingUSD decimal.Decimal
	OverdueMXN     decimal.Decimal
	OverdueUSD     decimal.Decimal

	// InvoiceCount includes paid invoices: they count toward volume but
	// not toward the totals above.
	InvoiceCount int
}
