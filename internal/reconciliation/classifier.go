package reconciliation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cobranza/internal/cfdi"
	"cobranza/internal/logger"
)

const (
	issueDateLayout    = "2006-01-02"
	defaultCreditTerms = "0 DIAS"
)

// Stats counts the outcome of one classification pass over a directory.
type Stats struct {
	Classified int
	NotIncome  int
	Skipped    int
}

// Classifier derives the payment state of invoices against a paid set and a
// reference date. The reference date is truncated to midnight so aging is a
// whole-day computation independent of the time of day the run starts.
type Classifier struct {
	paid PaidSet
	asOf time.Time
	log  zerolog.Logger
}

// NewClassifier creates a classifier. asOf is the date receivable aging is
// computed against, normally today.
func NewClassifier(paid PaidSet, asOf time.Time) *Classifier {
	return &Classifier{
		paid: paid,
		asOf: truncateToDay(asOf),
		log:  logger.WithComponent("classifier"),
	}
}

// ClassifyDirectory classifies every invoice document in dir and groups the
// results by client in encounter order. Documents that are not income
// vouchers or that fail extraction are skipped with a diagnostic; they never
// reach the ledger. The error return is non-nil only when the directory
// itself cannot be read.
func (c *Classifier) ClassifyDirectory(dir string) (*ClientLedger, Stats, error) {
	const op = "ClassifyDirectory"

	results, err := cfdi.ScanInvoices(dir)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	ledger := NewClientLedger()
	var stats Stats
	for _, res := range results {
		if res.Err != nil {
			stats.Skipped++
			c.log.Warn().Err(res.Err).Str("file", res.File).Msg("Failed to parse invoice, skipping")
			continue
		}

		inv, err := c.Classify(res.Doc)
		switch {
		case err == nil:
			ledger.Add(inv)
			stats.Classified++
		case errors.Is(err, ErrNotIncomeVoucher):
			stats.NotIncome++
			c.log.Debug().Str("file", res.File).Msg("Not an income voucher, skipping")
		default:
			stats.Skipped++
			c.log.Warn().Err(err).Str("file", res.File).Msg("Failed to classify invoice, skipping")
		}
	}

	c.log.Info().
		Int("documents", len(results)).
		Int("classified", stats.Classified).
		Int("not_income", stats.NotIncome).
		Int("skipped", stats.Skipped).
		Str("dir", dir).
		Msg("Invoice directory classified")

	return ledger, stats, nil
}

// Classify derives the payment state of a single invoice document.
func (c *Classifier) Classify(doc *cfdi.Comprobante) (ClassifiedInvoice, error) {
	const op = "Classify"

	if !strings.EqualFold(strings.TrimSpace(doc.TipoDeComprobante), cfdi.VoucherTypeIncome) {
		return ClassifiedInvoice{}, &ClassificationError{Op: op, Err: ErrNotIncomeVoucher}
	}

	id, hasStamp := doc.StampUUID()
	if hasStamp {
		id = strings.ToUpper(id)
		if err := uuid.Validate(id); err != nil {
			// Still matched as an opaque string; the stamp issuer is
			// authoritative even when the format is off.
			c.log.Warn().Str("uuid", id).Msg("Fiscal stamp UUID is not RFC 4122")
		}
	}

	if len(doc.Fecha) < len(issueDateLayout) {
		return ClassifiedInvoice{}, &ClassificationError{Op: op, Err: ErrInvalidIssueDate}
	}
	issueDate, err := time.Parse(issueDateLayout, doc.Fecha[:len(issueDateLayout)])
	if err != nil {
		return ClassifiedInvoice{}, &ClassificationError{Op: op, Err: fmt.Errorf("%w: %v", ErrInvalidIssueDate, err)}
	}

	total := decimal.Zero
	if doc.Total != "" {
		total, err = decimal.NewFromString(doc.Total)
		if err != nil {
			return ClassifiedInvoice{}, &ClassificationError{Op: op, Err: fmt.Errorf("%w: %v", ErrInvalidTotal, err)}
		}
	}

	terms := doc.CondicionesDePago
	if terms == "" {
		terms = defaultCreditTerms
	}

	inv := Invoice{
		UUID:          id,
		Folio:         strings.ToUpper(doc.Folio),
		IssueDate:     issueDate,
		Total:         total,
		Currency:      doc.Moneda,
		PaymentMethod: doc.MetodoPago,
		CreditTerms:   terms,
	}
	if doc.Receptor != nil {
		inv.ClientName = doc.Receptor.Nombre
		inv.ClientRFC = doc.Receptor.Rfc
	}

	dueDate := issueDate.AddDate(0, 0, CreditTermDays(terms))
	daysUntilDue := wholeDays(dueDate.Sub(c.asOf))

	paid := IsCashTerms(terms) ||
		(hasStamp && c.paid.HasUUID(inv.UUID)) ||
		(inv.Folio != "" && c.paid.HasFolio(inv.Folio))

	status := StatusPending
	switch {
	case paid:
		status = StatusPaid
	case daysUntilDue < 0:
		status = StatusOverdue
	}

	classified := ClassifiedInvoice{
		Invoice:        inv,
		DueDate:        dueDate,
		DaysUntilDue:   daysUntilDue,
		Paid:           paid,
		Status:         status,
		OutstandingMXN: decimal.Zero,
		OutstandingUSD: decimal.Zero,
		OverdueMXN:     decimal.Zero,
		OverdueUSD:     decimal.Zero,
	}
	if !paid {
		switch inv.Currency {
		case CurrencyMXN:
			classified.OutstandingMXN = total
			if status == StatusOverdue {
				classified.OverdueMXN = total
			}
		case CurrencyUSD:
			classified.OutstandingUSD = total
			if status == StatusOverdue {
				classified.OverdueUSD = total
			}
		}
	}

	return classified, nil
}

// truncateToDay keeps the calendar date as the operator sees it but pins it
// to a UTC midnight, matching the zone document dates parse into. Day
// differences then come out as exact multiples of 24 hours.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wholeDays converts a duration between two midnights into a signed day
// count.
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}
