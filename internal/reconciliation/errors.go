package reconciliation

import (
	"errors"
	"fmt"
)

// Classification skip conditions. Per-document failures are contained: the
// offending document is skipped with a diagnostic and must not partially
// populate aggregates.
var (
	// ErrNotIncomeVoucher marks a document whose voucher type is not "I";
	// such documents are not receivables and are skipped silently.
	ErrNotIncomeVoucher = errors.New("not an income voucher")

	// ErrInvalidIssueDate is returned when the Fecha attribute is absent or
	// its date part cannot be parsed.
	ErrInvalidIssueDate = errors.New("missing or malformed issue date")

	// ErrInvalidTotal is returned when the Total attribute is present but
	// not a valid decimal amount.
	ErrInvalidTotal = errors.New("malformed total amount")
)

// ClassificationError wraps a skip condition with the source file for
// operator diagnostics.
type ClassificationError struct {
	Op   string
	File string
	Err  error
}

func (e *ClassificationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("reconciliation: %s failed for %s: %v", e.Op, e.File, e.Err)
	}
	return fmt.Sprintf("reconciliation: %s failed: %v", e.Op, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
