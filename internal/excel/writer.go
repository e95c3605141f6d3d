// Package excel renders a reconciliation report into an .xlsx workbook.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"cobranza/internal/logger"
	"cobranza/internal/reconciliation"
)

const (
	alertsSheet  = "Alertas Vencimientos"
	summarySheet = "Resumen"

	// Excel refuses sheet names longer than 31 characters.
	maxSheetNameLen = 31

	outputFileTimestamp = "02-01-2006_15-04-05"
)

var alertHeaders = []interface{}{
	"Cliente", "Días vencidos / por vencer", "Fecha de Vencimiento",
	"Número de Factura", "Total", "Moneda",
}

var summaryHeaders = []interface{}{
	"Cliente (Razón Social)", "RFC Cliente", "Total por Cobrar MXN",
	"Total por Cobrar USD", "Nº Facturas", "Vencidas MXN", "Vencidas USD",
}

var detailHeaders = []interface{}{
	"UUID", "Folio", "Fecha de Emisión", "Fecha de Vencimiento", "Moneda",
	"Método de Pago", "Condiciones de Pago", "Días por Vencer / Vencidos",
	"¿Pagada?", "Estatus", "Total Factura", "Total MXN", "Total USD",
}

// Writer renders reports to disk.
type Writer struct {
	log zerolog.Logger
}

// NewWriter creates a workbook writer.
func NewWriter() *Writer {
	return &Writer{log: logger.WithComponent("excel")}
}

// OutputFileName returns the timestamped workbook name for a run started at
// the given time, so consecutive runs never overwrite each other.
func OutputFileName(t time.Time) string {
	return fmt.Sprintf("cuentas_clientes_%s.xlsx", t.Format(outputFileTimestamp))
}

// Write renders the report into outDir and returns the path of the created
// workbook. The workbook is written to a temporary file and renamed into
// place, so a failed run leaves no half-written output behind.
func (w *Writer) Write(report *reconciliation.Report, outDir string, now time.Time) (string, error) {
	const op = "Write"

	f := excelize.NewFile()
	defer f.Close()

	if err := w.buildWorkbook(f, report); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	outPath := filepath.Join(outDir, OutputFileName(now))
	tmpPath := outPath + ".tmp"
	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%s: saving workbook: %w", op, err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%s: moving workbook into place: %w", op, err)
	}

	w.log.Info().
		Int("alerts", len(report.Alerts)).
		Int("clients", len(report.Summaries)).
		Str("file", outPath).
		Msg("Workbook written")

	return outPath, nil
}

func (w *Writer) buildWorkbook(f *excelize.File, report *reconciliation.Report) error {
	// The default sheet becomes the alerts sheet so it opens first.
	if err := f.SetSheetName(f.GetSheetName(0), alertsSheet); err != nil {
		return err
	}
	if err := w.writeAlerts(f, report.Alerts); err != nil {
		return fmt.Errorf("alerts sheet: %w", err)
	}
	if err := w.writeSummary(f, report.Summaries); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	used := map[string]bool{
		strings.ToLower(alertsSheet):  true,
		strings.ToLower(summarySheet): true,
	}
	for _, table := range report.Details {
		name := clientSheetName(reconciliation.DisplayName(table.Client.Name), used)
		if err := w.writeDetail(f, name, table); err != nil {
			return fmt.Errorf("client sheet %q: %w", name, err)
		}
	}
	return nil
}

func (w *Writer) writeAlerts(f *excelize.File, alerts []reconciliation.AlertRow) error {
	if err := setRow(f, alertsSheet, 1, alertHeaders); err != nil {
		return err
	}
	for i, alert := range alerts {
		row := []interface{}{
			alert.Client,
			alert.DaysUntilDue,
			alert.DueDate.Format(reconciliation.DisplayDateFormat),
			alert.Folio,
			alert.Total.InexactFloat64(),
			alert.Currency,
		}
		if err := setRow(f, alertsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSummary(f *excelize.File, summaries []reconciliation.SummaryRow) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := setRow(f, summarySheet, 1, summaryHeaders); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{
			s.ClientName,
			s.ClientRFC,
			s.OutstandingMXN.InexactFloat64(),
			s.OutstandingUSD.InexactFloat64(),
			s.InvoiceCount,
			s.OverdueMXN.InexactFloat64(),
			s.OverdueUSD.InexactFloat64(),
		}
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeDetail(f *excelize.File, sheet string, table reconciliation.DetailTable) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, detailHeaders); err != nil {
		return err
	}
	rowNum := 2
	for _, inv := range table.Rows {
		row := []interface{}{
			reconciliation.DisplayUUID(inv.UUID),
			inv.Folio,
			inv.IssueDate.Format(reconciliation.DisplayDateFormat),
			inv.DueDate.Format(reconciliation.DisplayDateFormat),
			inv.Currency,
			inv.PaymentMethod,
			inv.CreditTerms,
			inv.DaysUntilDue,
			reconciliation.DisplayPaid(inv.Paid),
			string(inv.Status),
			inv.Total.InexactFloat64(),
			inv.OutstandingMXN.InexactFloat64(),
			inv.OutstandingUSD.InexactFloat64(),
		}
		if err := setRow(f, sheet, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}

	totalRow := []interface{}{
		"TOTAL", "", "", "", "", "", "", "", "", "",
		table.TotalInvoice.InexactFloat64(),
		table.TotalMXN.InexactFloat64(),
		table.TotalUSD.InexactFloat64(),
	}
	return setRow(f, sheet, rowNum, totalRow)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// clientSheetName truncates a client name to Excel's sheet-name limit,
// strips characters Excel rejects, and disambiguates collisions with a
// numeric suffix. The used map tracks taken names case-insensitively, the
// way Excel compares them.
func clientSheetName(name string, used map[string]bool) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, name)
	sanitized = strings.TrimSpace(sanitized)
	if sanitized == "" {
		sanitized = "Cliente"
	}
	if runes := []rune(sanitized); len(runes) > maxSheetNameLen {
		sanitized = string(runes[:maxSheetNameLen])
	}

	candidate := sanitized
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(sanitized)
		if len(base)+len(suffix) > maxSheetNameLen {
			base = base[:maxSheetNameLen-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
