package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cobranza/internal/config"
	"cobranza/internal/excel"
	"cobranza/internal/logger"
	"cobranza/internal/reconciliation"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the accounts-receivable workbook from CFDI documents",
	Long: `Reconcile issued CFDI invoices against payment complements and manual
overrides, then generate a multi-sheet accounts receivable workbook.

The command reads one directory of issued invoice XMLs and one directory of
payment-complement XMLs. An invoice counts as paid when its credit terms are
"CONTADO", when a payment complement references its UUID, or when its folio
appears in the manual overrides CSV (a file with a "Folio" column). Documents
that fail to parse are skipped with a diagnostic and the run continues.

Directory and file settings fall back to environment variables:
  COBRANZA_INVOICES_DIR    - Directory of issued invoice XML files
  COBRANZA_COMPLEMENTS_DIR - Directory of payment complement XML files
  COBRANZA_MANUAL_CSV      - Manual overrides CSV (optional)
  COBRANZA_OUTPUT_DIR      - Directory for the generated workbook`,
	Example: `  # Basic run
  cobranza report --invoices ./facturas --complements ./complementos --out ./reportes

  # Pin the aging reference date for a reproducible report
  cobranza report --invoices ./facturas --complements ./complementos --as-of 2026-08-31

  # Reconcile and log counts without writing a workbook
  cobranza report --invoices ./facturas --complements ./complementos --dry-run`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("invoices", "", "Directory of issued invoice XML files")
	reportCmd.Flags().String("complements", "", "Directory of payment complement XML files")
	reportCmd.Flags().String("manual", "", "Manual overrides CSV file (missing file means no overrides)")
	reportCmd.Flags().String("out", "", "Output directory for the generated workbook")
	reportCmd.Flags().String("as-of", "", "Reference date for aging (format: YYYY-MM-DD, default: today)")
	reportCmd.Flags().Bool("dry-run", false, "Reconcile and log counts but don't write the workbook")
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("report")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	invoicesDir := flagOr(cmd, "invoices", cfg.InvoicesDir)
	complementsDir := flagOr(cmd, "complements", cfg.ComplementsDir)
	manualCSV := flagOr(cmd, "manual", cfg.ManualCSV)
	outDir := flagOr(cmd, "out", cfg.OutputDir)
	asOfStr, _ := cmd.Flags().GetString("as-of")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if invoicesDir == "" {
		return fmt.Errorf("invoices directory is required (--invoices or COBRANZA_INVOICES_DIR)")
	}
	if complementsDir == "" {
		return fmt.Errorf("complements directory is required (--complements or COBRANZA_COMPLEMENTS_DIR)")
	}
	if err := requireDirectory(invoicesDir); err != nil {
		return err
	}
	if err := requireDirectory(complementsDir); err != nil {
		return err
	}

	asOf := time.Now()
	if asOfStr != "" {
		asOf, err = time.Parse("2006-01-02", asOfStr)
		if err != nil {
			return fmt.Errorf("invalid as-of date format. Use YYYY-MM-DD: %w", err)
		}
	}

	log.Info().
		Str("invoices_dir", invoicesDir).
		Str("complements_dir", complementsDir).
		Str("manual_csv", manualCSV).
		Str("out_dir", outDir).
		Str("as_of", asOf.Format("2006-01-02")).
		Bool("dry_run", dryRun).
		Msg("Starting receivables reconciliation")

	paid := reconciliation.PaidSet{
		ManualFolios: reconciliation.LoadManualFolios(manualCSV),
	}
	paid.ComplementUUIDs, err = reconciliation.LoadComplementUUIDs(complementsDir)
	if err != nil {
		return fmt.Errorf("failed to scan payment complements: %w", err)
	}

	classifier := reconciliation.NewClassifier(paid, asOf)
	ledger, stats, err := classifier.ClassifyDirectory(invoicesDir)
	if err != nil {
		return fmt.Errorf("failed to classify invoices: %w", err)
	}

	report := reconciliation.BuildReport(ledger)

	log.Info().
		Int("invoices", stats.Classified).
		Int("skipped", stats.Skipped).
		Int("clients", ledger.Len()).
		Int("alerts", len(report.Alerts)).
		Msg("Reconciliation completed")

	if dryRun {
		log.Info().Msg("Dry run mode: no workbook written")
		fmt.Printf("Dry run: %d facturas, %d clientes, %d alertas\n",
			stats.Classified, ledger.Len(), len(report.Alerts))
		return nil
	}

	outPath, err := excel.NewWriter().Write(report, outDir, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Printf("Archivo generado: %s\n", outPath)
	return nil
}

func flagOr(cmd *cobra.Command, name, fallback string) string {
	if value, _ := cmd.Flags().GetString(name); value != "" {
		return value
	}
	return fallback
}

func requireDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory not found: %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}
