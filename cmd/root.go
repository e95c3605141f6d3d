package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cobranza/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "cobranza",
	Short: "Cobranza CLI - accounts-receivable reconciliation for CFDI invoices",
	Long: `Cobranza CLI reconciles issued CFDI invoices against payment complements
and a manual list of paid folios, and generates a multi-sheet accounts
receivable workbook.

This application is built with Go and Cobra, making it easy to extend
with additional subcommands as needed.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Cobranza CLI executed")

		fmt.Println("Welcome to Cobranza CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
