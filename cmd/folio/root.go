package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Bilingual portfolio site",
	Long: `folio serves a bilingual (en/fr) portfolio: profile, experience and
education timeline, articles and project showcases read from a remote
content store, and a job-fit analyzer.

Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "folio.yaml", "config file path (FOLIO_* variables override it)")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
