// Package main provides the entry point for the internship recommendation wizard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "internship_wizard",
	Short: "Guided internship recommendation wizard",
	Long: `Internship Wizard collects a candidate profile step by step (or from an uploaded resume),
submits it to the matching service and presents ranked internship recommendations
together with a skill gap analysis for the candidate's career goal.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&globalBackendURL, "backend-url", "", "Matching service base URL (defaults to WIZARD_BACKEND_URL or "+defaultBackendHint+")")
	flags.IntVar(&globalTimeout, "timeout", 0, "Request timeout in seconds")
	flags.StringVar(&globalDatabaseURL, "db-url", "", "PostgreSQL connection URL for profiles (optional, defaults to DATABASE_URL env var)")
	flags.StringVar(&globalUserID, "user-id", "", "Profile owner id")
	flags.BoolVarP(&globalVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
