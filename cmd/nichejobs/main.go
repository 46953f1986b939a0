// Package main provides the nichejobs CLI: aggregation runs, the query API
// server, and one-off extraction and diagnostics commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nichejobs",
	Short: "Niche job board aggregation pipeline",
	Long:  "nichejobs aggregates job postings for a configured niche from ATS boards, sector APIs, search discovery, and LLM-extracted pages into a single searchable store.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
