// Package main provides the entry point for the Talent Intel CLI and API
// server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_intel",
	Short: "Candidate scoring engine",
	Long:  "Talent Intel ranks candidate resumes against a job description using weighted multi-signal scoring, with recruiter feedback adapting the weights over a session.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
