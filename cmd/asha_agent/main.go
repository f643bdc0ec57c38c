// Package main provides the entry point for the Asha career agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asha_agent",
	Short: "Asha career assistance agent",
	Long:  "Asha answers career questions, searches jobs across platforms, builds learning roadmaps, and runs mock interviews, over a REST API or directly from the command line.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
