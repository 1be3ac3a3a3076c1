// Package main provides the entry point for the Vibe Jobs HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vibejobs",
	Short: "Vibe Jobs HTTP API Server",
	Long:  "Vibe Jobs is a job board connecting candidates fluent in AI coding tools with the companies hiring for them, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
