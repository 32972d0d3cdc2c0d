// Package main provides the entry point for the RelocateMe server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "relocateme",
	Short:        "RelocateMe front-end server",
	Long:         "RelocateMe serves the relocation dashboard, the bridge transition, and the ThriveRemoteOS destination, and drives the same screens from the terminal.",
	SilenceUsage: true,
}

var (
	configPath string
	backendURL string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "Backend origin (overrides config and RELOCATEME_BACKEND_URL)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
