// Package main provides the entry point for the avatar backend server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Personal-branding avatar backend",
	Long:  "Avatar serves a resume-grounded AI chat persona over HTTP: a chat relay to the Gemini API plus company-fit, job-match, project and stats analysis endpoints.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
