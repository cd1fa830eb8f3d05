package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/rajathpai/avatar-backend/internal/config"
	"github.com/rajathpai/avatar-backend/internal/document"
	"github.com/rajathpai/avatar-backend/internal/llm"
	"github.com/rajathpai/avatar-backend/internal/server"
)

var (
	servePort   int
	serveConfig string
	serveStream bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the avatar HTTP server",
	Long:  `Start the HTTP server that serves the chat widget and the avatar API endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	serveCmd.Flags().BoolVar(&serveStream, "stream", false, "Stream chat responses as server-sent events")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Defaults()
	if serveConfig != "" {
		fileCfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveStream {
		cfg.StreamChat = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	profile := document.NewLoader(cfg.SubjectName, cfg.ResumePath, cfg.SummaryPath).Load()
	if profile.ResumeText == "" {
		log.Printf("Resume text is empty; the avatar will answer from the summary only")
	}

	return server.New(cfg, profile, client).Start()
}
