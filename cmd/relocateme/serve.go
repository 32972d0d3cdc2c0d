package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/relocateme/internal/server"
	"github.com/jonathan/relocateme/internal/telemetry"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start an HTTP server that renders the dashboard, bridge, and destination screens and streams the bridge sequence.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Setup(ctx, "relocateme")
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Tracing shutdown failed: %v", err)
		}
	}()

	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		API:           client,
		RenderTimeout: cfg.RenderTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Using backend %s", cfg.APIBase())
	return srv.Start()
}
