package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/observability"
	"github.com/jonathan/relocateme/internal/views"
)

var recommendationsCmd = &cobra.Command{
	Use:     "recommendations",
	Aliases: []string{"thrive-os"},
	Short:   "Show the destination screen data",
	Long:    "Load the system status and job recommendations the way the destination screen does and print them. Defaults are shown when either request fails.",
	RunE:    runRecommendations,
}

func init() {
	rootCmd.AddCommand(recommendationsCmd)
}

func runRecommendations(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return showDestination(ctx, client, cmd.OutOrStdout(), cfg.RequestTimeout+time.Second)
}

// showDestination mounts a destination view, waits for its load, and prints what it holds.
func showDestination(ctx context.Context, api backend.API, out io.Writer, wait time.Duration) error {
	rec := &recorder{API: api}
	v := views.NewDestination(rec)
	defer v.Dispose()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-v.Mount(ctx):
	case <-timer.C:
		fmt.Fprintf(out, "Data not ready after %v, showing defaults\n", wait)
	case <-ctx.Done():
		return ctx.Err()
	}

	snap := v.Snapshot()
	printer := observability.NewPrinter(out)
	if !snap.Loaded {
		printer.PrintSystemStatus(nil)
		printer.PrintRecommendations(nil)
		printer.PrintInsights(snap.Insights)
		return nil
	}

	rec.mu.Lock()
	status, jobs := rec.status, rec.jobs
	rec.mu.Unlock()

	printer.PrintSystemStatus(status)
	printer.PrintRecommendations(jobs)
	printer.PrintInsights(snap.Insights)
	return nil
}
