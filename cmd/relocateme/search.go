package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/observability"
	"github.com/jonathan/relocateme/internal/views"
)

var (
	searchFrom      string
	searchTo        string
	searchBudgetMin string
	searchBudgetMax string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Submit a relocation search",
	Long:  "Fill in the dashboard form from flags and submit it to the backend, printing the request and the created search.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "Current location (required)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "Comma separated target cities")
	searchCmd.Flags().StringVar(&searchBudgetMin, "budget-min", "", "Lower monthly budget")
	searchCmd.Flags().StringVar(&searchBudgetMax, "budget-max", "", "Upper monthly budget")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}
	return submitSearch(cmd, client, cmd.OutOrStdout())
}

// submitSearch drives a dashboard with the flag values and waits for its search to finish.
func submitSearch(cmd *cobra.Command, api backend.API, out io.Writer) error {
	rec := &recorder{API: api}
	d := views.NewDashboard(rec)

	if cmd.Flags().Changed("from") {
		d.SetCurrentLocation(searchFrom)
	}
	if cmd.Flags().Changed("to") {
		d.SetTargetCities(searchTo)
	}
	if cmd.Flags().Changed("budget-min") {
		d.SetBudgetMin(searchBudgetMin)
	}
	if cmd.Flags().Changed("budget-max") {
		d.SetBudgetMax(searchBudgetMax)
	}

	printer := observability.NewPrinter(out)
	printer.PrintSearchRequest(d.Criteria().Request())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !d.Submit(ctx) {
		return errors.New("current location is required (use --from)")
	}
	d.Wait()

	rec.mu.Lock()
	search := rec.search
	rec.mu.Unlock()
	if search == nil {
		return errors.New("search was rejected by the backend")
	}
	printer.PrintLocationSearch(search)
	return nil
}
