package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jonathan/relocateme/internal/routes"
	"github.com/jonathan/relocateme/internal/scheduler"
	"github.com/jonathan/relocateme/internal/transition"
)

var bridgeSpeed float64

var (
	glitchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	steadyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Replay the bridge transition in the terminal",
	Long:  "Run the bridge sequence on a real-time loop, printing each message as it appears and the navigation it ends with.",
	RunE:  runBridge,
}

func init() {
	bridgeCmd.Flags().Float64Var(&bridgeSpeed, "speed", 1, "Playback speed multiplier")
	rootCmd.AddCommand(bridgeCmd)
}

func runBridge(cmd *cobra.Command, _ []string) error {
	if bridgeSpeed <= 0 {
		return fmt.Errorf("--speed must be positive, got %v", bridgeSpeed)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := replayBridge(ctx, cmd.OutOrStdout(), scaleTimings(transition.DefaultTimings(), bridgeSpeed))
	return err
}

func scaleTimings(t transition.Timings, speed float64) transition.Timings {
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) / speed)
	}
	return transition.Timings{
		MessageInterval: scale(t.MessageInterval),
		GlitchInterval:  scale(t.GlitchInterval),
		RedirectAfter:   scale(t.RedirectAfter),
	}
}

// replayBridge runs one choreography and returns the navigation command it issued.
func replayBridge(ctx context.Context, out io.Writer, timings transition.Timings) (routes.Command, error) {
	var command routes.Command
	finished := make(chan struct{})

	nav := routes.Channel(func(c routes.Command) error {
		command = c
		fmt.Fprintln(out, commandStyle.Render(fmt.Sprintf("→ navigate %s (%s)", c.Path, c.Screen)))
		return nil
	})

	lastIndex := -1
	c := transition.New(nav,
		transition.WithTimings(timings),
		transition.WithObserver(func(st transition.State) {
			if st.Navigated {
				close(finished)
				return
			}
			if st.Index == lastIndex {
				return
			}
			lastIndex = st.Index
			printBridgeMessage(out, st)
		}),
	)

	printBridgeMessage(out, c.State())
	lastIndex = 0

	loop := scheduler.NewLoop(ctx)
	defer loop.Close()
	defer c.Teardown()

	c.Start(loop)

	select {
	case <-finished:
		return command, nil
	case <-ctx.Done():
		return routes.Command{}, ctx.Err()
	}
}

func printBridgeMessage(out io.Writer, st transition.State) {
	style := steadyStyle
	if st.GlitchActive {
		style = glitchStyle
	}
	fmt.Fprintln(out, style.Render(st.Message))
}
