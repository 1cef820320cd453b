package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SergioXp/holostack/internal/adapters/driving/tui/progress"
	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driving"
)

var (
	hydrateFilter filterFlags
	hydrateDryRun bool
	hydratePlain  bool
)

var hydrateCmd = &cobra.Command{
	Use:   "hydrate [target-id]",
	Short: "Load catalog cards into the local store",
	Long: `Fetches the cards a filter selects from TCGdex and saves them locally.
Cards already in the store are not fetched again.

Either pass the id of a stored target, or describe the cards with filter
flags. The most specific flag decides how cards are looked up, in order:
--set, --series, --name, then --rarity or --category. The remaining flags
narrow the result.

Examples:
  holostack hydrate --set swsh3
  holostack hydrate --series "Sword & Shield" --rarity "Rare Holo"
  holostack hydrate --name Pikachu --name Eevee --type Lightning
  holostack hydrate 5f0c9a1e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHydrate,
}

func init() {
	hydrateFilter.register(hydrateCmd)
	hydrateCmd.Flags().BoolVar(&hydrateDryRun, "dry-run", false, "Fetch and filter without saving anything")
	hydrateCmd.Flags().BoolVar(&hydratePlain, "plain", false, "Print progress as plain lines even on a terminal")
	rootCmd.AddCommand(hydrateCmd)
}

func runHydrate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !hydrateFilter.isEmpty() {
		return errors.New("pass either a target id or filter flags, not both")
	}

	svc := hydrationService
	if hydrateDryRun {
		if dryRunHydration == nil {
			return errors.New("dry run not configured")
		}
		svc = dryRunHydration()
	}
	if svc == nil {
		return errors.New("hydration service not configured")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	events, title, err := startHydration(ctx, svc, args)
	if err != nil {
		return err
	}

	var final domain.ProgressEvent
	if useTUI(cmd) {
		final, err = progress.Run(title, events, cancel, tea.WithOutput(cmd.OutOrStdout()))
	} else {
		final, err = printEvents(cmd, events)
	}
	if err != nil {
		return err
	}

	if final.Kind == domain.EventError {
		if final.Err != nil {
			return fmt.Errorf("hydration failed: %w", final.Err)
		}
		return fmt.Errorf("hydration failed: %s", final.Message)
	}

	if hydrateDryRun {
		cmd.Printf("Dry run: %d cards matched, nothing was saved.\n", final.Matched)
	}
	return nil
}

// startHydration begins the run and returns its event stream and a title
// for display. A dry run resolves a target itself, since the throwaway
// service has no target store and must not record the run.
func startHydration(
	ctx context.Context,
	svc driving.HydrationService,
	args []string,
) (<-chan domain.ProgressEvent, string, error) {
	if len(args) == 0 {
		filter := hydrateFilter.filter()
		return svc.HydrateFilter(ctx, filter), filter.String(), nil
	}

	targetID := args[0]
	if !hydrateDryRun {
		return svc.Hydrate(ctx, targetID), "target " + targetID, nil
	}

	if targetService == nil {
		return nil, "", errors.New("target service not configured")
	}
	target, err := targetService.Get(ctx, targetID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get target: %w", err)
	}
	return svc.HydrateFilter(ctx, target.Filter), target.Name, nil
}

// useTUI reports whether progress should be rendered interactively.
func useTUI(cmd *cobra.Command) bool {
	if hydratePlain {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printEvents writes one line per event and returns the terminal event.
func printEvents(cmd *cobra.Command, events <-chan domain.ProgressEvent) (domain.ProgressEvent, error) {
	var last domain.ProgressEvent
	for ev := range events {
		last = ev
		cmd.Println(formatEvent(ev))
		if ev.Kind.IsTerminal() {
			return ev, nil
		}
	}
	return last, progress.ErrNoTerminalEvent
}

func formatEvent(ev domain.ProgressEvent) string {
	line := fmt.Sprintf("[%s] %s", ev.Stage, ev.Message)
	if ev.Total > 0 && !ev.Kind.IsTerminal() {
		line += fmt.Sprintf(" (%d/%d)", ev.Current, ev.Total)
	}
	return line
}
