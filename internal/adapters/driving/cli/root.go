// Package cli implements the holostack command line interface.
//
// Commands talk to the core only through driving ports. The binary wires
// concrete services in with SetServices before calling Execute.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SergioXp/holostack/internal/core/ports/driving"
	"github.com/SergioXp/holostack/internal/logger"
)

var (
	// version is set at build time.
	version = "dev"

	verbose bool

	hydrationService driving.HydrationService
	targetService    driving.TargetService
	settingsService  driving.SettingsService

	// dryRunHydration builds a hydration service over a throwaway store.
	dryRunHydration func() driving.HydrationService
)

var rootCmd = &cobra.Command{
	Use:   "holostack",
	Short: "Keep a local Pokémon TCG card store hydrated from TCGdex",
	Long: `HoloStack loads Pokémon TCG cards from the TCGdex catalog into a local
SQLite store, fetching only the cards a filter selects and skipping the ones
already stored.

Use "holostack hydrate" with filter flags for a one-off load, or save a
filter with "holostack target add" and hydrate it by id.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Services holds the driving ports the commands use.
type Services struct {
	Hydration driving.HydrationService
	Targets   driving.TargetService
	Settings  driving.SettingsService

	// DryRun builds a hydration service whose writes are discarded.
	// Optional; hydrate --dry-run fails without it.
	DryRun func() driving.HydrationService
}

// SetServices connects the commands to the core services.
func SetServices(s Services) {
	hydrationService = s.Hydration
	targetService = s.Targets
	settingsService = s.Settings
	dryRunHydration = s.DryRun
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
