package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change catalog, hydration and storage settings.
Settings are stored in ~/.holostack/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  catalog.base_url             - TCGdex API root
  catalog.language             - Catalog language, e.g. en or fr
  catalog.requests_per_second  - Request rate towards the catalog
  catalog.timeout_seconds      - Timeout for one catalog request
  catalog.max_retries          - Retries for transient catalog failures
  catalog.cache_size           - Catalog responses kept in memory (0 disables)
  hydration.batch_size         - Card ids per existence check
  storage.data_dir             - Directory of the card database`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Base URL: %s\n", settings.Catalog.BaseURL)
	cmd.Printf("  Language: %s\n", settings.Catalog.Language)
	cmd.Printf("  Requests per second: %g\n", settings.Catalog.RequestsPerSecond)
	cmd.Printf("  Timeout: %s\n", settings.Catalog.Timeout)
	cmd.Printf("  Max retries: %d\n", settings.Catalog.MaxRetries)
	if settings.Catalog.CacheSize > 0 {
		cmd.Printf("  Cache size: %d\n", settings.Catalog.CacheSize)
	} else {
		cmd.Printf("  Cache size: disabled\n")
	}
	cmd.Println()

	cmd.Println("[Hydration]")
	cmd.Printf("  Batch size: %d\n", settings.Hydration.BatchSize)
	cmd.Println()

	cmd.Println("[Storage]")
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	} else {
		cmd.Printf("  Data dir: (default)\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	cmd.Printf("%s set to %s\n", key, value)
	return nil
}
