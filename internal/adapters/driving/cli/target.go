package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var targetFilter filterFlags

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Manage stored hydration targets",
	Long: `A target is a named filter, such as "all cards of Darkness Ablaze",
that can be hydrated again by id. Removing a target keeps its cards.`,
}

var targetAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Store a filter as a target",
	Long: `Stores the filter described by the flags. The name defaults to a
description of the filter.

Example:
  holostack target add "Darkness Ablaze" --set swsh3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTargetAdd,
}

var targetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored targets",
	RunE:  runTargetList,
}

var targetRemoveCmd = &cobra.Command{
	Use:   "remove [target-id]",
	Short: "Remove a stored target",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargetRemove,
}

func init() {
	targetFilter.register(targetAddCmd)
	targetCmd.AddCommand(targetAddCmd)
	targetCmd.AddCommand(targetListCmd)
	targetCmd.AddCommand(targetRemoveCmd)
	rootCmd.AddCommand(targetCmd)
}

func runTargetAdd(cmd *cobra.Command, args []string) error {
	if targetService == nil {
		return errors.New("target service not configured")
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	target, err := targetService.Add(cmd.Context(), name, targetFilter.filter())
	if err != nil {
		return fmt.Errorf("failed to add target: %w", err)
	}

	cmd.Printf("Added target %s\n", target.ID)
	cmd.Printf("  Name:   %s\n", target.Name)
	cmd.Printf("  Filter: %s\n", target.Filter)
	return nil
}

func runTargetList(cmd *cobra.Command, _ []string) error {
	if targetService == nil {
		return errors.New("target service not configured")
	}

	targets, err := targetService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	if len(targets) == 0 {
		cmd.Println("No targets stored.")
		return nil
	}

	for i := range targets {
		t := &targets[i]
		hydrated := "never"
		if !t.NeverHydrated() {
			hydrated = t.LastHydratedAt.Local().Format(time.DateTime)
		}
		cmd.Printf("%s  %s\n", t.ID, t.Name)
		cmd.Printf("  Filter:        %s\n", t.Filter)
		cmd.Printf("  Last hydrated: %s\n", hydrated)
	}
	return nil
}

func runTargetRemove(cmd *cobra.Command, args []string) error {
	if targetService == nil {
		return errors.New("target service not configured")
	}

	if err := targetService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove target: %w", err)
	}

	cmd.Printf("Removed target %s\n", args[0])
	return nil
}
