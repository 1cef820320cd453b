package cli

import (
	"github.com/spf13/cobra"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// filterFlags binds the filter fields to command flags.
type filterFlags struct {
	setID    string
	series   []string
	names    []string
	category string
	rarities []string
	types    []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.setID, "set", "", "Set id, e.g. swsh3")
	// Series and card names may contain commas, so they are not split.
	flags.StringArrayVar(&f.series, "series", nil, "Series name, exact match (repeatable)")
	flags.StringArrayVar(&f.names, "name", nil, "Card name substring (repeatable)")
	flags.StringVar(&f.category, "category", "", "Card category: Pokemon, Trainer or Energy")
	flags.StringSliceVar(&f.rarities, "rarity", nil, "Rarity substring, e.g. \"Rare Holo\" (repeatable)")
	flags.StringSliceVar(&f.types, "type", nil, "Energy type, e.g. Fire (repeatable, narrows only)")
}

// filter converts the flags to a domain filter. A single --name becomes
// the Name shorthand.
func (f *filterFlags) filter() domain.Filter {
	filter := domain.Filter{
		SetID:    f.setID,
		Series:   f.series,
		Category: f.category,
		Rarities: f.rarities,
		Types:    f.types,
	}
	if len(f.names) == 1 {
		filter.Name = f.names[0]
	} else {
		filter.Names = f.names
	}
	return filter
}

func (f *filterFlags) isEmpty() bool {
	return f.setID == "" && len(f.series) == 0 && len(f.names) == 0 &&
		f.category == "" && len(f.rarities) == 0 && len(f.types) == 0
}

func (f *filterFlags) reset() {
	*f = filterFlags{}
}
