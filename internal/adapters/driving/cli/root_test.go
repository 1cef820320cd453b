package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/logger"
)

func TestRootCmd_Commands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"hydrate", "target", "settings", "version"})
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	setupServices(t, Services{})
	t.Cleanup(func() { logger.SetVerbose(false) })

	_, err := execute(t, "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestFilterFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    filterFlags
		expected domain.Filter
		empty    bool
	}{
		{
			name:  "empty",
			flags: filterFlags{},
			empty: true,
		},
		{
			name:     "single name becomes shorthand",
			flags:    filterFlags{names: []string{"Eevee"}},
			expected: domain.Filter{Name: "Eevee"},
		},
		{
			name:     "several names",
			flags:    filterFlags{names: []string{"Eevee", "Vaporeon"}},
			expected: domain.Filter{Names: []string{"Eevee", "Vaporeon"}},
		},
		{
			name:     "types only",
			flags:    filterFlags{types: []string{"Water"}},
			expected: domain.Filter{Types: []string{"Water"}},
		},
		{
			name: "everything",
			flags: filterFlags{
				setID: "swsh3", series: []string{"Sword & Shield"}, category: "Pokemon",
				rarities: []string{"Rare"}, types: []string{"Fire"},
			},
			expected: domain.Filter{
				SetID: "swsh3", Series: []string{"Sword & Shield"}, Category: "Pokemon",
				Rarities: []string{"Rare"}, Types: []string{"Fire"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.flags.isEmpty())
			assert.Equal(t, tt.expected, tt.flags.filter())
		})
	}
}
