package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidFilter", ErrInvalidFilter},
		{"ErrUpstream", ErrUpstream},
		{"ErrStoreLookupDegraded", ErrStoreLookupDegraded},
		{"ErrHydrationInProgress", ErrHydrationInProgress},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrUpstream_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: fetch set swsh3: %w", ErrUpstream, errors.New("status 502"))

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.False(t, errors.Is(err, ErrInvalidFilter))
	assert.Contains(t, err.Error(), "status 502")
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrUpstream, ErrRateLimited))
	assert.False(t, errors.Is(ErrHydrationInProgress, ErrInvalidFilter))
}
