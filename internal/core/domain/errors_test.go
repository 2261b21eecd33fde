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
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrReaderUnavailable", ErrReaderUnavailable},
		{"ErrExtractionFailed", ErrExtractionFailed},
		{"ErrInvalidFilter", ErrInvalidFilter},
		{"ErrMalformedLinks", ErrMalformedLinks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestRequestRejections_WrapInvalidInput(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidFilter, ErrInvalidInput)
	assert.ErrorIs(t, ErrMalformedLinks, ErrInvalidInput)
	assert.False(t, errors.Is(ErrInvalidFilter, ErrMalformedLinks))
}

func TestErrStoreUnavailable_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("answer: retrieve: %w", ErrStoreUnavailable)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}
