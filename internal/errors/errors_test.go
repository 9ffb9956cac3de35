package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewValidationError("age out of range", nil),
			expected: "[VALIDATION] age out of range",
		},
		{
			name:     "with cause",
			err:      NewParsingError("bad row", fmt.Errorf("column 7")),
			expected: "[PARSING] bad row: column 7",
		},
		{
			name:     "not found",
			err:      NewNotFoundError("raw dataset"),
			expected: "[NOT_FOUND] raw dataset not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewStorageError("failed to write processed data", cause)

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("clean: %w", err), &appErr)
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewGenerationError("seed rejected", nil).
		WithContext("seed", int64(123)).
		WithContext("count", 500)

	assert.Equal(t, int64(123), err.Context["seed"])
	assert.Equal(t, 500, err.Context["count"])
}

func TestNewAppError_Types(t *testing.T) {
	assert.Equal(t, ErrTypeGeneration, NewGenerationError("x", nil).Type)
	assert.Equal(t, ErrTypeParsing, NewParsingError("x", nil).Type)
	assert.Equal(t, ErrTypeStorage, NewStorageError("x", nil).Type)
	assert.Equal(t, ErrTypeValidation, NewValidationError("x", nil).Type)
	assert.Equal(t, ErrTypeConfig, NewConfigError("x", nil).Type)
}
