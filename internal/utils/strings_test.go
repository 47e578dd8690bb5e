package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "User@Example.COM", "user@example.com"},
		{"trims whitespace", "  user@example.com  ", "user@example.com"},
		{"already normalized", "user@example.com", "user@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co.id"))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("user @example.com"))
}

func TestGenerateNumericCode(t *testing.T) {
	code, err := GenerateNumericCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)

	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code should be numeric, got %q", code)
	}
}

func TestGenerateNumericCode_InvalidLength(t *testing.T) {
	_, err := GenerateNumericCode(0)
	assert.Error(t, err)
}
