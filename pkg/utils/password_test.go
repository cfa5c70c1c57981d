package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	h1 := HashPassword("Abcd12")
	h2 := HashPassword("Abcd12")

	assert.NotEqual(t, "Abcd12", h1)
	assert.NotEqual(t, h1, h2, "salting must make hashes differ")

	assert.True(t, CheckPassword("Abcd12", h1))
	assert.True(t, CheckPassword("Abcd12", h2))
	assert.False(t, CheckPassword("wrong", h1))
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want bool
	}{
		{"ok minimal", "Ab1x", true},
		{"ok mixed", "Abcd12", true},
		{"too short", "Ab1", false},
		{"too long", "Abcdefgh123", false},
		{"no digit", "Abcdef", false},
		{"no upper", "abcd12", false},
		{"no lower", "ABCD12", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.pw))
		})
	}
}
