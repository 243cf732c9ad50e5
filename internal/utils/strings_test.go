package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"carla@zonagamer.com", true},
		{"luis.perez@mail.example.org", true},
		{"a@b.co", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{".leading@example.com", false},
		{"user@-example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "carla", EmailLocalPart("carla@zonagamer.com"))
	assert.Equal(t, "carla", EmailLocalPart("carla"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "ca***@zonagamer.com", MaskEmail("carla@zonagamer.com"))
	assert.Equal(t, "ab@x.com", MaskEmail("ab@x.com"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long st...", Truncate("long string here", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
