package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"admin@dorecipe.app", "a.b+c@example.co.uk"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "not-an-email", "@example.com", "a@", "a b@example.com"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
