package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"john":     "john",
		"100%":     `100\%`,
		"jane_doe": `jane\_doe`,
		`a\b`:      `a\\b`,
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeLike(in), in)
	}
}
