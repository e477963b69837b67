package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "ada lovelace", "ada lovelace"},
		{"mixed case", "Ada Lovelace", "ada lovelace"},
		{"surrounding whitespace", "  Ada Lovelace  ", "ada lovelace"},
		{"internal runs collapse", "Ada \t  Lovelace", "ada lovelace"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.input))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "happy birthday!", Text("  happy birthday!\n"))
	assert.Equal(t, "a  b", Text("a  b"), "internal whitespace preserved")
	assert.Equal(t, "", Text(" \t\n"))
}
