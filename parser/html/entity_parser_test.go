package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityParser(t *testing.T) {
	tests := []struct {
		entity   string
		expected string
		ok       bool
	}{
		{"amp", "&", true},
		{"lt", "<", true},
		{"nbsp", "\u00a0", true},
		{"NotEqualTilde", "\u2242\u0338", true},
		{"#65", "A", true},
		{"#x41", "A", true},
		{"#X41", "A", true},
		{"#x3c", "<", true},
		{"#0065", "A", true},
		{"", "", false},
		{"#", "", false},
		{"#x", "", false},
		{"#xZZ", "", false},
		{"#12a", "", false},
		{"nope", "", false},
		{"am p", "", false},
		{"amp;", "", false},
	}

	ep := NewEntityParser(nil)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.entity, func(t *testing.T) {
			t.Parallel()
			got, ok := ep.Parse(tt.entity)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Numeric references decode to a single 16-bit code unit. Anything past the
// basic plane wraps instead of producing the intended character.
func TestEntityParserNumericBoundary(t *testing.T) {
	ep := NewEntityParser(nil)

	got, ok := ep.Parse("#xFFFF")
	assert.True(t, ok)
	assert.Equal(t, "\uffff", got)

	got, ok = ep.Parse("#x1F600")
	assert.True(t, ok)
	assert.Equal(t, "\uf600", got)
	assert.NotEqual(t, "\U0001F600", got)

	got, ok = ep.Parse("#128512")
	assert.True(t, ok)
	assert.Equal(t, "\uf600", got)

	got, ok = ep.Parse("#xD83D")
	assert.True(t, ok)
	assert.Equal(t, "\ufffd", got)
}

func TestEntityParserCustomTable(t *testing.T) {
	ep := NewEntityParser(map[string][]rune{"hb": {'{', '{'}})
	got, ok := ep.Parse("hb")
	assert.True(t, ok)
	assert.Equal(t, "{{", got)

	_, ok = ep.Parse("amp")
	assert.False(t, ok)
}
