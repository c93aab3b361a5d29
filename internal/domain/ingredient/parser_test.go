package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		quantity float64
		unit     string
	}{
		{"2 cups flour", "flour", 2, "cup"},
		{"1/2 tsp salt", "salt", 0.5, "tsp"},
		{"½ tsp salt", "salt", 0.5, "tsp"},
		{"1 1/2 cups whole milk", "milk", 1.5, "cup"},
		{"1½ cups flour", "flour", 1.5, "cup"},
		{"1⁄2 cup sugar", "sugar", 0.5, "cup"},
		{"3-4 tomatoes", "tomatoes", 3, ""},
		{"3–4 carrots", "carrots", 3, ""},
		{"1.5-2 lbs chicken thighs", "chicken thighs", 1.5, "lb"},
		{"2 (15 oz) cans black beans", "black beans", 2, "can"},
		{"2 cloves garlic, minced", "garlic", 2, "clove"},
		{"2.5 kg potatoes, peeled", "potatoes", 2.5, "kg"},
		{"freshly ground black pepper", "black pepper", 1, ""},
		{"extra-virgin olive oil", "extra virgin olive oil", 1, ""},
		{"salt", "salt", 1, ""},
		{"Salt, to taste", "salt", 1, ""},
		{"3 eggs", "eggs", 3, ""},
		{"1 stick butter, softened", "butter", 1, "stick"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Parse(tt.line)
			assert.Equal(t, tt.line, got.Original)
			assert.Equal(t, tt.name, got.Name)
			assert.InDelta(t, tt.quantity, got.Quantity, 1e-9)
			assert.Equal(t, tt.unit, got.Unit)
		})
	}
}

func TestParseNeverFails(t *testing.T) {
	for _, line := range []string{"", "   ", "1/0 cups flour", "----", "((("} {
		got := Parse(line)
		assert.Equal(t, line, got.Original)
		assert.GreaterOrEqual(t, got.Quantity, 0.0)
	}
}

func TestParseEmptyLineDefaults(t *testing.T) {
	got := Parse("")
	assert.Equal(t, "", got.Name)
	assert.Equal(t, 1.0, got.Quantity)
	assert.Equal(t, "", got.Unit)
}

// Cleaned names contain no quantities, units or descriptors, so feeding
// a parsed name back through the parser must leave it unchanged.
func TestParseNameIsIdempotent(t *testing.T) {
	for _, line := range []string{
		"2 cups flour",
		"1 1/2 lbs ground beef",
		"3 cloves garlic, minced",
		"fresh basil leaves",
	} {
		first := Parse(line).Name
		second := Parse(first).Name
		assert.Equal(t, first, second, "line %q", line)
	}
}

// A name made entirely of stop words survives rather than cleaning to
// the empty string.
func TestParseKeepsAllStopWordName(t *testing.T) {
	got := Parse("fresh")
	assert.Equal(t, "fresh", got.Name)
}
