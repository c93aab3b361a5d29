package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredLine(t *testing.T) {
	tests := []struct {
		in   Structured
		want string
	}{
		{Structured{Name: "flour", Quantity: 2, Unit: "cup"}, "2 cup flour"},
		{Structured{Name: "salt", Quantity: 0.5, Unit: "tsp"}, "0.5 tsp salt"},
		{Structured{Name: "eggs", Quantity: 3}, "3 eggs"},
		{Structured{Name: "basil"}, "basil"},
		{Structured{Name: "  basil  ", Quantity: -1}, "basil"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Line())
	}
}

// A structured line must round-trip through the parser.
func TestStructuredLineParses(t *testing.T) {
	got := Parse(Structured{Name: "flour", Quantity: 2, Unit: "cups"}.Line())
	assert.Equal(t, "flour", got.Name)
	assert.Equal(t, 2.0, got.Quantity)
	assert.Equal(t, "cup", got.Unit)

	got = Parse(Structured{Name: "eggs"}.Line())
	assert.Equal(t, "eggs", got.Name)
	assert.Equal(t, 1.0, got.Quantity)
}

func TestRender(t *testing.T) {
	lines := []Line{
		PlainText("2 cups flour"),
		Structured{Name: "salt", Quantity: 1, Unit: "tsp"},
	}
	assert.Equal(t, []string{"2 cups flour", "1 tsp salt"}, Render(lines))
	assert.Empty(t, Render(nil))
}
