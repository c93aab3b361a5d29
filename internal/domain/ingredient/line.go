package ingredient

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is a recipe ingredient in one of its two source shapes. Both
// shapes render to the single plain-text form the parser consumes.
type Line interface {
	Line() string
}

// PlainText is an ingredient supplied as a free-text line.
type PlainText string

// Line returns the text unchanged.
func (p PlainText) Line() string {
	return string(p)
}

// Structured is an ingredient supplied as separate name, quantity and
// unit fields. Quantity and Unit are optional; a zero quantity renders
// as a bare name so the parser applies its default of one.
type Structured struct {
	Name     string
	Quantity float64
	Unit     string
}

// Line renders the structured fields as a parseable text line.
func (s Structured) Line() string {
	name := strings.TrimSpace(s.Name)
	if s.Quantity <= 0 {
		return name
	}
	qty := strconv.FormatFloat(s.Quantity, 'f', -1, 64)
	if s.Unit == "" {
		return fmt.Sprintf("%s %s", qty, name)
	}
	return fmt.Sprintf("%s %s %s", qty, s.Unit, name)
}

// Render flattens a list of lines to the plain-text form.
func Render(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Line())
	}
	return out
}
