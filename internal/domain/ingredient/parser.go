// Package ingredient turns free-text recipe ingredient lines into a
// structured name, quantity and unit. Parsing is best-effort and never
// fails: any input yields a usable Parsed value.
package ingredient

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alchemorsel/pantry/internal/domain/measurement"
)

// Parsed is the structured form of one ingredient line. Unit is the
// canonical unit spelling, or empty when no unit token was recognized.
type Parsed struct {
	Original string
	Name     string
	Quantity float64
	Unit     string
}

var (
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Quantity grammar, tried in order: mixed number, simple fraction,
	// range (lower bound wins), then plain decimal or integer.
	mixedRe    = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)`)
	fractionRe = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)`)
	rangeRe    = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[-–—]\s*\d+(?:\.\d+)?`)
	numberRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)
)

// vulgarFractions spells out the unicode fraction glyphs so the grammar
// above handles "1½ cups" and "½ tsp" the same as their ASCII forms.
var vulgarFractions = strings.NewReplacer(
	"¼", " 1/4", "½", " 1/2", "¾", " 3/4",
	"⅓", " 1/3", "⅔", " 2/3",
	"⅕", " 1/5", "⅖", " 2/5", "⅗", " 3/5", "⅘", " 4/5",
	"⅙", " 1/6", "⅚", " 5/6",
	"⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
	"⁄", "/",
)

// Parse extracts the quantity, unit and cleaned name from one ingredient
// line. A line with no leading numeral keeps quantity 1 and consumes no
// prefix; a line with no recognized unit token leaves Unit empty.
func Parse(line string) Parsed {
	p := Parsed{Original: line, Quantity: 1}

	s := strings.ToLower(strings.TrimSpace(line))
	s = parenRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(vulgarFractions.Replace(s))

	qty, rest, ok := parseQuantity(s)
	if ok {
		p.Quantity = qty
		s = rest
	}

	if token, rest, ok := nextToken(s); ok {
		if u, isUnit := measurement.Normalize(token); isUnit {
			p.Unit = string(u)
			s = rest
		}
	}

	p.Name = cleanName(s)
	return p
}

// parseQuantity matches a leading quantity token and returns the value
// and the unconsumed remainder. Ranges resolve to their lower bound.
func parseQuantity(s string) (float64, string, bool) {
	if m := mixedRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			return whole + num/den, strings.TrimSpace(s[len(m[0]):]), true
		}
	}
	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den != 0 {
			return num / den, strings.TrimSpace(s[len(m[0]):]), true
		}
	}
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		return low, strings.TrimSpace(s[len(m[0]):]), true
	}
	if m := numberRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n, strings.TrimSpace(s[len(m[0]):]), true
	}
	return 0, s, false
}

// nextToken splits off the first whitespace-delimited token.
func nextToken(s string) (token, rest string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i:]), true
	}
	return s, "", true
}

// cleanName strips parentheticals, hyphens and stop words from the text
// remaining after quantity and unit removal. When stripping would empty
// the name the pre-strip text is retained so the name is never lost.
func cleanName(s string) string {
	s = parenRe.ReplaceAllString(s, " ")
	s = strings.NewReplacer("-", " ", "–", " ", "—", " ").Replace(s)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	words := strings.Fields(s)
	kept := words[:0:0]
	for _, w := range words {
		if isStopWord(strings.Trim(w, ",.")) {
			continue
		}
		kept = append(kept, w)
	}

	name := strings.Join(kept, " ")
	name = strings.Trim(name, " ,.")
	if name == "" {
		return s
	}
	return name
}
