package pantry

import (
	"github.com/alchemorsel/pantry/internal/domain/ingredient"
	"github.com/alchemorsel/pantry/internal/domain/measurement"
)

// MatchStatus classifies how well the pantry covers one ingredient.
type MatchStatus string

const (
	MatchStatusFull    MatchStatus = "full"
	MatchStatusPartial MatchStatus = "partial"
	MatchStatusNone    MatchStatus = "none"
)

// Match is the result of comparing one parsed ingredient against the
// pantry. Percentage is uncapped: abundant stock can exceed 100.
// Comparable is false when both sides carry units with no conversion
// path between them; such matches are forced to a conservative partial.
type Match struct {
	Status     MatchStatus
	Item       *Item
	HasEnough  bool
	Percentage float64
	Comparable bool
	Parsed     ingredient.Parsed
}

// MatchPolicy holds the tunable constants of the matching heuristic.
type MatchPolicy struct {
	// IncomparablePercent is the placeholder coverage assumed when an
	// ingredient and its pantry item carry unconvertible units.
	IncomparablePercent float64

	// CapScore caps recipe scores at 100 when set.
	CapScore bool
}

// DefaultMatchPolicy returns the policy the mobile clients expect.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{IncomparablePercent: 50}
}

// Matcher matches recipe ingredient lines against pantry inventory.
// It is pure and safe for concurrent use.
type Matcher struct {
	table  measurement.ConversionTable
	policy MatchPolicy
}

// NewMatcher creates a matcher over the given conversion table.
func NewMatcher(table measurement.ConversionTable, policy MatchPolicy) *Matcher {
	return &Matcher{table: table, policy: policy}
}

// Match parses one ingredient line and classifies pantry coverage.
func (m *Matcher) Match(line string, items []Item) Match {
	parsed := ingredient.Parse(line)
	result := Match{Status: MatchStatusNone, Parsed: parsed}

	item := findByName(items, parsed.Name)
	if item == nil {
		return result
	}
	result.Item = item

	if parsed.Unit != "" && item.Unit != "" && !m.table.Comparable(item.Unit, parsed.Unit) {
		result.Status = MatchStatusPartial
		result.Percentage = m.policy.IncomparablePercent
		return result
	}
	result.Comparable = true

	needed := parsed.Quantity
	available := m.table.Convert(item.Quantity, item.Unit, parsed.Unit)
	if needed <= 0 {
		result.Status = MatchStatusFull
		result.HasEnough = true
		result.Percentage = 100
		return result
	}

	result.Percentage = available / needed * 100
	result.HasEnough = available >= needed
	if result.HasEnough {
		result.Status = MatchStatusFull
	} else {
		result.Status = MatchStatusPartial
	}
	return result
}
