// Package measurement defines the canonical measurement units used across
// the pantry domain and the conversion table that relates them.
// The table is an immutable value constructed once and injected wherever
// quantities must be compared; there is no package-level mutable state.
package measurement

import "strings"

// Unit is the canonical identifier a measurement unit normalizes to
// before any conversion lookup.
type Unit string

// Canonical units recognized by the pantry core.
const (
	// Weight units
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitOunce    Unit = "oz"
	UnitPound    Unit = "lb"

	// Volume units
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"

	// Count units
	UnitPiece Unit = "piece"
	UnitClove Unit = "clove"
	UnitSlice Unit = "slice"
	UnitCan   Unit = "can"
	UnitBunch Unit = "bunch"
	UnitStick Unit = "stick"
	UnitPinch Unit = "pinch"
	UnitDash  Unit = "dash"
)

// synonyms maps every accepted spelling, plural and abbreviation to its
// canonical unit.
var synonyms = map[string]Unit{
	"g": UnitGram, "gram": UnitGram, "grams": UnitGram, "gr": UnitGram,
	"kg": UnitKilogram, "kgs": UnitKilogram, "kilogram": UnitKilogram, "kilograms": UnitKilogram,
	"oz": UnitOunce, "ounce": UnitOunce, "ounces": UnitOunce,
	"lb": UnitPound, "lbs": UnitPound, "pound": UnitPound, "pounds": UnitPound,

	"ml": UnitMilliliter, "milliliter": UnitMilliliter, "milliliters": UnitMilliliter,
	"millilitre": UnitMilliliter, "millilitres": UnitMilliliter,
	"l": UnitLiter, "liter": UnitLiter, "liters": UnitLiter, "litre": UnitLiter, "litres": UnitLiter,
	"tsp": UnitTeaspoon, "tsps": UnitTeaspoon, "teaspoon": UnitTeaspoon, "teaspoons": UnitTeaspoon,
	"tbsp": UnitTablespoon, "tbsps": UnitTablespoon, "tbs": UnitTablespoon,
	"tablespoon": UnitTablespoon, "tablespoons": UnitTablespoon,
	"cup": UnitCup, "cups": UnitCup,

	"piece": UnitPiece, "pieces": UnitPiece, "pc": UnitPiece, "pcs": UnitPiece,
	"clove": UnitClove, "cloves": UnitClove,
	"slice": UnitSlice, "slices": UnitSlice,
	"can": UnitCan, "cans": UnitCan,
	"bunch": UnitBunch, "bunches": UnitBunch,
	"stick": UnitStick, "sticks": UnitStick,
	"pinch": UnitPinch, "pinches": UnitPinch,
	"dash": UnitDash, "dashes": UnitDash,
}

// Normalize resolves a free-text unit token to its canonical unit.
// Matching is case-insensitive and tolerates a trailing period ("tsp.").
func Normalize(token string) (Unit, bool) {
	s := strings.ToLower(strings.TrimSpace(token))
	s = strings.TrimSuffix(s, ".")
	u, ok := synonyms[s]
	return u, ok
}

// normalizeOrRaw resolves a token to its canonical unit, falling back to
// the lower-cased raw token so that unknown-but-equal units still compare.
func normalizeOrRaw(token string) Unit {
	if u, ok := Normalize(token); ok {
		return u
	}
	return Unit(strings.ToLower(strings.TrimSpace(token)))
}

// IsUnitToken reports whether the token reads as a measurement unit.
func IsUnitToken(token string) bool {
	_, ok := Normalize(token)
	return ok
}

// SynonymSet returns every spelling Normalize accepts. The parser uses
// this as part of its stop-word list when cleaning ingredient names.
func SynonymSet() map[string]struct{} {
	set := make(map[string]struct{}, len(synonyms))
	for s := range synonyms {
		set[s] = struct{}{}
	}
	return set
}
