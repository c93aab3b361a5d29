package measurement

// Edge declares that 1 From equals Factor To.
type Edge struct {
	From   Unit
	To     Unit
	Factor float64
}

// ConversionTable holds directed conversion factors between canonical
// units. An explicit edge A→B:f implies the inverse B→A:1/f; units with
// neither edge are incomparable. The zero value is an empty table.
type ConversionTable struct {
	edges map[Unit]map[Unit]float64
}

// NewTable builds an immutable conversion table from explicit edges.
func NewTable(edges []Edge) ConversionTable {
	t := ConversionTable{edges: make(map[Unit]map[Unit]float64, len(edges))}
	for _, e := range edges {
		if e.Factor == 0 {
			continue
		}
		m, ok := t.edges[e.From]
		if !ok {
			m = make(map[Unit]float64)
			t.edges[e.From] = m
		}
		m[e.To] = e.Factor
	}
	return t
}

// DefaultTable returns the standard kitchen conversion table.
func DefaultTable() ConversionTable {
	return NewTable([]Edge{
		// Weight
		{From: UnitKilogram, To: UnitGram, Factor: 1000},
		{From: UnitPound, To: UnitGram, Factor: 453.592},
		{From: UnitOunce, To: UnitGram, Factor: 28.3495},
		{From: UnitPound, To: UnitOunce, Factor: 16},
		{From: UnitKilogram, To: UnitPound, Factor: 2.20462},

		// Volume
		{From: UnitLiter, To: UnitMilliliter, Factor: 1000},
		{From: UnitCup, To: UnitMilliliter, Factor: 240},
		{From: UnitTablespoon, To: UnitMilliliter, Factor: 15},
		{From: UnitTeaspoon, To: UnitMilliliter, Factor: 5},
		{From: UnitCup, To: UnitTablespoon, Factor: 16},
		{From: UnitCup, To: UnitTeaspoon, Factor: 48},
		{From: UnitTablespoon, To: UnitTeaspoon, Factor: 3},
		{From: UnitLiter, To: UnitCup, Factor: 4.16667},

		// Sticks of butter are the one count unit with a weight identity.
		{From: UnitStick, To: UnitGram, Factor: 113.4},
	})
}

// Factor looks up the direct edge from → to.
func (t ConversionTable) Factor(from, to Unit) (float64, bool) {
	m, ok := t.edges[from]
	if !ok {
		return 0, false
	}
	f, ok := m[to]
	return f, ok
}

// Convert converts amount between two unit spellings. When either side
// is empty or both normalize to the same unit the amount passes through
// unchanged. A direct edge multiplies, an inverse edge divides. When no
// edge connects the units the amount is also returned unchanged; the
// caller must check Comparable before trusting that value.
func (t ConversionTable) Convert(amount float64, from, to string) float64 {
	if from == "" || to == "" {
		return amount
	}
	fu, tu := normalizeOrRaw(from), normalizeOrRaw(to)
	if fu == tu {
		return amount
	}
	if f, ok := t.Factor(fu, tu); ok {
		return amount * f
	}
	if f, ok := t.Factor(tu, fu); ok {
		return amount / f
	}
	return amount
}

// Comparable reports whether quantities in the two unit spellings can be
// compared: either side is dimensionless, both normalize to the same
// unit, or a direct or inverse edge connects them.
func (t ConversionTable) Comparable(from, to string) bool {
	if from == "" || to == "" {
		return true
	}
	fu, tu := normalizeOrRaw(from), normalizeOrRaw(to)
	if fu == tu {
		return true
	}
	if _, ok := t.Factor(fu, tu); ok {
		return true
	}
	_, ok := t.Factor(tu, fu)
	return ok
}

// Edges returns a copy of every explicit edge in the table.
func (t ConversionTable) Edges() []Edge {
	var out []Edge
	for from, m := range t.edges {
		for to, f := range m {
			out = append(out, Edge{From: from, To: to, Factor: f})
		}
	}
	return out
}
