package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/pantry/internal/domain/measurement"
)

func TestPlanDeductionsConvertsUnits(t *testing.T) {
	milk := newItem("milk", 1000, "ml")
	records := PlanDeductions([]string{"2 cups milk"}, []Item{milk}, measurement.DefaultTable())

	require.Len(t, records, 1)
	assert.Equal(t, milk.ID, records[0].ItemID)
	assert.InDelta(t, 1000, records[0].PreviousQuantity, 1e-9)
	assert.InDelta(t, 520, records[0].NewQuantity, 1e-9)
}

func TestPlanDeductionsRawFallbackWhenIncomparable(t *testing.T) {
	spinach := newItem("spinach", 3, "piece")
	records := PlanDeductions([]string{"2 cups spinach"}, []Item{spinach}, measurement.DefaultTable())

	require.Len(t, records, 1)
	assert.InDelta(t, 3, records[0].PreviousQuantity, 1e-9)
	assert.InDelta(t, 1, records[0].NewQuantity, 1e-9)
}

func TestPlanDeductionsFloorsAtZero(t *testing.T) {
	sugar := newItem("sugar", 2000, "g")
	records := PlanDeductions([]string{"5 kg sugar"}, []Item{sugar}, measurement.DefaultTable())

	require.Len(t, records, 1)
	assert.InDelta(t, 2000, records[0].PreviousQuantity, 1e-9)
	assert.Equal(t, 0.0, records[0].NewQuantity)
}

func TestPlanDeductionsSkipsNoOps(t *testing.T) {
	table := measurement.DefaultTable()

	// Item already at zero.
	eggs := newItem("eggs", 0, "")
	assert.Empty(t, PlanDeductions([]string{"2 eggs"}, []Item{eggs}, table))

	// No matching item at all.
	assert.Empty(t, PlanDeductions([]string{"2 eggs"}, []Item{newItem("flour", 500, "g")}, table))

	// No lines.
	assert.Empty(t, PlanDeductions(nil, []Item{eggs}, table))
}

func TestPlanDeductionsMergesRepeatedItem(t *testing.T) {
	milk := newItem("milk", 1000, "ml")
	lines := []string{"1 cup milk", "2 cups milk"}

	records := PlanDeductions(lines, []Item{milk}, measurement.DefaultTable())
	require.Len(t, records, 1, "repeated lines merge into one record")
	assert.InDelta(t, 1000, records[0].PreviousQuantity, 1e-9)
	assert.InDelta(t, 280, records[0].NewQuantity, 1e-9)
}

func TestPlanDeductionsChainsAgainstRunningQuantity(t *testing.T) {
	milk := newItem("milk", 300, "ml")
	lines := []string{"1 cup milk", "1 cup milk"}

	// First line leaves 60 ml, second floors the rest at zero.
	records := PlanDeductions(lines, []Item{milk}, measurement.DefaultTable())
	require.Len(t, records, 1)
	assert.InDelta(t, 300, records[0].PreviousQuantity, 1e-9)
	assert.Equal(t, 0.0, records[0].NewQuantity)
}

func TestPlanDeductionsOrderFollowsFirstTouch(t *testing.T) {
	flour := newItem("flour", 1000, "g")
	milk := newItem("milk", 1000, "ml")
	lines := []string{"1 cup milk", "200 g flour", "1 cup milk"}

	records := PlanDeductions(lines, []Item{flour, milk}, measurement.DefaultTable())
	require.Len(t, records, 2)
	assert.Equal(t, milk.ID, records[0].ItemID)
	assert.Equal(t, flour.ID, records[1].ItemID)
}

func TestPlanDeductionsIsPure(t *testing.T) {
	milk := newItem("milk", 1000, "ml")
	items := []Item{milk}

	PlanDeductions([]string{"2 cups milk"}, items, measurement.DefaultTable())
	assert.Equal(t, 1000.0, items[0].Quantity, "snapshot must not be mutated")
}
