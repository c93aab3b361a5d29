package pantry

import (
	"github.com/alchemorsel/pantry/internal/domain/ingredient"
	"github.com/alchemorsel/pantry/internal/domain/measurement"
	"github.com/google/uuid"
)

// DeductionRecord captures one item's quantity change from a cook
// action. The list of records for the most recent cook is the undo
// journal enabling one-step reversal.
type DeductionRecord struct {
	ItemID           uuid.UUID
	PreviousQuantity float64
	NewQuantity      float64
}

// PlanDeductions computes the quantity changes cooking the given recipe
// lines would apply to the inventory snapshot. It is pure: nothing is
// written. Matching uses the same name-containment rule as the matcher
// but no comparability gate blocks deduction: when units cannot be
// converted the raw parsed quantity is deducted as-is. Quantities floor
// at zero and items whose quantity would not change are skipped. Lines
// that resolve to the same item chain against its running quantity and
// merge into a single record.
func PlanDeductions(lines []string, items []Item, table measurement.ConversionTable) []DeductionRecord {
	current := make(map[uuid.UUID]float64, len(items))
	for _, item := range items {
		current[item.ID] = item.Quantity
	}

	var order []uuid.UUID
	planned := make(map[uuid.UUID]*DeductionRecord)

	for _, line := range lines {
		parsed := ingredient.Parse(line)
		item := findByName(items, parsed.Name)
		if item == nil {
			continue
		}

		deduct := parsed.Quantity
		if parsed.Unit != "" && item.Unit != "" && table.Comparable(parsed.Unit, item.Unit) {
			deduct = table.Convert(parsed.Quantity, parsed.Unit, item.Unit)
		}

		prev := current[item.ID]
		next := prev - deduct
		if next < 0 {
			next = 0
		}
		if next == prev {
			continue
		}
		current[item.ID] = next

		if rec, ok := planned[item.ID]; ok {
			rec.NewQuantity = next
			continue
		}
		planned[item.ID] = &DeductionRecord{
			ItemID:           item.ID,
			PreviousQuantity: prev,
			NewQuantity:      next,
		}
		order = append(order, item.ID)
	}

	records := make([]DeductionRecord, 0, len(order))
	for _, id := range order {
		records = append(records, *planned[id])
	}
	return records
}
