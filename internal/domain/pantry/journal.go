package pantry

// Journal is the single-level undo journal for the most recent cook
// action. It holds at most one set of deduction records; a new cook
// replaces the previous set, and taking the records consumes them.
// The journal is owned by the caller of the deduction engine, never
// persisted by the core.
type Journal struct {
	records []DeductionRecord
}

// NewJournal creates a journal holding the given records.
func NewJournal(records []DeductionRecord) Journal {
	return Journal{records: records}
}

// Replace swaps in the records of a newer cook action, discarding any
// previous entries. The superseded deduction becomes permanent.
func (j *Journal) Replace(records []DeductionRecord) {
	j.records = records
}

// Take returns the journaled records and clears the journal. A second
// Take returns nil.
func (j *Journal) Take() []DeductionRecord {
	records := j.records
	j.records = nil
	return records
}

// Empty reports whether there is anything to undo.
func (j Journal) Empty() bool {
	return len(j.records) == 0
}

// Len returns the number of journaled records.
func (j Journal) Len() int {
	return len(j.records)
}
