// ABOUTME: Batch type grouping contiguous content units for one translation request
// ABOUTME: Batches partition the unit sequence and share the document's unit storage
package models

// Batch is a contiguous run of a document's units transmitted together.
// Units is a sub-slice of Document.Units, so a batch references the
// document's units rather than copying them; batches are created by the
// batcher and consumed within one translation attempt.
type Batch struct {
	// Index is the batch ordinal in document order (0..n-1).
	Index int
	Units []*ContentUnit
	// Tokens is the estimated token size of the batch's stripped text.
	Tokens int
}

// Len returns the number of units in the batch.
func (b Batch) Len() int { return len(b.Units) }

// From returns the document index of the batch's first unit.
func (b Batch) From() int {
	if len(b.Units) == 0 {
		return -1
	}
	return b.Units[0].Index
}

// To returns the document index of the batch's last unit.
func (b Batch) To() int {
	if len(b.Units) == 0 {
		return -1
	}
	return b.Units[len(b.Units)-1].Index
}
