// ABOUTME: Outcome records how validation went for one top-level batch
// ABOUTME: Carries expected/actual counts, recovery flag and recursion depth for reporting
package models

// Outcome summarizes the validation of one top-level batch: what the batch
// expected, what the service's first response actually contained, whether
// the recursive recovery path was needed, and how deep it went.
type Outcome struct {
	BatchIndex int
	// Expected is the batch's unit count.
	Expected int
	// Actual is the number of well-formed tagged units recovered from the
	// first response for the whole batch.
	Actual int
	// Recovered reports that the first response failed validation and the
	// batch still completed through retries or splitting.
	Recovered bool
	// Depth is the deepest recursion level reached (0 = no split).
	Depth int
	// Calls counts adapter invocations spent on the batch, including
	// retries and sub-batches.
	Calls int
	// Failed lists unit indexes left untranslated after their recovery
	// budget ran out. Populated only in best-effort mode; otherwise the
	// first terminal failure aborts the batch.
	Failed []int
}
