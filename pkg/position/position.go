// Package position implements search primitives over cumulative offset
// tables. A table holds one entry per row or column: the pixel offset at
// which that item begins. Entries are non-decreasing. Tables are built by a
// layout collaborator and handed to the engine as immutable snapshots.
package position

import "math"

// Table is a snapshot of cumulative item offsets.
//
// LastMeasured is the highest index whose offset is final rather than
// estimated. Items past it may still carry estimated offsets (for example
// rows whose height has not been measured yet). A zero Table is empty.
type Table struct {
	Positions    []float64
	LastMeasured int
}

// NewTable builds a fully measured table from the given offsets.
func NewTable(positions []float64) Table {
	last := len(positions) - 1
	if last < 0 {
		last = 0
	}
	return Table{Positions: positions, LastMeasured: last}
}

// Len returns the number of items in the table.
func (t Table) Len() int {
	return len(t.Positions)
}

// OffsetOf returns the offset at which item i begins, clamping i into the
// table's bounds. Returns 0 for an empty table.
func (t Table) OffsetOf(i int) float64 {
	if len(t.Positions) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(t.Positions) {
		i = len(t.Positions) - 1
	}
	return t.Positions[i]
}

// Search returns the smallest index whose position strictly exceeds offset,
// or Len() when no such index exists, or -1 on an empty table.
//
// The strategy is chosen per query: a plain binary search over the whole
// table when every item at or below offset has a final measurement, an
// exponential search starting from the last measured index otherwise. Both
// strategies return identical results on fully measured tables; the
// exponential probe just avoids comparing against stale estimates on the
// far side of the measurement frontier.
func (t Table) Search(offset float64) int {
	if len(t.Positions) == 0 {
		return -1
	}
	last := t.LastMeasured
	if last < 0 {
		last = 0
	}
	if last >= len(t.Positions)-1 || t.Positions[last] >= offset {
		return BinarySearch(offset, t.Positions, 0, len(t.Positions))
	}
	return ExponentialSearch(offset, t.Positions, last)
}

// IndexOf returns the index of the item covering the given offset, clamped
// into [0, Len()-1]. Returns -1 on an empty table.
func (t Table) IndexOf(offset float64) int {
	i := t.Search(offset)
	if i < 0 {
		return -1
	}
	i--
	if i < 0 {
		i = 0
	}
	if i >= len(t.Positions) {
		i = len(t.Positions) - 1
	}
	return i
}

// BinarySearch returns the smallest index i in [sliceStart, sliceEnd) with
// positions[i] > offset, or sliceEnd when no such index exists. With equal
// adjacent positions the lowest qualifying index wins. Returns -1 when
// positions is empty and sliceStart when the slice is degenerate.
//
// Iterative on purpose: the recursion depth would track the table size on
// pathological inputs.
func BinarySearch(offset float64, positions []float64, sliceStart, sliceEnd int) int {
	if len(positions) == 0 {
		return -1
	}
	if sliceStart >= sliceEnd {
		return sliceStart
	}
	lo, hi := sliceStart, sliceEnd
	for lo < hi {
		pivot := lo + (hi-lo)/2
		if offset < positions[pivot] {
			hi = pivot
		} else {
			lo = pivot + 1
		}
	}
	return lo
}

// ExponentialSearch behaves like BinarySearch over the whole table but
// starts probing at fromIndex, doubling the step while the probed position
// stays at or below offset, then binary-searches the bounded window. Use it
// when
// positions past fromIndex are estimates: it touches the estimated region
// O(log k) times for a target k items past the frontier instead of
// comparing against estimates throughout a full binary search.
func ExponentialSearch(offset float64, positions []float64, fromIndex int) int {
	if len(positions) == 0 {
		return -1
	}
	if fromIndex < 0 {
		fromIndex = 0
	}
	interval := 1
	index := fromIndex
	// The probe must pass any position equal to offset: the answer is the
	// first strictly greater index, which would otherwise sit outside the
	// bounded window handed to the binary search.
	for index < len(positions) && math.Abs(positions[index]) <= offset {
		index += interval
		interval *= 2
	}
	end := index
	if end > len(positions) {
		end = len(positions)
	}
	return BinarySearch(offset, positions, index/2, end)
}
