package viewport

import "github.com/odvcencio/gridport/pkg/position"

// HeightAuto marks a row whose height is measured after render rather than
// known up front. While such a row sits inside the buffered window the
// column range stays full, so the measurement sees a complete set of cells.
const HeightAuto float64 = -1

// ScrollPosition is the current scroll offset in pixels. Left is negative
// under right-to-left layout.
type ScrollPosition struct {
	Top  float64
	Left float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Column describes one grid column.
type Column struct {
	Field string
	Width float64
}

// PinnedColumns holds the column descriptors excluded from horizontal
// virtualization, in render order. Either side may be empty.
type PinnedColumns struct {
	Left  []Column
	Right []Column
}

// ColumnSet is the full ordered column snapshot: left-pinned columns first,
// then the scrollable region, then right-pinned columns. Positions covers
// the same order with cumulative pixel offsets.
type ColumnSet struct {
	All         []Column
	LeftPinned  int
	RightPinned int
	Positions   position.Table
}

// Pinned returns the pinned descriptors on each side.
func (cs ColumnSet) Pinned() PinnedColumns {
	n := len(cs.All)
	left := cs.LeftPinned
	if left > n {
		left = n
	}
	right := cs.RightPinned
	if right > n-left {
		right = n - left
	}
	return PinnedColumns{
		Left:  cs.All[:left],
		Right: cs.All[n-right:],
	}
}

// Len returns the total column count.
func (cs ColumnSet) Len() int {
	return len(cs.All)
}

// IndexOf returns the index of the column with the given field, or -1.
func (cs ColumnSet) IndexOf(field string) int {
	for i, col := range cs.All {
		if col.Field == field {
			return i
		}
	}
	return -1
}

// IsPinned reports whether the column index falls in a pinned region.
func (cs ColumnSet) IsPinned(index int) bool {
	return index < cs.LeftPinned || index >= len(cs.All)-cs.RightPinned
}

// Row is one entry of the current page, in dataset order. Height is the
// explicit row height in pixels, or HeightAuto.
type Row struct {
	ID     string
	Height float64
}

// CellRef identifies a cell by row id and column field.
type CellRef struct {
	RowID string
	Field string
}

// BufferConfig is the number of extra items rendered beyond the tight
// window on each side of each axis, masking scroll-induced pop-in.
type BufferConfig struct {
	RowBuffer    int
	ColumnBuffer int
}

// ThresholdConfig is the minimum index delta, on any of the four window
// boundaries, required before a new window replaces the committed one.
type ThresholdConfig struct {
	RowThreshold    int
	ColumnThreshold int
}
