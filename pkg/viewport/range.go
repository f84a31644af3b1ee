package viewport

import (
	"math"

	"github.com/odvcencio/gridport/pkg/position"
)

// RangeInput is the snapshot a raw window is computed from. All fields are
// read-only for the duration of the computation.
type RangeInput struct {
	Scroll      ScrollPosition
	Viewport    Size
	Rows        position.Table
	Columns     position.Table
	RowCount    int
	ColumnCount int

	// PageRowCount is the number of rows in the current page; it becomes
	// the vertical window size in auto-height mode.
	PageRowCount int

	// RowNeedsMeasurement reports whether the row at the given absolute
	// index has an auto height still awaiting measurement. Nil means no
	// row does.
	RowNeedsMeasurement func(index int) bool
}

// RangeCalculator derives the raw, unbuffered index window for a scroll
// position. Flags mirror the grid-level virtualization switches.
type RangeCalculator struct {
	Buffers                     BufferConfig
	AutoHeight                  bool
	DisableVirtualization       bool
	DisableColumnVirtualization bool
}

// Compute returns the raw window for the given snapshot.
//
// Rows: the first index is the row covering the top edge, the last is the
// exclusive bound found at the bottom edge, both clamped into the row
// range. In auto-height mode the container grows to its content, so the
// vertical window is simply one page starting at the first visible row.
//
// Columns: the window defaults to the full span. It narrows only when
// column virtualization is enabled and no row inside the buffered row
// window awaits height measurement; measuring a row against a partial set
// of cells would record the wrong height. The absolute value of the
// horizontal offset folds away the right-to-left sign flip.
func (rc RangeCalculator) Compute(in RangeInput) RenderContext {
	if in.RowCount <= 0 {
		return RenderContext{}
	}
	if rc.DisableVirtualization {
		return RenderContext{
			FirstRowIndex:    0,
			LastRowIndex:     in.RowCount,
			FirstColumnIndex: 0,
			LastColumnIndex:  in.ColumnCount,
		}
	}

	firstRow := clampInt(in.Rows.Search(in.Scroll.Top)-1, 0, in.RowCount-1)
	var lastRow int
	if rc.AutoHeight {
		lastRow = firstRow + in.PageRowCount
		if lastRow > in.RowCount {
			lastRow = in.RowCount
		}
	} else {
		lastRow = in.Rows.Search(in.Scroll.Top + in.Viewport.Height)
		if lastRow > in.RowCount-1 {
			lastRow = in.RowCount - 1
		}
		if lastRow < firstRow {
			lastRow = firstRow
		}
	}

	firstColumn, lastColumn := 0, in.ColumnCount
	if !rc.DisableColumnVirtualization && in.ColumnCount > 0 && !rc.hasAutoHeightRows(in, firstRow, lastRow) {
		left := math.Abs(in.Scroll.Left)
		firstColumn = clampInt(in.Columns.Search(left)-1, 0, in.ColumnCount-1)
		lastColumn = in.Columns.Search(left + in.Viewport.Width)
		if lastColumn > in.ColumnCount-1 {
			lastColumn = in.ColumnCount - 1
		}
		if lastColumn < firstColumn {
			lastColumn = firstColumn
		}
	}

	return RenderContext{
		FirstRowIndex:    firstRow,
		LastRowIndex:     lastRow,
		FirstColumnIndex: firstColumn,
		LastColumnIndex:  lastColumn,
	}
}

// hasAutoHeightRows reports whether any row in the buffered row window
// still needs measurement. The buffered window is checked, not the tight
// one, because buffered rows render too.
func (rc RangeCalculator) hasAutoHeightRows(in RangeInput, firstRow, lastRow int) bool {
	if in.RowNeedsMeasurement == nil {
		return false
	}
	first, last := Expand(firstRow, lastRow, rc.Buffers.RowBuffer, 0, in.RowCount)
	for i := first; i < last; i++ {
		if in.RowNeedsMeasurement(i) {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
