package viewport

// Keyboard navigation must never land on an unrendered element. Rather than
// widening the committed window to reach a far-away focused cell, the
// focused row is spliced into the rendered set at the boundary nearer to
// it, and an out-of-window focused column is tracked as a single extra
// descriptor injected per row.

// RowSplice says where a focus-forced row joins the rendered set.
type RowSplice int

const (
	// SpliceNone: the focused row is inside the window, or there is no
	// focused row to force.
	SpliceNone RowSplice = iota
	// SplicePrepend: the focused row precedes the window.
	SplicePrepend
	// SpliceAppend: the focused row follows the window.
	SpliceAppend
)

// FocusGuard resolves which rendered-set adjustments a focused cell needs
// for a given committed window.
type FocusGuard struct{}

// RowAdjustment returns how the row at the given absolute index should be
// spliced relative to the committed window. An index outside [0, rowCount)
// means the focused row is no longer present and needs no adjustment.
func (FocusGuard) RowAdjustment(focusedRow int, ctx RenderContext, rowCount int) RowSplice {
	if focusedRow < 0 || focusedRow >= rowCount {
		return SpliceNone
	}
	if ctx.ContainsRow(focusedRow) {
		return SpliceNone
	}
	if focusedRow < ctx.FirstRowIndex {
		return SplicePrepend
	}
	return SpliceAppend
}

// ColumnAdjustment reports whether the focused column needs a separately
// tracked descriptor: it does when it lies outside the rendered column
// slice and is not already covered by a pinned region. Returns -1 when no
// extra descriptor is needed, the column index otherwise.
func (FocusGuard) ColumnAdjustment(focusedColumn int, ctx RenderContext, columns ColumnSet) int {
	if focusedColumn < 0 || focusedColumn >= columns.Len() {
		return -1
	}
	if ctx.ContainsColumn(focusedColumn) {
		return -1
	}
	if columns.IsPinned(focusedColumn) {
		return -1
	}
	return focusedColumn
}
