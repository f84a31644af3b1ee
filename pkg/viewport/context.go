package viewport

// RenderContext is a half-open index window over rows and columns: rows in
// [FirstRowIndex, LastRowIndex) and columns in [FirstColumnIndex,
// LastColumnIndex) must be materialized. The zero value is the empty window
// a grid holds at mount, before any sizing data arrives.
type RenderContext struct {
	FirstRowIndex    int
	LastRowIndex     int
	FirstColumnIndex int
	LastColumnIndex  int
}

// Equal reports structural equality of the two windows.
func (c RenderContext) Equal(other RenderContext) bool {
	return c == other
}

// RowCount returns the number of rows inside the window.
func (c RenderContext) RowCount() int {
	if c.LastRowIndex < c.FirstRowIndex {
		return 0
	}
	return c.LastRowIndex - c.FirstRowIndex
}

// ColumnCount returns the number of columns inside the window.
func (c RenderContext) ColumnCount() int {
	if c.LastColumnIndex < c.FirstColumnIndex {
		return 0
	}
	return c.LastColumnIndex - c.FirstColumnIndex
}

// ContainsRow reports whether the absolute row index lies inside the window.
func (c RenderContext) ContainsRow(index int) bool {
	return index >= c.FirstRowIndex && index < c.LastRowIndex
}

// ContainsColumn reports whether the column index lies inside the window.
func (c RenderContext) ContainsColumn(index int) bool {
	return index >= c.FirstColumnIndex && index < c.LastColumnIndex
}
