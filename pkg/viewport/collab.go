package viewport

// SpanResolver answers column-span questions for the windowing pipeline.
// When the computed first column falls inside a multi-column merged cell
// owned by an earlier column, the window boundary is pulled back to the
// start of that span. Merging rules themselves live with the embedder.
type SpanResolver interface {
	// FirstNonSpannedColumn returns the column index the window should
	// start at so that no merged cell in rows [firstRow, lastRow) is cut
	// in half. Returning firstColumn unchanged means no adjustment.
	FirstNonSpannedColumn(firstColumn, firstRow, lastRow int) int
}

// SelectionLookup reports row selection state for rendered-row annotation.
type SelectionLookup interface {
	IsSelected(rowID string) bool
}

// RowParamsFunc lets the embedder attach arbitrary per-row data to rendered
// rows. Results are cached by row id until InvalidateRowParams is called on
// the engine. Optional.
type RowParamsFunc func(rowID string) any
