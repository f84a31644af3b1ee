package viewport

// Expand pads the half-open window [first, last) by buffer items on each
// side and clamps both boundaries independently into [minIndex, maxIndex].
// The result [a, b) always satisfies minIndex <= a <= b <= maxIndex when
// minIndex <= maxIndex.
func Expand(first, last, buffer, minIndex, maxIndex int) (int, int) {
	first = clampInt(first-buffer, minIndex, maxIndex)
	last = clampInt(last+buffer, minIndex, maxIndex)
	if first > last {
		first = last
	}
	return first, last
}

// WindowExpander applies buffer padding with the axis-specific bounds.
// Pinned column regions sit outside the scrollable window's index space:
// they render in full on every commit, so expansion never reaches into
// them.
type WindowExpander struct {
	Buffers BufferConfig
	Spans   SpanResolver
}

// ExpandRows buffers the row window within [0, rowCount].
func (e WindowExpander) ExpandRows(ctx RenderContext, rowCount int) RenderContext {
	ctx.FirstRowIndex, ctx.LastRowIndex = Expand(
		ctx.FirstRowIndex, ctx.LastRowIndex, e.Buffers.RowBuffer, 0, rowCount)
	return ctx
}

// ExpandColumns buffers the column window within the unpinned region, then
// pulls the first boundary back to the start of any merged cell it would
// otherwise split.
func (e WindowExpander) ExpandColumns(ctx RenderContext, columns ColumnSet) RenderContext {
	minIndex := columns.LeftPinned
	maxIndex := columns.Len() - columns.RightPinned
	if maxIndex < minIndex {
		maxIndex = minIndex
	}
	first, last := Expand(
		ctx.FirstColumnIndex, ctx.LastColumnIndex, e.Buffers.ColumnBuffer, minIndex, maxIndex)
	if e.Spans != nil {
		adjusted := e.Spans.FirstNonSpannedColumn(first, ctx.FirstRowIndex, ctx.LastRowIndex)
		if adjusted >= 0 && adjusted < first {
			first = adjusted
		}
	}
	ctx.FirstColumnIndex, ctx.LastColumnIndex = first, last
	return ctx
}
