package viewport

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ColumnSlices is the set of column descriptors a rendered row draws, in
// render order: pinned-left, the virtualized window, an optional extra
// descriptor for an out-of-window focused column, pinned-right.
type ColumnSlices struct {
	Left    []Column
	Window  []Column
	Focused *Column
	Right   []Column
}

// RenderedRow is one entry of the ordered collection handed to the row
// renderer.
type RenderedRow struct {
	// ID is the row identity from the page entry.
	ID string
	// Index is the absolute dataset index (page offset applied).
	Index int
	// Selected mirrors the selection collaborator's answer for this row.
	Selected bool
	// Height is the explicit pixel height, or HeightAuto.
	Height float64
	// FocusedField and TabbableField name the cell holding focus or the
	// tab stop within this row, empty otherwise.
	FocusedField  string
	TabbableField string
	// Params carries embedder data from the row-params callback.
	Params any
	// FullColumnSpan is set on a focus-spliced row: its span metadata must
	// be computed against the full column range, since the row never took
	// part in the window's normal span computation.
	FullColumnSpan bool
	Columns        ColumnSlices
}

// BuildInput is the snapshot a rendered set is produced from.
type BuildInput struct {
	Context    RenderContext
	Page       []Row
	PageOffset int
	RowCount   int

	Columns ColumnSet
	// ColumnsGeneration changes whenever the column snapshot is replaced;
	// it keys the column-slice cache.
	ColumnsGeneration uint64

	Focused  *CellRef
	Tabbable *CellRef

	Selection SelectionLookup
	RowParams RowParamsFunc
	// RowParamsGeneration changes whenever the row-params source changes;
	// it keys the row-params cache.
	RowParamsGeneration uint64
}

type columnSliceKey struct {
	generation    uint64
	first, last   int
	minFirst      int
	maxLast       int
	focusedColumn int
}

type rowParamsKey struct {
	rowID      string
	generation uint64
}

// RenderedSetBuilder turns a committed window into the ordered rendered-row
// collection. Two small caches keep repeated builds cheap: column slices
// are cached by the full tuple of inputs that shape them, and row params by
// row identity until the params source changes.
type RenderedSetBuilder struct {
	guard        FocusGuard
	columnSlices *lru.Cache[columnSliceKey, ColumnSlices]
	rowParams    *lru.Cache[rowParamsKey, any]
}

// NewRenderedSetBuilder creates a builder with the given cache capacities.
// Non-positive capacities fall back to small defaults.
func NewRenderedSetBuilder(columnCacheSize, rowParamsCacheSize int) *RenderedSetBuilder {
	if columnCacheSize <= 0 {
		columnCacheSize = 8
	}
	if rowParamsCacheSize <= 0 {
		rowParamsCacheSize = 256
	}
	columnCache, _ := lru.New[columnSliceKey, ColumnSlices](columnCacheSize)
	paramsCache, _ := lru.New[rowParamsKey, any](rowParamsCacheSize)
	return &RenderedSetBuilder{
		columnSlices: columnCache,
		rowParams:    paramsCache,
	}
}

// Build produces the rendered rows for the committed window, including any
// focus-guard splice. Rows arrive in render order: a prepended focused row
// first, then the window slice, then an appended focused row.
func (b *RenderedSetBuilder) Build(in BuildInput) []RenderedRow {
	if len(in.Page) == 0 || in.RowCount <= 0 {
		return nil
	}

	focusedRow, focusedColumn := -1, -1
	if in.Focused != nil {
		if i := pageIndexOf(in.Page, in.Focused.RowID); i >= 0 {
			focusedRow = i
		}
		focusedColumn = in.Columns.IndexOf(in.Focused.Field)
	}

	splice := b.guard.RowAdjustment(focusedRow, in.Context, in.RowCount)
	extraColumn := b.guard.ColumnAdjustment(focusedColumn, in.Context, in.Columns)
	slices := b.slicesFor(in, extraColumn)

	first := clampInt(in.Context.FirstRowIndex, 0, len(in.Page))
	last := clampInt(in.Context.LastRowIndex, first, len(in.Page))

	out := make([]RenderedRow, 0, last-first+1)
	if splice == SplicePrepend {
		out = append(out, b.renderRow(in, focusedRow, slices, true))
	}
	for i := first; i < last; i++ {
		out = append(out, b.renderRow(in, i, slices, false))
	}
	if splice == SpliceAppend {
		out = append(out, b.renderRow(in, focusedRow, slices, true))
	}
	return out
}

func (b *RenderedSetBuilder) renderRow(in BuildInput, pageIndex int, slices ColumnSlices, spliced bool) RenderedRow {
	row := in.Page[pageIndex]
	rendered := RenderedRow{
		ID:             row.ID,
		Index:          in.PageOffset + pageIndex,
		Height:         row.Height,
		FullColumnSpan: spliced,
		Columns:        slices,
	}
	if in.Selection != nil {
		rendered.Selected = in.Selection.IsSelected(row.ID)
	}
	if in.Focused != nil && in.Focused.RowID == row.ID {
		rendered.FocusedField = in.Focused.Field
	}
	if in.Tabbable != nil && in.Tabbable.RowID == row.ID {
		rendered.TabbableField = in.Tabbable.Field
	}
	if in.RowParams != nil {
		key := rowParamsKey{rowID: row.ID, generation: in.RowParamsGeneration}
		params, ok := b.rowParams.Get(key)
		if !ok {
			params = in.RowParams(row.ID)
			b.rowParams.Add(key, params)
		}
		rendered.Params = params
	}
	return rendered
}

func (b *RenderedSetBuilder) slicesFor(in BuildInput, extraColumn int) ColumnSlices {
	minFirst := in.Columns.LeftPinned
	maxLast := in.Columns.Len() - in.Columns.RightPinned
	if maxLast < minFirst {
		maxLast = minFirst
	}
	key := columnSliceKey{
		generation:    in.ColumnsGeneration,
		first:         in.Context.FirstColumnIndex,
		last:          in.Context.LastColumnIndex,
		minFirst:      minFirst,
		maxLast:       maxLast,
		focusedColumn: extraColumn,
	}
	if cached, ok := b.columnSlices.Get(key); ok {
		return cached
	}

	pinned := in.Columns.Pinned()
	first := clampInt(in.Context.FirstColumnIndex, minFirst, maxLast)
	last := clampInt(in.Context.LastColumnIndex, first, maxLast)
	slices := ColumnSlices{
		Left:   pinned.Left,
		Window: in.Columns.All[first:last],
		Right:  pinned.Right,
	}
	if extraColumn >= 0 && extraColumn < in.Columns.Len() {
		col := in.Columns.All[extraColumn]
		slices.Focused = &col
	}
	b.columnSlices.Add(key, slices)
	return slices
}

func pageIndexOf(page []Row, rowID string) int {
	for i, row := range page {
		if row.ID == rowID {
			return i
		}
	}
	return -1
}
