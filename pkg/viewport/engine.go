// Package viewport computes the minimal contiguous window of rows and
// columns a tabular renderer must materialize for the current scroll
// position, so rendering cost tracks viewport size instead of dataset
// size. The Engine owns the mutable state (scroll position, committed
// window, rendered set) and is driven synchronously by the embedder's
// event loop; it is not safe for concurrent use and does not need to be.
package viewport

import "github.com/odvcencio/gridport/pkg/position"

// EngineConfig configures an Engine. Collaborator interfaces are optional;
// a nil collaborator means no adjustment of its kind is needed.
type EngineConfig struct {
	Buffers    BufferConfig
	Thresholds ThresholdConfig

	// AutoHeight renders a fixed page vertically: the container grows to
	// its content, so there is nothing to window on that axis.
	AutoHeight bool
	// DisableVirtualization renders the full range on both axes.
	DisableVirtualization bool
	// DisableColumnVirtualization keeps the column range full while rows
	// still window.
	DisableColumnVirtualization bool
	// RightToLeft flips the expected sign of horizontal offsets.
	RightToLeft bool

	ColumnCacheSize    int
	RowParamsCacheSize int

	Spans     SpanResolver
	Selection SelectionLookup
	RowParams RowParamsFunc
}

// ContainerStyle carries the overflow flags the layout collaborator applies
// to the root scroll container.
type ContainerStyle struct {
	OverflowX bool
	OverflowY bool
}

// Engine is the virtualization core. Inputs arrive as wholesale snapshot
// replacements (SetRowPositions, SetPage, SetColumns, ...) or as scroll
// notifications (HandleScroll, HandleWheel); outputs are pull accessors
// plus synchronously delivered events.
type Engine struct {
	cfg      EngineConfig
	calc     RangeCalculator
	expander WindowExpander
	gate     UpdateGate
	builder  *RenderedSetBuilder

	dispatcher Dispatcher

	scroll   ScrollPosition
	viewport Size
	content  Size

	rows       position.Table
	page       []Row
	pageOffset int

	columns    ColumnSet
	columnsGen uint64

	focused   *CellRef
	tabbable  *CellRef
	paramsGen uint64

	offsetTop  float64
	offsetLeft float64
	rendered   []RenderedRow

	notifiedFirstRow int
	notifiedLastRow  int
	hasNotifiedRows  bool
}

// NewEngine creates an engine with the empty window committed.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		cfg: cfg,
		calc: RangeCalculator{
			Buffers:                     cfg.Buffers,
			AutoHeight:                  cfg.AutoHeight,
			DisableVirtualization:       cfg.DisableVirtualization,
			DisableColumnVirtualization: cfg.DisableColumnVirtualization,
		},
		expander: WindowExpander{Buffers: cfg.Buffers, Spans: cfg.Spans},
		gate:     UpdateGate{Thresholds: cfg.Thresholds},
		builder:  NewRenderedSetBuilder(cfg.ColumnCacheSize, cfg.RowParamsCacheSize),
	}
}

// Subscribe registers an observer for engine events and returns its
// unsubscribe func. Delivery is synchronous on the calling goroutine.
func (e *Engine) Subscribe(fn Observer) func() {
	return e.dispatcher.Subscribe(fn)
}

// Context returns the committed window.
func (e *Engine) Context() RenderContext {
	return e.gate.Committed()
}

// Rows returns the current rendered set, in render order. The slice is
// replaced wholesale on commit; callers must not mutate it.
func (e *Engine) Rows() []RenderedRow {
	return e.rendered
}

// ScrollPosition returns the last recorded scroll position, including
// positions whose events were skipped by the overscroll guard.
func (e *Engine) ScrollPosition() ScrollPosition {
	return e.scroll
}

// Offset returns the pixel translation of the rendered region's origin:
// the offset of the first rendered row, and of the first rendered column
// relative to the unpinned region's start.
func (e *Engine) Offset() (top, left float64) {
	return e.offsetTop, e.offsetLeft
}

// ContentSize returns the total content size driving the native
// scrollable area.
func (e *Engine) ContentSize() Size {
	return e.content
}

// ContainerStyle returns the overflow flags for the root container. With
// auto height the container grows vertically instead of scrolling.
func (e *Engine) ContainerStyle() ContainerStyle {
	return ContainerStyle{OverflowX: true, OverflowY: !e.cfg.AutoHeight}
}

// SetViewport replaces the viewport size and re-evaluates the window.
func (e *Engine) SetViewport(size Size) {
	if e.viewport == size {
		return
	}
	e.viewport = size
	e.evaluate(true)
}

// SetContentSize replaces the total content size. A changed size is
// re-evaluated and announced; the update gate treats a changed content
// width as a mutated column set and always commits.
func (e *Engine) SetContentSize(size Size) {
	if e.content == size {
		return
	}
	e.content = size
	e.dispatcher.Publish(ContentSizeChangedEvent{Size: size})
	e.evaluate(true)
}

// SetRowPositions replaces the row offset table snapshot.
func (e *Engine) SetRowPositions(table position.Table) {
	e.rows = table
	e.evaluate(true)
}

// SetPage replaces the current page of rows. pageOffset is the absolute
// dataset index of the page's first row.
func (e *Engine) SetPage(page []Row, pageOffset int) {
	e.page = page
	e.pageOffset = pageOffset
	e.evaluate(true)
}

// SetColumns replaces the column snapshot.
func (e *Engine) SetColumns(columns ColumnSet) {
	e.columns = columns
	e.columnsGen++
	e.evaluate(true)
}

// SetFocusedCell replaces the focused-cell locator. The committed window
// does not move; the rendered set is rebuilt so the focus guard can splice
// the focused row or track the focused column.
func (e *Engine) SetFocusedCell(cell *CellRef) {
	e.focused = cell
	e.rebuildRendered()
}

// SetTabbableCell replaces the tab-stop locator and rebuilds the rendered
// set.
func (e *Engine) SetTabbableCell(cell *CellRef) {
	e.tabbable = cell
	e.rebuildRendered()
}

// InvalidateRowParams drops cached row params, for when the embedder's
// row-params source changed.
func (e *Engine) InvalidateRowParams() {
	e.paramsGen++
	e.rebuildRendered()
}

// HandleScroll records the new scroll position and evaluates a new window.
// Negative top offsets (touch overscroll bounce) and horizontal offsets
// inconsistent with the reading direction are recorded but not evaluated.
func (e *Engine) HandleScroll(top, left float64) {
	e.scroll = ScrollPosition{Top: top, Left: left}
	if top < 0 || !e.directionConsistent(left) {
		metricScrollIgnored.Inc()
		return
	}
	e.evaluate(false)
	e.dispatcher.Publish(ScrollPositionChangedEvent{
		Position: e.scroll,
		Context:  e.gate.Committed(),
	})
}

// HandleWheel applies wheel deltas to the current scroll position and
// handles the result as a scroll notification.
func (e *Engine) HandleWheel(deltaX, deltaY float64) {
	e.HandleScroll(e.scroll.Top+deltaY, e.scroll.Left+deltaX)
}

// Recompute forces a full evaluation against the current snapshots,
// bypassing the significance thresholds.
func (e *Engine) Recompute() {
	e.evaluate(true)
}

// RowScrollOffset returns the scroll top that puts the given row at the
// viewport's top edge.
func (e *Engine) RowScrollOffset(index int) float64 {
	return e.rows.OffsetOf(index)
}

// ColumnScrollOffset returns the scroll left that puts the given column at
// the unpinned region's left edge.
func (e *Engine) ColumnScrollOffset(index int) float64 {
	offset := e.columns.Positions.OffsetOf(index) - e.columns.Positions.OffsetOf(e.columns.LeftPinned)
	if e.cfg.RightToLeft {
		offset = -offset
	}
	return offset
}

func (e *Engine) directionConsistent(left float64) bool {
	if e.cfg.RightToLeft {
		return left <= 0
	}
	return left >= 0
}

// rowCount is the windowable row count: the current page size, defensively
// clamped to the position table when the snapshots disagree mid-cycle.
func (e *Engine) rowCount() int {
	n := len(e.page)
	if e.rows.Len() < n {
		n = e.rows.Len()
	}
	return n
}

func (e *Engine) evaluate(force bool) bool {
	raw := e.calc.Compute(RangeInput{
		Scroll:              e.scroll,
		Viewport:            e.viewport,
		Rows:                e.rows,
		Columns:             e.columns.Positions,
		RowCount:            e.rowCount(),
		ColumnCount:         e.columns.Len(),
		PageRowCount:        len(e.page),
		RowNeedsMeasurement: e.rowNeedsMeasurement,
	})
	candidate := e.expander.ExpandRows(raw, e.rowCount())
	candidate = e.expander.ExpandColumns(candidate, e.columns)

	committed := e.gate.Evaluate(candidate, e.content.Width, force)
	if !committed {
		metricSuppressed.Inc()
		return false
	}
	metricCommits.Inc()
	e.applyCommit()
	return true
}

// applyCommit materializes the freshly committed window: translation
// offsets first, then the rendered set, then the interval notification.
// Everything runs before the triggering call returns, so collaborators
// reacting to the same event observe the new window.
func (e *Engine) applyCommit() {
	ctx := e.gate.Committed()
	e.offsetTop = e.rows.OffsetOf(ctx.FirstRowIndex)
	left := e.columns.Positions.OffsetOf(ctx.FirstColumnIndex) - e.columns.Positions.OffsetOf(e.columns.LeftPinned)
	if e.cfg.RightToLeft {
		left = -left
	}
	e.offsetLeft = left

	e.rendered = e.builder.Build(e.buildInput(ctx))
	metricRenderedRows.Set(float64(len(e.rendered)))

	if e.sizingReady() && (!e.hasNotifiedRows ||
		ctx.FirstRowIndex != e.notifiedFirstRow || ctx.LastRowIndex != e.notifiedLastRow) {
		e.notifiedFirstRow = ctx.FirstRowIndex
		e.notifiedLastRow = ctx.LastRowIndex
		e.hasNotifiedRows = true
		e.dispatcher.Publish(RenderedRowsChangedEvent{
			FirstRowIndex: ctx.FirstRowIndex,
			LastRowIndex:  ctx.LastRowIndex,
		})
	}
}

func (e *Engine) rebuildRendered() {
	e.rendered = e.builder.Build(e.buildInput(e.gate.Committed()))
	metricRenderedRows.Set(float64(len(e.rendered)))
}

func (e *Engine) buildInput(ctx RenderContext) BuildInput {
	return BuildInput{
		Context:             ctx,
		Page:                e.page,
		PageOffset:          e.pageOffset,
		RowCount:            e.rowCount(),
		Columns:             e.columns,
		ColumnsGeneration:   e.columnsGen,
		Focused:             e.focused,
		Tabbable:            e.tabbable,
		Selection:           e.cfg.Selection,
		RowParams:           e.cfg.RowParams,
		RowParamsGeneration: e.paramsGen,
	}
}

func (e *Engine) rowNeedsMeasurement(index int) bool {
	if index < 0 || index >= len(e.page) {
		return false
	}
	return e.page[index].Height == HeightAuto
}

func (e *Engine) sizingReady() bool {
	return e.viewport.Width > 0 && e.viewport.Height > 0
}
