package viewport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gridport/pkg/position"
)

// testEngine builds an engine over 100 rows of height 20 and 5 columns of
// width 50, with a 200x100 viewport.
func testEngine(t *testing.T, cfg EngineConfig) *Engine {
	t.Helper()
	e := NewEngine(cfg)

	rowPositions := make([]float64, 100)
	page := make([]Row, 100)
	for i := range page {
		rowPositions[i] = float64(i * 20)
		page[i] = Row{ID: fmt.Sprintf("row-%d", i), Height: 20}
	}

	columns := make([]Column, 5)
	colPositions := make([]float64, 5)
	for i := range columns {
		columns[i] = Column{Field: fmt.Sprintf("col-%d", i), Width: 50}
		colPositions[i] = float64(i * 50)
	}

	e.SetColumns(ColumnSet{All: columns, Positions: position.NewTable(colPositions)})
	e.SetRowPositions(position.NewTable(rowPositions))
	e.SetPage(page, 0)
	e.SetViewport(Size{Width: 200, Height: 100})
	e.SetContentSize(Size{Width: 250, Height: 2000})
	return e
}

func defaultTestConfig() EngineConfig {
	return EngineConfig{
		Buffers:    BufferConfig{RowBuffer: 1, ColumnBuffer: 1},
		Thresholds: ThresholdConfig{RowThreshold: 2, ColumnThreshold: 2},
	}
}

func TestEngine_InitialCommit(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	ctx := e.Context()
	assert.Equal(t, 0, ctx.FirstRowIndex)
	assert.Equal(t, 7, ctx.LastRowIndex, "rows touching the viewport plus one buffered")
	assert.Equal(t, 0, ctx.FirstColumnIndex)
	assert.Equal(t, 5, ctx.LastColumnIndex)

	rows := e.Rows()
	require.Len(t, rows, 7)
	assert.Equal(t, "row-0", rows[0].ID)
}

func TestEngine_ScrollCommitsSynchronously(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	e.HandleScroll(500, 0)

	// The committed window and its offsets are visible immediately after
	// the call, in the same event-handling turn.
	ctx := e.Context()
	assert.Equal(t, 24, ctx.FirstRowIndex)
	assert.Equal(t, 32, ctx.LastRowIndex)

	top, left := e.Offset()
	assert.Equal(t, 480.0, top, "translation of the first rendered row")
	assert.Equal(t, 0.0, left)

	rows := e.Rows()
	require.Len(t, rows, 8)
	assert.Equal(t, "row-24", rows[0].ID)
}

func TestEngine_SubThresholdScrollKeepsWindow(t *testing.T) {
	e := testEngine(t, defaultTestConfig())
	e.HandleScroll(500, 0)
	before := e.Context()

	e.HandleScroll(505, 0)

	assert.Equal(t, before, e.Context())
	assert.Equal(t, ScrollPosition{Top: 505, Left: 0}, e.ScrollPosition(),
		"scroll position is recorded even without a commit")
}

func TestEngine_ScrollEventAlwaysEmitted(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	var events []Event
	e.Subscribe(func(ev Event) { events = append(events, ev) })

	e.HandleScroll(500, 0)
	e.HandleScroll(505, 0) // sub-threshold: no commit, still announced

	var scrolls []ScrollPositionChangedEvent
	var intervals []RenderedRowsChangedEvent
	for _, ev := range events {
		switch ev := ev.(type) {
		case ScrollPositionChangedEvent:
			scrolls = append(scrolls, ev)
		case RenderedRowsChangedEvent:
			intervals = append(intervals, ev)
		}
	}

	require.Len(t, scrolls, 2)
	assert.Equal(t, 505.0, scrolls[1].Position.Top)
	assert.Equal(t, scrolls[0].Context, scrolls[1].Context,
		"suppressed evaluation reports the previous window")

	require.Len(t, intervals, 1, "row interval changed once")
	assert.Equal(t, 24, intervals[0].FirstRowIndex)
	assert.Equal(t, 32, intervals[0].LastRowIndex)
}

func TestEngine_IntervalNotifiedBeforeScrollEvent(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	var order []string
	e.Subscribe(func(ev Event) {
		switch ev.(type) {
		case RenderedRowsChangedEvent:
			order = append(order, "interval")
		case ScrollPositionChangedEvent:
			order = append(order, "scroll")
		}
	})

	e.HandleScroll(500, 0)
	assert.Equal(t, []string{"interval", "scroll"}, order)
}

func TestEngine_NegativeOffsetSkipped(t *testing.T) {
	e := testEngine(t, defaultTestConfig())
	before := e.Context()

	var events int
	e.Subscribe(func(Event) { events++ })

	e.HandleScroll(-30, 0)

	assert.Equal(t, before, e.Context())
	assert.Zero(t, events, "skipped events produce no notifications")
	assert.Equal(t, ScrollPosition{Top: -30, Left: 0}, e.ScrollPosition(),
		"the position itself is still recorded")
}

func TestEngine_DirectionGuard(t *testing.T) {
	t.Run("ltr rejects negative left", func(t *testing.T) {
		e := testEngine(t, defaultTestConfig())
		before := e.Context()
		e.HandleScroll(0, -10)
		assert.Equal(t, before, e.Context())
	})

	t.Run("rtl rejects positive left", func(t *testing.T) {
		cfg := defaultTestConfig()
		cfg.RightToLeft = true
		e := testEngine(t, cfg)
		before := e.Context()

		e.HandleScroll(0, 10)
		assert.Equal(t, before, e.Context())

		e.HandleScroll(0, -200)
		assert.NotEqual(t, before.FirstColumnIndex, e.Context().FirstColumnIndex)
	})
}

func TestEngine_WheelDeltasAccumulate(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	e.HandleWheel(0, 300)
	e.HandleWheel(0, 200)

	assert.Equal(t, ScrollPosition{Top: 500, Left: 0}, e.ScrollPosition())
	assert.Equal(t, 24, e.Context().FirstRowIndex)
}

func TestEngine_FocusSplice(t *testing.T) {
	e := testEngine(t, defaultTestConfig())
	e.HandleScroll(500, 0)

	e.SetFocusedCell(&CellRef{RowID: "row-90", Field: "col-0"})

	rows := e.Rows()
	last := rows[len(rows)-1]
	assert.Equal(t, "row-90", last.ID)
	assert.True(t, last.FullColumnSpan)
	assert.Equal(t, "col-0", last.FocusedField)

	// Clearing focus drops the splice without moving the window.
	before := e.Context()
	e.SetFocusedCell(nil)
	assert.Equal(t, before, e.Context())
	assert.Equal(t, "row-31", e.Rows()[len(e.Rows())-1].ID)
}

func TestEngine_ColumnWindowNarrows(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Buffers.ColumnBuffer = 0
	e := testEngine(t, cfg)

	e.HandleScroll(0, 120)

	ctx := e.Context()
	assert.Equal(t, 2, ctx.FirstColumnIndex)
	assert.Equal(t, 4, ctx.LastColumnIndex)

	_, left := e.Offset()
	assert.Equal(t, 100.0, left)
}

func TestEngine_ContentSizeEvent(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	var sizes []Size
	e.Subscribe(func(ev Event) {
		if changed, ok := ev.(ContentSizeChangedEvent); ok {
			sizes = append(sizes, changed.Size)
		}
	})

	e.SetContentSize(Size{Width: 250, Height: 2000}) // unchanged: no event
	e.SetContentSize(Size{Width: 300, Height: 2000})

	require.Len(t, sizes, 1)
	assert.Equal(t, Size{Width: 300, Height: 2000}, sizes[0])
}

func TestEngine_DisabledVirtualizationRendersEverything(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.DisableVirtualization = true
	e := testEngine(t, cfg)

	ctx := e.Context()
	assert.Equal(t, 0, ctx.FirstRowIndex)
	assert.Equal(t, 100, ctx.LastRowIndex)
	assert.Len(t, e.Rows(), 100)
}

func TestEngine_EmptyDataset(t *testing.T) {
	e := NewEngine(defaultTestConfig())
	e.SetViewport(Size{Width: 200, Height: 100})

	e.HandleScroll(100, 0)

	assert.Equal(t, RenderContext{}, e.Context())
	assert.Empty(t, e.Rows())
}

func TestEngine_Unsubscribe(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	var events int
	unsubscribe := e.Subscribe(func(Event) { events++ })
	e.HandleScroll(500, 0)
	seen := events
	require.Positive(t, seen)

	unsubscribe()
	e.HandleScroll(900, 0)
	assert.Equal(t, seen, events)
}

func TestEngine_ScrollToOffsets(t *testing.T) {
	e := testEngine(t, defaultTestConfig())

	assert.Equal(t, 400.0, e.RowScrollOffset(20))
	assert.Equal(t, 150.0, e.ColumnScrollOffset(3))
}

func TestEngine_ContainerStyle(t *testing.T) {
	e := testEngine(t, defaultTestConfig())
	assert.Equal(t, ContainerStyle{OverflowX: true, OverflowY: true}, e.ContainerStyle())

	cfg := defaultTestConfig()
	cfg.AutoHeight = true
	auto := NewEngine(cfg)
	assert.Equal(t, ContainerStyle{OverflowX: true, OverflowY: false}, auto.ContainerStyle())
}
