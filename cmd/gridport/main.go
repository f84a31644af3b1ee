// Command gridport is a terminal demo of the virtualization engine: it
// browses a large synthetic table, feeding real scroll, wheel, and resize
// events through the engine and drawing only the rendered set it returns.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gridport/pkg/config"
	"github.com/odvcencio/gridport/pkg/position"
	"github.com/odvcencio/gridport/pkg/viewport"
)

func main() {
	rowCount := flag.Int("rows", 200000, "synthetic row count")
	colCount := flag.Int("cols", 40, "synthetic scrollable column count")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gridport: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg, *rowCount, *colCount); err != nil {
		fmt.Fprintf(os.Stderr, "gridport: %v\n", err)
		os.Exit(1)
	}
}

type demo struct {
	screen tcell.Screen
	engine *viewport.Engine

	page     []viewport.Row
	columns  viewport.ColumnSet
	cells    map[string][]string // row id -> cell values, aligned with columns
	selected map[string]bool

	focusRow int // page index of the focused row, -1 when unfocused
	focusCol int
}

func (d *demo) IsSelected(rowID string) bool {
	return d.selected[rowID]
}

func run(cfg config.Config, rowCount, colCount int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	d := &demo{
		screen:   screen,
		selected: make(map[string]bool),
		focusRow: -1,
		focusCol: -1,
	}

	engineCfg := cfg.EngineConfig()
	engineCfg.Selection = d
	d.engine = viewport.NewEngine(engineCfg)

	d.buildDataset(rowCount, colCount)

	w, h := screen.Size()
	d.applySize(w, h)

	for {
		d.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			d.applySize(w, h)
			screen.Sync()
		case *tcell.EventMouse:
			switch ev.Buttons() {
			case tcell.WheelUp:
				d.engine.HandleWheel(0, -3)
			case tcell.WheelDown:
				d.engine.HandleWheel(0, 3)
			case tcell.WheelLeft:
				d.engine.HandleWheel(-4, 0)
			case tcell.WheelRight:
				d.engine.HandleWheel(4, 0)
			}
		case *tcell.EventKey:
			if d.handleKey(ev) {
				return nil
			}
		}
	}
}

// buildDataset generates the synthetic page: a pinned index column on the
// left, scrollable data columns, and a pinned column on the right.
func (d *demo) buildDataset(rowCount, colCount int) {
	page := make([]viewport.Row, rowCount)
	cells := make(map[string][]string, rowCount)

	all := make([]viewport.Column, 0, colCount+2)
	all = append(all, viewport.Column{Field: "row", Width: 8})
	for i := 0; i < colCount; i++ {
		all = append(all, viewport.Column{Field: fmt.Sprintf("col%02d", i), Width: 12})
	}
	all = append(all, viewport.Column{Field: "check", Width: 10})

	colPositions := make([]float64, len(all))
	var x float64
	for i, col := range all {
		colPositions[i] = x
		x += col.Width
	}

	rowPositions := make([]float64, rowCount)
	for i := 0; i < rowCount; i++ {
		id := uuid.NewString()
		page[i] = viewport.Row{ID: id, Height: 1}
		rowPositions[i] = float64(i)

		values := make([]string, len(all))
		values[0] = fmt.Sprintf("%d", i)
		for c := 0; c < colCount; c++ {
			values[c+1] = fmt.Sprintf("r%d/c%d %s", i, c, id[:4])
		}
		values[len(all)-1] = fmt.Sprintf("%08x", i*2654435761)
		cells[id] = values
	}

	d.page = page
	d.cells = cells
	d.columns = viewport.ColumnSet{
		All:         all,
		LeftPinned:  1,
		RightPinned: 1,
		Positions:   position.NewTable(colPositions),
	}

	d.engine.SetColumns(d.columns)
	d.engine.SetRowPositions(position.NewTable(rowPositions))
	d.engine.SetPage(page, 0)
	d.engine.SetContentSize(viewport.Size{Width: x, Height: float64(rowCount)})
}

// applySize maps the terminal to the engine's viewport: one header line on
// top, one status line at the bottom, pinned columns carved out of the
// width.
func (d *demo) applySize(w, h int) {
	pinned := d.columns.Pinned()
	var pinnedWidth float64
	for _, col := range pinned.Left {
		pinnedWidth += col.Width
	}
	for _, col := range pinned.Right {
		pinnedWidth += col.Width
	}
	vw := float64(w) - pinnedWidth
	if vw < 0 {
		vw = 0
	}
	vh := float64(h - 2)
	if vh < 0 {
		vh = 0
	}
	d.engine.SetViewport(viewport.Size{Width: vw, Height: vh})
}

// handleKey returns true when the demo should exit.
func (d *demo) handleKey(ev *tcell.EventKey) bool {
	scroll := d.engine.ScrollPosition()
	_, vh := d.viewportCells()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		d.engine.HandleScroll(math.Max(scroll.Top-1, 0), scroll.Left)
	case tcell.KeyDown:
		d.engine.HandleScroll(scroll.Top+1, scroll.Left)
	case tcell.KeyLeft:
		d.engine.HandleScroll(scroll.Top, math.Max(scroll.Left-4, 0))
	case tcell.KeyRight:
		d.engine.HandleScroll(scroll.Top, scroll.Left+4)
	case tcell.KeyPgUp:
		d.engine.HandleScroll(math.Max(scroll.Top-float64(vh), 0), scroll.Left)
	case tcell.KeyPgDn:
		d.engine.HandleScroll(scroll.Top+float64(vh), scroll.Left)
	case tcell.KeyHome:
		d.engine.HandleScroll(0, scroll.Left)
	case tcell.KeyEnd:
		d.engine.HandleScroll(d.engine.RowScrollOffset(len(d.page)-1), scroll.Left)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'j':
			d.moveFocus(1, 0)
		case 'k':
			d.moveFocus(-1, 0)
		case 'h':
			d.moveFocus(0, -1)
		case 'l':
			d.moveFocus(0, 1)
		case ' ':
			if d.focusRow >= 0 {
				id := d.page[d.focusRow].ID
				d.selected[id] = !d.selected[id]
				d.engine.Recompute()
			}
		case 'g':
			d.engine.HandleScroll(0, scroll.Left)
		case 'G':
			d.engine.HandleScroll(d.engine.RowScrollOffset(len(d.page)-1), scroll.Left)
		}
	}
	return false
}

// moveFocus moves the focused cell without scrolling, so a focus pushed
// outside the window shows the engine splicing it back into the rendered
// set.
func (d *demo) moveFocus(dRow, dCol int) {
	if d.focusRow < 0 {
		ctx := d.engine.Context()
		d.focusRow = ctx.FirstRowIndex
		d.focusCol = ctx.FirstColumnIndex
	}
	d.focusRow = clamp(d.focusRow+dRow, 0, len(d.page)-1)
	d.focusCol = clamp(d.focusCol+dCol, 0, d.columns.Len()-1)
	d.engine.SetFocusedCell(&viewport.CellRef{
		RowID: d.page[d.focusRow].ID,
		Field: d.columns.All[d.focusCol].Field,
	})
}

func (d *demo) viewportCells() (w, h int) {
	sw, sh := d.screen.Size()
	return sw, sh - 2
}

func (d *demo) draw() {
	d.screen.Clear()
	sw, sh := d.screen.Size()

	headerStyle := tcell.StyleDefault.Bold(true).Reverse(true)
	cellStyle := tcell.StyleDefault
	selectedStyle := tcell.StyleDefault.Reverse(true)
	focusStyle := tcell.StyleDefault.Bold(true).Underline(true)

	scroll := d.engine.ScrollPosition()
	rows := d.engine.Rows()

	pinned := d.columns.Pinned()
	var leftWidth int
	for _, col := range pinned.Left {
		leftWidth += int(col.Width)
	}
	var rightWidth int
	for _, col := range pinned.Right {
		rightWidth += int(col.Width)
	}
	rightStart := sw - rightWidth

	drawHeaderCell := func(x int, col viewport.Column) {
		d.drawText(x, 0, int(col.Width), col.Field, headerStyle)
	}
	x := 0
	for _, col := range pinned.Left {
		drawHeaderCell(x, col)
		x += int(col.Width)
	}
	if len(rows) > 0 {
		d.drawRowColumns(rows[0], 0, leftWidth, rightStart, scroll, func(x int, col viewport.Column, _ string) {
			drawHeaderCell(x, col)
		})
	}
	x = rightStart
	for _, col := range pinned.Right {
		drawHeaderCell(x, col)
		x += int(col.Width)
	}

	for _, row := range rows {
		y := 1 + row.Index - int(scroll.Top)
		if y < 1 || y >= sh-1 {
			// Buffered and focus-spliced rows land outside the viewport.
			continue
		}
		style := cellStyle
		if row.Selected {
			style = selectedStyle
		}
		values := d.cells[row.ID]

		x := 0
		for i, col := range pinned.Left {
			d.drawCell(x, y, col, values, i, row, style, focusStyle)
			x += int(col.Width)
		}
		d.drawRowColumns(row, y, leftWidth, rightStart, scroll, func(x int, col viewport.Column, field string) {
			idx := d.columns.IndexOf(field)
			d.drawCell(x, y, col, values, idx, row, style, focusStyle)
		})
		x = rightStart
		for i, col := range pinned.Right {
			idx := d.columns.Len() - d.columns.RightPinned + i
			d.drawCell(x, y, col, values, idx, row, style, focusStyle)
			x += int(col.Width)
		}
	}

	ctx := d.engine.Context()
	top, left := d.engine.Offset()
	status := fmt.Sprintf(" rows [%d,%d) cols [%d,%d)  scroll %.0f,%.0f  offset %.0f,%.0f  rendered %d  q:quit hjkl:focus space:select",
		ctx.FirstRowIndex, ctx.LastRowIndex, ctx.FirstColumnIndex, ctx.LastColumnIndex,
		scroll.Top, scroll.Left, top, left, len(rows))
	d.drawText(0, sh-1, sw, status, headerStyle)

	d.screen.Show()
}

// drawRowColumns walks the windowed slice (plus any tracked focused
// column) of one rendered row, calling draw with the screen x of each
// column that intersects the scrollable region.
func (d *demo) drawRowColumns(row viewport.RenderedRow, y, leftWidth, rightStart int, scroll viewport.ScrollPosition, draw func(x int, col viewport.Column, field string)) {
	unpinnedOrigin := d.columns.Positions.OffsetOf(d.columns.LeftPinned)
	for _, col := range row.Columns.Window {
		idx := d.columns.IndexOf(col.Field)
		colStart := d.columns.Positions.OffsetOf(idx) - unpinnedOrigin
		x := leftWidth + int(colStart-scroll.Left)
		if x+int(col.Width) <= leftWidth || x >= rightStart {
			continue
		}
		draw(x, col, col.Field)
	}
	if focused := row.Columns.Focused; focused != nil && y > 0 {
		// Out-of-window focused column: pin a single extra cell at the
		// scrollable region's edge so keyboard focus stays on screen.
		draw(leftWidth, *focused, focused.Field)
	}
}

func (d *demo) drawCell(x, y int, col viewport.Column, values []string, idx int, row viewport.RenderedRow, style, focusStyle tcell.Style) {
	text := ""
	if idx >= 0 && idx < len(values) {
		text = values[idx]
	}
	if row.FocusedField == col.Field {
		style = focusStyle
	}
	d.drawText(x, y, int(col.Width), text, style)
}

func (d *demo) drawText(x, y, width int, text string, style tcell.Style) {
	if width <= 1 {
		return
	}
	text = runewidth.Truncate(text, width-1, "…")
	text = runewidth.FillRight(text, width)
	col := x
	for _, r := range text {
		if col >= x+width {
			break
		}
		d.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
