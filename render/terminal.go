// Package render draws scene drawables onto a terminal screen.
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/scene"
)

// Terminal rasterizes scene drawables onto a tcell screen, scaling the
// logical field onto the cell grid. The bottom row is kept for a status line.
type Terminal struct {
	screen   tcell.Screen
	logicalW int
	logicalH int
}

// NewTerminal creates a rasterizer for a logical field of the given size
func NewTerminal(screen tcell.Screen, logicalW, logicalH int) *Terminal {
	return &Terminal{screen: screen, logicalW: logicalW, logicalH: logicalH}
}

// Grid returns the cell area the field maps onto
func (t *Terminal) Grid() (cols, rows int) {
	cols, rows = t.screen.Size()
	if rows > 1 {
		rows--
	}
	return cols, rows
}

// Pointer records a mouse position given in cells into in
func (t *Terminal) Pointer(in *input.State, cx, cy int) {
	cols, rows := t.Grid()
	in.MovePointer(cx, cy, cols, rows)
}

// cellSpan maps the logical interval [start, start+length) onto cells
// Any non-empty interval covers at least one cell
func cellSpan(start, length, logical, cells int) (int, int) {
	if logical <= 0 || cells <= 0 {
		return 0, 0
	}
	from := start * cells / logical
	if length <= 0 {
		return min(from, cells), min(from, cells)
	}
	to := max(((start+length)*cells+logical-1)/logical, from+1)
	return min(from, cells), min(to, cells)
}

// cellRect returns the half-open cell box covered by r
func (t *Terminal) cellRect(r scene.Rect) (x0, y0, x1, y1 int) {
	cols, rows := t.Grid()
	x0, x1 = cellSpan(r.X, r.W, t.logicalW, cols)
	y0, y1 = cellSpan(r.Y, r.H, t.logicalH, rows)
	return x0, y0, x1, y1
}

// Render draws items back to front over bg, writes status on the last row
// and shows the frame
func (t *Terminal) Render(bg scene.Color, items []scene.Drawable, status string) {
	base := tcell.StyleDefault.Background(toColor(bg)).Foreground(tcell.ColorWhite)
	t.screen.Fill(' ', base)

	for _, d := range items {
		switch d.Kind {
		case scene.KindFilledRect:
			t.fill(d)
		case scene.KindOutlinedRect:
			t.outline(d)
		case scene.KindText:
			t.text(d)
		}
	}

	if status != "" {
		cols, rows := t.screen.Size()
		t.putLine(0, rows-1, cols, status, func(tcell.Style) tcell.Style {
			return tcell.StyleDefault.Reverse(true)
		})
	}
	t.screen.Show()
}

func (t *Terminal) fill(d scene.Drawable) {
	x0, y0, x1, y1 := t.cellRect(d.Rect)
	st := tcell.StyleDefault.Background(toColor(d.Color))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (t *Terminal) outline(d scene.Drawable) {
	x0, y0, x1, y1 := t.cellRect(d.Rect)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	fg := toColor(d.Color)
	put := func(x, y int, r rune) {
		_, _, st, _ := t.screen.GetContent(x, y)
		t.screen.SetContent(x, y, r, nil, st.Foreground(fg))
	}

	right, bottom := x1-1, y1-1
	for x := x0; x <= right; x++ {
		put(x, y0, tcell.RuneHLine)
		put(x, bottom, tcell.RuneHLine)
	}
	for y := y0; y <= bottom; y++ {
		put(x0, y, tcell.RuneVLine)
		put(right, y, tcell.RuneVLine)
	}
	if right > x0 && bottom > y0 {
		put(x0, y0, tcell.RuneULCorner)
		put(right, y0, tcell.RuneURCorner)
		put(x0, bottom, tcell.RuneLLCorner)
		put(right, bottom, tcell.RuneLRCorner)
	}
}

func (t *Terminal) text(d scene.Drawable) {
	x0, y0, x1, y1 := t.cellRect(d.Rect)
	width := x1 - x0
	if width <= 0 {
		return
	}
	fg := toColor(d.Color)
	bold := d.Size >= 20
	restyle := func(st tcell.Style) tcell.Style {
		return st.Foreground(fg).Bold(bold)
	}

	for i, line := range Wrap(d.Text, width) {
		y := y0 + i
		if y >= y1 {
			break
		}
		t.putLine(x0, y, width, line, restyle)
	}
}

// putLine writes s from (x, y) within width cells, keeping each cell's
// background and applying restyle
func (t *Terminal) putLine(x, y, width int, s string, restyle func(tcell.Style) tcell.Style) {
	for _, g := range Cells(Truncate(s, width)) {
		_, _, st, _ := t.screen.GetContent(x, y)
		t.screen.SetContent(x, y, g.Rune, nil, restyle(st))
		x += g.Width
	}
}

func toColor(c scene.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
