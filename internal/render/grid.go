// Package render draws a workspace canvas onto a terminal cell grid and onto
// raster images.
package render

import (
	"image"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"folio/internal/workspace"
)

// GridOptions controls Grid.
type GridOptions struct {
	Width  int
	Height int
	// Color emits ANSI styling. Without it rows are plain text.
	Color bool
	// Hover is the screen cell under the pointer. Affordances of the element
	// under it are highlighted.
	Hover image.Point
}

type cell struct {
	ch rune
	fg lipgloss.Color
	bg lipgloss.Color
}

type frame struct {
	w, h  int
	cells [][]cell
}

func newFrame(w, h int, bg lipgloss.Color) *frame {
	f := &frame{w: max(w, 1), h: max(h, 1)}
	f.cells = make([][]cell, f.h)
	for y := range f.cells {
		f.cells[y] = make([]cell, f.w)
		for x := range f.cells[y] {
			f.cells[y][x] = cell{ch: ' ', bg: bg}
		}
	}
	return f
}

func (f *frame) valid(x, y int) bool {
	return y >= 0 && y < f.h && x >= 0 && x < f.w
}

func (f *frame) set(x, y int, ch rune, fg, bg lipgloss.Color) {
	if !f.valid(x, y) {
		return
	}
	if bg == "" {
		bg = f.cells[y][x].bg
	}
	f.cells[y][x] = cell{ch: ch, fg: fg, bg: bg}
}

func (f *frame) text(x, y int, s string, limit int, fg, bg lipgloss.Color) {
	i := 0
	for _, r := range s {
		if i >= limit {
			return
		}
		f.set(x+i, y, r, fg, bg)
		i++
	}
}

// Grid renders the canvas into rows of exactly opts.Width cells: lines first,
// elements on top in paint order, then the rubber band and the palette column.
func Grid(c *workspace.Canvas, opts GridOptions) []string {
	p := c.Theme()
	f := newFrame(opts.Width, opts.Height, p.Background)
	scroll := c.Scroll()

	for _, l := range c.Lines() {
		g := l.Geometry()
		drawSegment(f, g.Origin, g.End(), scroll, l.Style(), p.Foreground)
	}

	hovered := c.ElementAt(opts.Hover)
	for _, el := range c.Elements() {
		drawElement(f, el, scroll, el == hovered, p.Accent, p.Muted)
	}

	if rb := c.RubberBand(); rb != nil {
		drawSegment(f, rb.Geometry.Origin, rb.Geometry.End(), scroll, rb.Style, p.Accent)
	}

	drawPalette(f, c)

	return f.rows(opts.Color)
}

func (f *frame) rows(color bool) []string {
	out := make([]string, f.h)
	for y, row := range f.cells {
		if !color {
			var b strings.Builder
			for _, c := range row {
				b.WriteRune(c.ch)
			}
			out[y] = b.String()
			continue
		}

		var b strings.Builder
		var run []rune
		cur := row[0]
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if cur.fg != "" {
				st = st.Foreground(cur.fg)
			}
			if cur.bg != "" {
				st = st.Background(cur.bg)
			}
			b.WriteString(st.Render(string(run)))
			run = run[:0]
		}
		for _, c := range row {
			if c.fg != cur.fg || c.bg != cur.bg {
				flush()
				cur = c
			}
			run = append(run, c.ch)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

var borders = map[workspace.BorderStyle]lipgloss.Border{
	workspace.BorderSolid: lipgloss.NormalBorder(),
	workspace.BorderDashed: {
		Top: "╌", Bottom: "╌", Left: "╎", Right: "╎",
		TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	},
	workspace.BorderDotted: {
		Top: "┈", Bottom: "┈", Left: "┊", Right: "┊",
		TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	},
	workspace.BorderDouble: lipgloss.DoubleBorder(),
}

func glyph(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

var shapeGlyphs = map[workspace.Shape]rune{
	workspace.ShapeSquare:   '■',
	workspace.ShapeCircle:   '●',
	workspace.ShapeTriangle: '▲',
	workspace.ShapePentagon: '⬟',
}

func drawElement(f *frame, el *workspace.Element, scroll image.Point, hovered bool, accent, muted lipgloss.Color) {
	r := el.Rect().Sub(scroll)
	bg, fg := el.Style()
	edge := fg
	if el.Locked() {
		edge = muted
	} else if hovered {
		edge = accent
	}

	b, ok := borders[el.Border()]
	if !ok {
		b = lipgloss.NormalBorder()
	}
	right, bottom := r.Max.X-1, r.Max.Y-1
	vis := r.Intersect(image.Rect(0, 0, f.w, f.h))
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		for x := vis.Min.X; x < vis.Max.X; x++ {
			var ch rune
			switch {
			case y == r.Min.Y && x == r.Min.X:
				ch = glyph(b.TopLeft)
			case y == r.Min.Y && x == right:
				ch = glyph(b.TopRight)
			case y == bottom && x == r.Min.X:
				ch = glyph(b.BottomLeft)
			case y == bottom && x == right:
				ch = glyph(b.BottomRight)
			case y == r.Min.Y:
				ch = glyph(b.Top)
			case y == bottom:
				ch = glyph(b.Bottom)
			case x == r.Min.X:
				ch = glyph(b.Left)
			case x == right:
				ch = glyph(b.Right)
			default:
				f.set(x, y, ' ', fg, bg)
				continue
			}
			f.set(x, y, ch, edge, bg)
		}
	}

	for _, ac := range el.AffordanceCells() {
		p := ac.Cell.Sub(scroll)
		col := muted
		if el.Locked() && ac.Affordance == workspace.AffordanceLock || hovered && !el.Locked() {
			col = accent
		}
		f.set(p.X, p.Y, ac.Affordance.Glyph(), col, bg)
	}

	inner := r.Dx() - 4
	if inner <= 0 || r.Dy() < 5 {
		return
	}
	shapeRow := r.Min.Y + 2
	f.set(r.Min.X+2, shapeRow, shapeGlyphs[el.Shape()], lipgloss.Color(el.Color()), bg)
	f.text(r.Min.X+4, shapeRow, el.Kind().String(), inner-2, muted, bg)

	row := shapeRow + 1
	lines := el.ContentLines()
	for i, line := range lines {
		if row+i >= bottom {
			break
		}
		f.text(r.Min.X+2, row+i, line, inner, fg, bg)
	}
	if el.Editing() {
		last := ""
		if len(lines) > 0 {
			last = lines[len(lines)-1]
		}
		y := row + max(len(lines)-1, 0)
		x := r.Min.X + 2 + min(len([]rune(last)), inner-1)
		if y < bottom {
			f.set(x, y, '█', accent, bg)
		}
	}
}

// drawSegment rasterises the segment from a to b (canvas coordinates) with
// Bresenham's algorithm. Elements drawn afterwards cover the parts of the
// segment inside them.
func drawSegment(f *frame, a, b r2.Vec, scroll image.Point, style workspace.LineStyle, fg lipgloss.Color) {
	x0 := int(math.Round(a.X)) - scroll.X
	y0 := int(math.Round(a.Y)) - scroll.Y
	x1 := int(math.Round(b.X)) - scroll.X
	y1 := int(math.Round(b.Y)) - scroll.Y
	ch := lineGlyph(style, x1-x0, y1-y0)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if visible(style, step) {
			f.set(x0, y0, ch, fg, "")
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func visible(style workspace.LineStyle, step int) bool {
	switch style {
	case workspace.LineDashed:
		return step%3 != 2
	case workspace.LineDotted:
		return step%2 == 0
	}
	return true
}

func lineGlyph(style workspace.LineStyle, dx, dy int) rune {
	ang := math.Abs(math.Atan2(float64(dy), float64(dx)))
	horizontal := ang < math.Pi/8 || ang > 7*math.Pi/8
	vertical := ang > 3*math.Pi/8 && ang < 5*math.Pi/8

	switch style {
	case workspace.LineDotted:
		return '·'
	case workspace.LineDouble:
		switch {
		case horizontal:
			return '═'
		case vertical:
			return '║'
		}
	case workspace.LineDashed:
		switch {
		case horizontal:
			return '╌'
		case vertical:
			return '╎'
		}
	default:
		switch {
		case horizontal:
			return '─'
		case vertical:
			return '│'
		}
	}
	if (dx > 0) == (dy > 0) {
		return '╲'
	}
	return '╱'
}

func drawPalette(f *frame, c *workspace.Canvas) {
	sections := c.Palette()
	if sections == nil {
		return
	}
	p := c.Theme()
	w := c.Layout().PaletteWidth
	for y := 0; y < f.h; y++ {
		for x := 0; x < w-1; x++ {
			f.set(x, y, ' ', p.Foreground, p.Panel)
		}
		f.set(w-1, y, '│', p.Muted, p.Panel)
	}
	for _, sec := range sections {
		f.text(sec.Title.X, sec.Title.Y, sec.Group.String(), w-2, p.Accent, p.Panel)
		for _, e := range sec.Entries {
			if e.Group == workspace.GroupColor {
				swatch := lipgloss.Color(e.Color)
				mark := ' '
				if e.Selected {
					mark = '•'
				}
				for x := e.Rect.Min.X; x < e.Rect.Max.X; x++ {
					f.set(x, e.Rect.Min.Y, mark, p.Background, swatch)
				}
				continue
			}
			label := "  " + e.Label
			fg := p.Foreground
			if e.Selected {
				label = "▸ " + e.Label
				fg = p.Accent
			}
			if e.Group == workspace.GroupShape {
				label = string(shapeGlyphs[workspace.Shape(e.Index)]) + " " + e.Label
			}
			f.text(e.Rect.Min.X, e.Rect.Min.Y, label, e.Rect.Dx(), fg, p.Panel)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
