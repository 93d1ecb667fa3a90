package views

import (
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var brushes = []rune{'█', '▓', '▒', '░', '•'}

// Pad is a freehand sketch widget. Dragging with the left button paints, the
// right button erases, b cycles the brush and c clears.
type Pad struct {
	width, height int
	cells         map[image.Point]rune
	brush         int
	down          bool
	erase         bool
	mounts        int
	ink           lipgloss.Color
}

func NewPad(ink lipgloss.Color) *Pad {
	return &Pad{ink: ink}
}

func (p *Pad) Mount(width, height int) {
	p.mounts++
	p.width, p.height = max(width, 1), max(height, 1)
	p.cells = make(map[image.Point]rune)
}

// Resize changes the drawing area. Painted cells are kept; those outside the
// new area are hidden until it grows again.
func (p *Pad) Resize(width, height int) {
	p.width, p.height = max(width, 1), max(height, 1)
}

// Mounts counts how often the pad was mounted.
func (p *Pad) Mounts() int { return p.mounts }

func (p *Pad) Brush() rune { return brushes[p.brush] }

func (p *Pad) SetInk(c lipgloss.Color) { p.ink = c }

// At returns the rune painted at (x, y), or a space.
func (p *Pad) At(x, y int) rune {
	if r, ok := p.cells[image.Pt(x, y)]; ok {
		return r
	}
	return ' '
}

func (p *Pad) Update(msg tea.Msg) tea.Cmd {
	if p.cells == nil {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			p.cells = make(map[image.Point]rune)
		case "b":
			p.brush = (p.brush + 1) % len(brushes)
		}
	case tea.MouseMsg:
		pt := image.Pt(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonRight {
				return nil
			}
			p.down = true
			p.erase = msg.Button == tea.MouseButtonRight
			p.paint(pt)
		case tea.MouseActionMotion:
			if p.down {
				p.paint(pt)
			}
		case tea.MouseActionRelease:
			p.down = false
		}
	}
	return nil
}

func (p *Pad) paint(pt image.Point) {
	if pt.X < 0 || pt.Y < 0 || pt.X >= p.width || pt.Y >= p.height {
		return
	}
	if p.erase {
		delete(p.cells, pt)
		return
	}
	p.cells[pt] = brushes[p.brush]
}

func (p *Pad) View() string {
	if p.cells == nil {
		return ""
	}
	ink := lipgloss.NewStyle().Foreground(p.ink)
	rows := make([]string, p.height)
	for y := range rows {
		var b strings.Builder
		for x := 0; x < p.width; x++ {
			b.WriteRune(p.At(x, y))
		}
		rows[y] = ink.Render(b.String())
	}
	return strings.Join(rows, "\n")
}
