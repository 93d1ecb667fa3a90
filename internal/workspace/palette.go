package workspace

import (
	"fmt"
	"image"
)

// Tools holds the current tool selection of one canvas. Values are consumed by
// the next element or line created on that canvas only.
type Tools struct {
	Kind   Kind
	Shape  Shape
	Color  Color
	Border BorderStyle
	Line   LineStyle
}

func DefaultTools() Tools {
	return Tools{
		Kind:   KindTooltip,
		Shape:  ShapeSquare,
		Color:  PaletteColors[0],
		Border: BorderSolid,
		Line:   LineSolid,
	}
}

// Layout places the palette and the spawn slots of new elements.
type Layout struct {
	// PaletteWidth is the width of the palette column in cells. Zero disables
	// the palette.
	PaletteWidth int
	// Spawn is the first spawn slot, relative to the palette edge.
	Spawn        image.Point
	SpawnStep    int
	SpawnPerRow  int
	SpawnRowStep int
}

func DefaultLayout() Layout {
	return Layout{
		PaletteWidth: 18,
		Spawn:        image.Pt(4, 2),
		SpawnStep:    20,
		SpawnPerRow:  4,
		SpawnRowStep: 10,
	}
}

type Group int

const (
	GroupKind Group = iota
	GroupShape
	GroupColor
	GroupBorder
	GroupLine
)

var groupTitles = []string{"Kinds", "Shapes", "Colors", "Borders", "Lines"}

func (g Group) String() string {
	if g < 0 || int(g) >= len(groupTitles) {
		return fmt.Sprintf("group(%d)", int(g))
	}
	return groupTitles[g]
}

// PaletteEntry is one clickable palette item in screen cells.
type PaletteEntry struct {
	Group    Group
	Index    int
	Label    string
	Color    Color
	Rect     image.Rectangle
	Selected bool
}

// PaletteSection is a titled group of entries.
type PaletteSection struct {
	Group   Group
	Title   image.Point
	Entries []PaletteEntry
}

const swatchWidth = 3

// Palette lays the tool palette out against the current tool selection.
func (c *Canvas) Palette() []PaletteSection {
	w := c.layout.PaletteWidth
	if w <= 0 {
		return nil
	}
	var sections []PaletteSection
	y := 1
	for g := GroupKind; g <= GroupLine; g++ {
		sec := PaletteSection{Group: g, Title: image.Pt(1, y)}
		y++
		switch g {
		case GroupColor:
			perRow := max(1, (w-2)/swatchWidth)
			for i, col := range PaletteColors {
				x := 1 + (i%perRow)*swatchWidth
				row := y + i/perRow
				sec.Entries = append(sec.Entries, PaletteEntry{
					Group:    g,
					Index:    i,
					Color:    col,
					Rect:     image.Rect(x, row, x+swatchWidth-1, row+1),
					Selected: c.tools.Color == col,
				})
			}
			y += (len(PaletteColors) + perRow - 1) / perRow
		default:
			for i, label := range groupLabels(g) {
				sec.Entries = append(sec.Entries, PaletteEntry{
					Group:    g,
					Index:    i,
					Label:    label,
					Rect:     image.Rect(1, y, w-1, y+1),
					Selected: c.selected(g, i),
				})
				y++
			}
		}
		sections = append(sections, sec)
		y++
	}
	return sections
}

func groupLabels(g Group) []string {
	switch g {
	case GroupKind:
		return kindNames
	case GroupShape:
		return shapeNames
	case GroupBorder:
		return borderNames
	case GroupLine:
		return lineNames
	}
	return nil
}

func (c *Canvas) selected(g Group, i int) bool {
	switch g {
	case GroupKind:
		return c.tools.Kind == Kind(i)
	case GroupBorder:
		return c.tools.Border == BorderStyle(i)
	case GroupLine:
		return c.tools.Line == LineStyle(i)
	}
	return false
}

// InPalette reports whether the screen cell p is inside the palette column.
func (c *Canvas) InPalette(p image.Point) bool {
	return c.layout.PaletteWidth > 0 && p.X >= 0 && p.X < c.layout.PaletteWidth
}

func (c *Canvas) paletteEntryAt(p image.Point) (PaletteEntry, bool) {
	if !c.InPalette(p) {
		return PaletteEntry{}, false
	}
	for _, sec := range c.Palette() {
		for _, e := range sec.Entries {
			if p.In(e.Rect) {
				return e, true
			}
		}
	}
	return PaletteEntry{}, false
}

// choose applies a palette click. Shapes create an element; every other group
// only updates the tool selection.
func (c *Canvas) choose(e PaletteEntry) Outcome {
	switch e.Group {
	case GroupShape:
		c.tools.Shape = Shape(e.Index)
		el, err := c.CreateElement(Shape(e.Index))
		if err != nil {
			return Outcome{}
		}
		return Outcome{Kind: OutcomeCreated, Element: el}
	case GroupKind:
		c.tools.Kind = Kind(e.Index)
	case GroupColor:
		c.tools.Color = e.Color
	case GroupBorder:
		c.tools.Border = BorderStyle(e.Index)
	case GroupLine:
		c.tools.Line = LineStyle(e.Index)
	}
	return Outcome{Kind: OutcomeToolSelected}
}

func (c *Canvas) SelectKind(k Kind) error {
	if k < KindPlain || k > KindModal {
		return fmt.Errorf("unsupported kind %d", int(k))
	}
	c.tools.Kind = k
	return nil
}

func (c *Canvas) SelectColor(col Color) error {
	parsed, err := ParseColor(string(col))
	if err != nil {
		return err
	}
	c.tools.Color = parsed
	return nil
}

func (c *Canvas) SelectBorder(b BorderStyle) {
	c.tools.Border = b
}

func (c *Canvas) SelectLine(l LineStyle) {
	c.tools.Line = l
}
