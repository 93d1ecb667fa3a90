package workspace

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"folio/internal/theme"
)

const (
	// BaseWidth and BaseHeight are the unscaled size of an element in cells.
	BaseWidth  = 16
	BaseHeight = 7

	// DuplicateOffset is added to both axes of a duplicated element.
	DuplicateOffset = 20

	// MinScale and MaxScale bound the compounded zoom of an element.
	MinScale = 0.25
	MaxScale = 8.0

	minCells    = 3
	iconRow     = 1
	iconColumn  = 2
	iconSpacing = 2
)

type State int

const (
	StateIdle State = iota
	StateDragging
	StateConnecting
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateConnecting:
		return "connecting"
	}
	return "idle"
}

// Element is a draggable, lockable, editable node on a canvas.
type Element struct {
	id       NodeID
	kind     Kind
	shape    Shape
	color    Color
	border   BorderStyle
	locked   bool
	position r2.Vec
	scale    float64
	content  string
	editing  bool

	connections []Connection

	// sub is the nested canvas of a KindModal element.
	sub *Canvas

	background lipgloss.Color
	foreground lipgloss.Color

	owner *Canvas
	state State
	grab  r2.Vec
	start r2.Vec
	band  *RubberBand
}

type ElementOption func(*Element)

func WithBorder(b BorderStyle) ElementOption {
	return func(e *Element) { e.border = b }
}

func WithContent(s string) ElementOption {
	return func(e *Element) { e.content = s }
}

func WithPosition(p r2.Vec) ElementOption {
	return func(e *Element) { e.position = p }
}

// New creates an unlocked element at the origin with a solid border and no
// connections.
func New(kind Kind, shape Shape, color Color, opts ...ElementOption) (*Element, error) {
	c, err := ParseColor(string(color))
	if err != nil {
		return nil, err
	}
	if kind < KindPlain || kind > KindModal {
		return nil, fmt.Errorf("unsupported kind %d", int(kind))
	}
	if shape < ShapeSquare || shape > ShapePentagon {
		return nil, fmt.Errorf("unsupported shape %d", int(shape))
	}
	e := &Element{
		id:         newNodeID(),
		kind:       kind,
		shape:      shape,
		color:      c,
		border:     BorderSolid,
		scale:      1,
		background: theme.Dark.Panel,
		foreground: theme.Dark.Foreground,
	}
	if kind == KindModal {
		e.sub = NewCanvas()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Element) ID() NodeID { return e.id }
func (e *Element) Kind() Kind { return e.kind }
func (e *Element) Shape() Shape { return e.shape }
func (e *Element) Color() Color { return e.color }
func (e *Element) Border() BorderStyle { return e.border }
func (e *Element) Locked() bool { return e.locked }
func (e *Element) Position() r2.Vec { return e.position }
func (e *Element) Scale() float64 { return e.scale }
func (e *Element) Content() string { return e.content }
func (e *Element) Editing() bool { return e.editing }
func (e *Element) State() State { return e.state }
func (e *Element) Sub() *Canvas { return e.sub }
func (e *Element) RubberBand() *RubberBand { return e.band }

// Style returns the theme tokens last applied to the element.
func (e *Element) Style() (background, foreground lipgloss.Color) {
	return e.background, e.foreground
}

// Connections returns a copy of the element's connection set.
func (e *Element) Connections() []Connection {
	out := make([]Connection, len(e.connections))
	copy(out, e.connections)
	return out
}

// Tooltip is the hover text of a KindTooltip element; other kinds have none.
func (e *Element) Tooltip() string {
	if e.kind != KindTooltip {
		return ""
	}
	if e.content != "" {
		return e.content
	}
	return fmt.Sprintf("%s %s", e.color, e.shape)
}

// Bounds is the rendered bounding box: the base box scaled about its center.
func (e *Element) Bounds() r2.Box {
	box := r2.Box{Min: e.position, Max: r2.Add(e.position, r2.Vec{X: BaseWidth, Y: BaseHeight})}
	return box.Scale(r2.Vec{X: e.scale, Y: e.scale})
}

// Center is the center of the rendered bounding box.
func (e *Element) Center() r2.Vec {
	return e.Bounds().Center()
}

// Rect is the element's footprint in cells.
func (e *Element) Rect() image.Rectangle {
	b := e.Bounds()
	size := b.Size()
	x0 := int(math.Round(b.Min.X))
	y0 := int(math.Round(b.Min.Y))
	w := max(minCells, int(math.Round(size.X)))
	h := max(minCells, int(math.Round(size.Y)))
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Contains reports whether the cell under p belongs to the element.
func (e *Element) Contains(p r2.Vec) bool {
	return cellOf(p).In(e.Rect())
}

// AffordanceCell places an affordance icon on a cell.
type AffordanceCell struct {
	Affordance Affordance
	Cell       image.Point
}

// AffordanceCells lays out the icons on the first inner row. Icons that do not
// fit inside the border are dropped.
func (e *Element) AffordanceCells() []AffordanceCell {
	r := e.Rect()
	y := r.Min.Y + iconRow
	if y >= r.Max.Y-1 {
		return nil
	}
	var cells []AffordanceCell
	for i, a := range Affordances {
		x := r.Min.X + iconColumn + i*iconSpacing
		if x >= r.Max.X-1 {
			break
		}
		cells = append(cells, AffordanceCell{Affordance: a, Cell: image.Pt(x, y)})
	}
	return cells
}

// AffordanceAt resolves p to the affordance under it.
func (e *Element) AffordanceAt(p r2.Vec) Affordance {
	cell := cellOf(p)
	if !cell.In(e.Rect()) {
		return AffordanceNone
	}
	for _, ac := range e.AffordanceCells() {
		if ac.Cell == cell {
			return ac.Affordance
		}
	}
	return AffordanceBody
}

// ToggleLock flips the lock. Locking ends any edit or gesture in progress.
func (e *Element) ToggleLock() {
	e.locked = !e.locked
	if e.locked {
		e.editing = false
		e.state = StateIdle
		e.band = nil
	}
}

func (e *Element) BeginEdit() error {
	if e.locked {
		return ErrLocked
	}
	e.editing = true
	return nil
}

func (e *Element) EndEdit() {
	e.editing = false
}

func (e *Element) SetContent(s string) error {
	if e.locked {
		return ErrLocked
	}
	e.content = s
	return nil
}

// Insert appends text to the content of an element being edited.
func (e *Element) Insert(text string) error {
	if e.locked {
		return ErrLocked
	}
	if !e.editing {
		return ErrNotEditing
	}
	e.content += text
	return nil
}

// Backspace removes the last rune of the content of an element being edited.
func (e *Element) Backspace() error {
	if e.locked {
		return ErrLocked
	}
	if !e.editing {
		return ErrNotEditing
	}
	r := []rune(e.content)
	if len(r) > 0 {
		e.content = string(r[:len(r)-1])
	}
	return nil
}

// ContentLines splits the content for display.
func (e *Element) ContentLines() []string {
	if e.content == "" {
		return nil
	}
	return strings.Split(e.content, "\n")
}

func (e *Element) SetBorder(b BorderStyle) error {
	if e.locked {
		return ErrLocked
	}
	e.border = b
	return nil
}

func (e *Element) CycleBorder() error {
	return e.SetBorder(e.border.Next())
}

// SetPosition moves the element and redraws its connections.
func (e *Element) SetPosition(p r2.Vec) error {
	if e.locked {
		return ErrLocked
	}
	e.setPosition(p)
	return nil
}

func (e *Element) setPosition(p r2.Vec) {
	e.position = p
	e.redrawConnections()
}

func (e *Element) setScale(s float64) {
	e.scale = min(max(s, MinScale), MaxScale)
	e.redrawConnections()
}

func (e *Element) redrawConnections() {
	for _, c := range e.connections {
		c.Line.update()
	}
}

// Duplicate creates a clone offset by DuplicateOffset on both axes. The clone
// has a fresh identity, no connections and is unlocked. When the element lives
// on a canvas the clone is appended to it.
func (e *Element) Duplicate() (*Element, error) {
	if e.locked {
		return nil, ErrLocked
	}
	clone, err := New(e.kind, e.shape, e.color, WithBorder(e.border))
	if err != nil {
		return nil, err
	}
	clone.scale = e.scale
	clone.position = r2.Add(e.position, r2.Vec{X: DuplicateOffset, Y: DuplicateOffset})
	if e.owner != nil {
		e.owner.add(clone)
	}
	return clone, nil
}

// Restyle resets background and foreground to the palette tokens.
func (e *Element) Restyle(p theme.Palette) {
	e.background = p.Panel
	e.foreground = p.Foreground
	if e.sub != nil {
		e.sub.Restyle(p)
	}
}

func (e *Element) attach(l *Line) {
	e.connections = append(e.connections, Connection{Line: l, Other: l.Other(e)})
}

func (e *Element) detach(l *Line) {
	kept := e.connections[:0]
	for _, c := range e.connections {
		if c.Line != l {
			kept = append(kept, c)
		}
	}
	e.connections = kept
}

func (e *Element) pointerDown(p r2.Vec) Outcome {
	a := e.AffordanceAt(p)
	if a == AffordanceLock {
		e.ToggleLock()
		return Outcome{Kind: OutcomeLockToggled, Element: e}
	}
	if e.locked {
		return Outcome{Kind: OutcomeBlocked, Element: e}
	}
	switch a {
	case AffordanceEdit:
		if err := e.BeginEdit(); err != nil {
			return Outcome{Kind: OutcomeBlocked, Element: e}
		}
		return Outcome{Kind: OutcomeEditStarted, Element: e}
	case AffordanceDuplicate:
		clone, err := e.Duplicate()
		if err != nil {
			return Outcome{Kind: OutcomeBlocked, Element: e}
		}
		return Outcome{Kind: OutcomeDuplicated, Element: clone, Other: e}
	case AffordanceConnect:
		e.state = StateConnecting
		style := LineSolid
		if e.owner != nil {
			style = e.owner.tools.Line
		}
		e.band = &RubberBand{Anchor: e, Style: style}
		e.band.follow(p)
		return Outcome{Kind: OutcomeConnectStarted, Element: e}
	case AffordanceMove, AffordanceBody:
		e.state = StateDragging
		e.grab = p
		e.start = e.position
		return Outcome{Kind: OutcomeDragStarted, Element: e}
	}
	return Outcome{}
}

func (e *Element) pointerMove(p r2.Vec) Outcome {
	if e.locked {
		return Outcome{}
	}
	switch e.state {
	case StateDragging:
		e.setPosition(r2.Add(e.start, r2.Sub(p, e.grab)))
		return Outcome{Kind: OutcomeDragged, Element: e}
	case StateConnecting:
		e.band.follow(p)
		return Outcome{Kind: OutcomeConnectMoved, Element: e}
	}
	return Outcome{}
}

func (e *Element) pointerUp(p r2.Vec) Outcome {
	state := e.state
	e.state = StateIdle
	switch state {
	case StateDragging:
		return Outcome{Kind: OutcomeMoved, Element: e, From: e.start, To: e.position}
	case StateConnecting:
		e.band = nil
		if e.owner == nil {
			return Outcome{Kind: OutcomeConnectCancelled, Element: e}
		}
		target := e.owner.elementAt(p, e)
		if target == nil {
			return Outcome{Kind: OutcomeConnectCancelled, Element: e}
		}
		line, err := e.owner.Connect(e, target)
		if err != nil {
			return Outcome{Kind: OutcomeConnectCancelled, Element: e}
		}
		return Outcome{Kind: OutcomeConnected, Element: e, Other: target, Line: line}
	}
	return Outcome{}
}

func cellOf(p r2.Vec) image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}
