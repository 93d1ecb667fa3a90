package workspace

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/spatial/r2"

	"folio/internal/theme"
)

const (
	zoomIn    = 1.1
	zoomOut   = 0.9
	wheelStep = 3
)

// Canvas hosts elements, the tool palette and the gestures that are not local
// to one element: panning and zoom.
type Canvas struct {
	layout   Layout
	tools    Tools
	style    theme.Palette
	elements []*Element
	registry map[NodeID]*Element
	lines    []*Line
	scroll   image.Point
	spawned  int

	active  *Element
	panning bool
	panGrab image.Point
	panFrom image.Point
}

type Option func(*Canvas)

func WithLayout(l Layout) Option {
	return func(c *Canvas) { c.layout = l }
}

func WithTools(t Tools) Option {
	return func(c *Canvas) { c.tools = t }
}

func WithTheme(p theme.Palette) Option {
	return func(c *Canvas) { c.style = p }
}

func NewCanvas(opts ...Option) *Canvas {
	c := &Canvas{
		layout:   DefaultLayout(),
		tools:    DefaultTools(),
		style:    theme.Dark,
		registry: make(map[NodeID]*Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.layout.SpawnPerRow <= 0 {
		c.layout.SpawnPerRow = 1
	}
	return c
}

func (c *Canvas) Tools() Tools { return c.tools }
func (c *Canvas) Layout() Layout { return c.layout }
func (c *Canvas) Theme() theme.Palette { return c.style }
func (c *Canvas) Scroll() image.Point { return c.scroll }
func (c *Canvas) Panning() bool { return c.panning }
func (c *Canvas) Active() *Element { return c.active }
func (c *Canvas) Len() int { return len(c.elements) }

// Elements returns the elements in creation order, which is also paint order.
func (c *Canvas) Elements() []*Element {
	out := make([]*Element, len(c.elements))
	copy(out, c.elements)
	return out
}

func (c *Canvas) Lines() []*Line {
	out := make([]*Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Canvas) Lookup(id NodeID) (*Element, bool) {
	e, ok := c.registry[id]
	return e, ok
}

// RubberBand returns the in-progress connect line, if any.
func (c *Canvas) RubberBand() *RubberBand {
	if c.active == nil {
		return nil
	}
	return c.active.band
}

// Editing returns the element whose content is being edited, if any.
func (c *Canvas) Editing() *Element {
	for _, e := range c.elements {
		if e.editing {
			return e
		}
	}
	return nil
}

func (c *Canvas) SetScroll(p image.Point) {
	c.scroll = p
}

func (c *Canvas) PanBy(dx, dy int) {
	c.scroll = c.scroll.Add(image.Pt(dx, dy))
}

// ToWorld converts a screen cell to canvas coordinates.
func (c *Canvas) ToWorld(p image.Point) r2.Vec {
	w := p.Add(c.scroll)
	return r2.Vec{X: float64(w.X), Y: float64(w.Y)}
}

// CreateElement creates an element of the given shape with the current tool
// selection and places it in the next spawn slot.
func (c *Canvas) CreateElement(shape Shape) (*Element, error) {
	el, err := New(c.tools.Kind, shape, c.tools.Color, WithBorder(c.tools.Border))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", shape, err)
	}
	el.position = c.nextSpawn()
	c.add(el)
	return el, nil
}

// SpawnPoint returns the position the next created element will take.
func (c *Canvas) SpawnPoint() r2.Vec {
	return c.spawnAt(c.spawned)
}

func (c *Canvas) nextSpawn() r2.Vec {
	p := c.spawnAt(c.spawned)
	c.spawned++
	return p
}

func (c *Canvas) spawnAt(slot int) r2.Vec {
	l := c.layout
	col := slot % l.SpawnPerRow
	row := slot / l.SpawnPerRow
	x := l.PaletteWidth + l.Spawn.X + col*l.SpawnStep + c.scroll.X
	y := l.Spawn.Y + row*l.SpawnRowStep + c.scroll.Y
	return r2.Vec{X: float64(x), Y: float64(y)}
}

// Add places an element created elsewhere on the canvas.
func (c *Canvas) Add(el *Element) error {
	if el.owner != nil {
		return fmt.Errorf("element %s already belongs to a canvas", el.id)
	}
	c.add(el)
	return nil
}

func (c *Canvas) add(el *Element) {
	c.insert(el, len(c.elements))
}

func (c *Canvas) insert(el *Element, index int) {
	index = min(max(index, 0), len(c.elements))
	c.elements = append(c.elements, nil)
	copy(c.elements[index+1:], c.elements[index:])
	c.elements[index] = el
	c.registry[el.id] = el
	el.owner = c
	if el.sub != nil {
		el.sub.layout = c.layout
	}
	el.Restyle(c.style)
}

// Connect registers a line between a and b on both endpoints. The source must
// be unlocked; the target may be locked.
func (c *Canvas) Connect(a, b *Element) (*Line, error) {
	if !c.owns(a) || !c.owns(b) {
		return nil, ErrUnknownElement
	}
	if a == b {
		return nil, ErrSelfConnection
	}
	if a.locked {
		return nil, ErrLocked
	}
	l := newLine(a, b, c.tools.Line)
	c.attachLine(l)
	return l, nil
}

func (c *Canvas) attachLine(l *Line) {
	l.a.attach(l)
	l.b.attach(l)
	l.update()
	c.lines = append(c.lines, l)
}

// Disconnect removes a line from both endpoints.
func (c *Canvas) Disconnect(l *Line) {
	l.a.detach(l)
	l.b.detach(l)
	kept := c.lines[:0]
	for _, x := range c.lines {
		if x != l {
			kept = append(kept, x)
		}
	}
	c.lines = kept
}

// Reconnect restores a line previously removed with Disconnect.
func (c *Canvas) Reconnect(l *Line) error {
	if !c.owns(l.a) || !c.owns(l.b) {
		return ErrUnknownElement
	}
	c.attachLine(l)
	return nil
}

func (c *Canvas) owns(e *Element) bool {
	if e == nil {
		return false
	}
	got, ok := c.registry[e.id]
	return ok && got == e
}

// Removal records what Remove took off the canvas so Restore can put it back.
type Removal struct {
	Element *Element
	Index   int
	Lines   []*Line
}

// Remove deletes an unlocked element. Its connections are severed on both
// endpoints.
func (c *Canvas) Remove(el *Element) (Removal, error) {
	if !c.owns(el) {
		return Removal{}, ErrUnknownElement
	}
	if el.locked {
		return Removal{}, ErrLocked
	}
	r := Removal{Element: el, Index: -1}
	for _, conn := range el.Connections() {
		r.Lines = append(r.Lines, conn.Line)
		c.Disconnect(conn.Line)
	}
	for i, x := range c.elements {
		if x == el {
			r.Index = i
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			break
		}
	}
	delete(c.registry, el.id)
	if c.active == el {
		c.active = nil
	}
	el.state = StateIdle
	el.band = nil
	el.editing = false
	el.owner = nil
	return r, nil
}

// Restore undoes a Remove.
func (c *Canvas) Restore(r Removal) error {
	if r.Element == nil || c.owns(r.Element) {
		return ErrUnknownElement
	}
	c.insert(r.Element, r.Index)
	for _, l := range r.Lines {
		if err := c.Reconnect(l); err != nil {
			return fmt.Errorf("restore line %s: %w", l.id, err)
		}
	}
	return nil
}

// ElementAt returns the topmost element under the screen cell p.
func (c *Canvas) ElementAt(p image.Point) *Element {
	if c.InPalette(p) {
		return nil
	}
	return c.elementAt(c.ToWorld(p), nil)
}

// elementAt hit-tests in reverse paint order through the registry, skipping
// exclude.
func (c *Canvas) elementAt(p r2.Vec, exclude *Element) *Element {
	for i := len(c.elements) - 1; i >= 0; i-- {
		el, ok := c.registry[c.elements[i].id]
		if !ok || el == exclude {
			continue
		}
		if el.Contains(p) {
			return el
		}
	}
	return nil
}

// PointerDown dispatches a press to the palette, the element under the
// pointer, or starts a pan on empty canvas.
func (c *Canvas) PointerDown(p image.Point) Outcome {
	if c.active != nil {
		c.PointerUp(p)
	}
	if entry, ok := c.paletteEntryAt(p); ok {
		return c.choose(entry)
	}
	if c.InPalette(p) {
		return Outcome{}
	}
	w := c.ToWorld(p)
	if el := c.elementAt(w, nil); el != nil {
		out := el.pointerDown(w)
		if el.state != StateIdle {
			c.active = el
		}
		return out
	}
	c.panning = true
	c.panGrab = p
	c.panFrom = c.scroll
	return Outcome{}
}

// PointerMove is delivered at document scope: it reaches the element in a
// gesture even when the pointer has left it.
func (c *Canvas) PointerMove(p image.Point) Outcome {
	if c.active != nil {
		return c.active.pointerMove(c.ToWorld(p))
	}
	if c.panning {
		c.scroll = c.panFrom.Sub(p.Sub(c.panGrab))
		return Outcome{Kind: OutcomePanned}
	}
	return Outcome{}
}

func (c *Canvas) PointerUp(p image.Point) Outcome {
	c.panning = false
	if c.active == nil {
		return Outcome{}
	}
	el := c.active
	c.active = nil
	return el.pointerUp(c.ToWorld(p))
}

// Wheel zooms every element when modified is set, compounding on each
// element's current scale. Unmodified wheel ticks scroll vertically.
func (c *Canvas) Wheel(up, modified bool) Outcome {
	if !modified {
		if up {
			c.PanBy(0, -wheelStep)
		} else {
			c.PanBy(0, wheelStep)
		}
		return Outcome{Kind: OutcomePanned}
	}
	factor := zoomOut
	if up {
		factor = zoomIn
	}
	c.Zoom(factor)
	return Outcome{Kind: OutcomeZoomed, Factor: factor}
}

// Zoom multiplies the scale of every element by factor, clamped to
// [MinScale, MaxScale]. Elements are scaled about their own centers; nothing
// is repositioned towards a focal point.
func (c *Canvas) Zoom(factor float64) {
	for _, el := range c.elements {
		el.setScale(el.scale * factor)
	}
}

// Restyle applies a theme palette to every live element, nested canvases
// included.
func (c *Canvas) Restyle(p theme.Palette) {
	c.style = p
	for _, el := range c.elements {
		el.Restyle(p)
	}
}

// AttachTheme restyles the canvas now and on every change of sw. The returned
// func detaches it.
func (c *Canvas) AttachTheme(sw *theme.Switch) func() {
	if sw == nil {
		return func() {}
	}
	c.Restyle(sw.Current())
	return sw.Subscribe(c.Restyle)
}
