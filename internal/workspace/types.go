package workspace

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidColor   = errors.New("invalid color")
	ErrLocked         = errors.New("element is locked")
	ErrUnknownElement = errors.New("unknown element")
	ErrSelfConnection = errors.New("element cannot connect to itself")
	ErrNotEditing     = errors.New("element is not being edited")
)

// NodeID identifies a rendered node. The canvas keeps a registry from NodeID to
// the element that owns it, which is what hit-testing resolves through.
type NodeID string

func newNodeID() NodeID {
	return NodeID(uuid.NewString())
}

type Kind int

const (
	KindPlain Kind = iota
	KindTooltip
	KindModal
)

var kindNames = []string{"plain", "tooltip", "modal"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeTriangle
	ShapePentagon
)

var shapeNames = []string{"square", "circle", "triangle", "pentagon"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapeNames[s]
}

type BorderStyle int

const (
	BorderSolid BorderStyle = iota
	BorderDashed
	BorderDotted
	BorderDouble
)

var borderNames = []string{"solid", "dashed", "dotted", "double"}

func (b BorderStyle) String() string {
	if b < 0 || int(b) >= len(borderNames) {
		return fmt.Sprintf("border(%d)", int(b))
	}
	return borderNames[b]
}

// Next returns the border style that follows b, wrapping around.
func (b BorderStyle) Next() BorderStyle {
	return BorderStyle((int(b) + 1) % len(borderNames))
}

type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
	LineDouble
)

var lineNames = []string{"solid", "dashed", "dotted", "double"}

func (l LineStyle) String() string {
	if l < 0 || int(l) >= len(lineNames) {
		return fmt.Sprintf("line(%d)", int(l))
	}
	return lineNames[l]
}

// Color is a "#RRGGBB" hex value.
type Color string

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ParseColor normalises s to upper-case "#RRGGBB".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !hexColor.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color(strings.ToUpper(s)), nil
}

// RGB returns the color components.
func (c Color) RGB() (r, g, b uint8) {
	if len(c) != 7 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(string(c[1:]), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// PaletteColors are the colors offered by the tool palette, in display order.
var PaletteColors = []Color{
	"#FF0000", "#FFA500", "#FFFF00", "#9ACD32", "#008000",
	"#00CED1", "#0000FF", "#4B0082", "#800080", "#FF00FF",
}

type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordanceBody
	AffordanceLock
	AffordanceEdit
	AffordanceDuplicate
	AffordanceMove
	AffordanceConnect
)

// Affordances lists the icon affordances in the order they are laid out.
var Affordances = []Affordance{
	AffordanceLock, AffordanceEdit, AffordanceDuplicate, AffordanceMove, AffordanceConnect,
}

func (a Affordance) String() string {
	switch a {
	case AffordanceBody:
		return "body"
	case AffordanceLock:
		return "lock"
	case AffordanceEdit:
		return "edit"
	case AffordanceDuplicate:
		return "duplicate"
	case AffordanceMove:
		return "move"
	case AffordanceConnect:
		return "connect"
	}
	return "none"
}

// Glyph is the single-cell icon drawn for the affordance.
func (a Affordance) Glyph() rune {
	switch a {
	case AffordanceLock:
		return 'L'
	case AffordanceEdit:
		return 'E'
	case AffordanceDuplicate:
		return 'D'
	case AffordanceMove:
		return 'M'
	case AffordanceConnect:
		return 'C'
	}
	return ' '
}
