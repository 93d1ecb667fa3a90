package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"gonum.org/v1/gonum/spatial/r2"

	"folio/internal/workspace"
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrExportTooLarge  = errors.New("export too large")
)

const (
	charWidth  = 8.0
	charHeight = 16.0
	padding    = 2.0
	fontSize   = 12.0

	// maxPixels caps the PNG canvas (width*height) at 128 MiB of RGBA.
	maxPixels = 32 << 20
)

// PNG rasterises every element and line of the canvas into a PNG file at path.
// The image covers the bounding box of the scene, not the visible viewport.
func PNG(c *workspace.Canvas, path string) error {
	dc, err := draw(c)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// Image is PNG without the file.
func Image(c *workspace.Canvas) (image.Image, error) {
	dc, err := draw(c)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func draw(c *workspace.Canvas) (*gg.Context, error) {
	els := c.Elements()
	if len(els) == 0 {
		return nil, ErrNothingToExport
	}

	bounds := els[0].Bounds()
	for _, el := range els[1:] {
		bounds = union(bounds, el.Bounds())
	}
	for _, l := range c.Lines() {
		g := l.Geometry()
		bounds = union(bounds, r2.NewBox(g.Origin.X, g.Origin.Y, g.End().X, g.End().Y))
	}
	bounds.Min = r2.Sub(bounds.Min, r2.Vec{X: padding, Y: padding})
	bounds.Max = r2.Add(bounds.Max, r2.Vec{X: padding, Y: padding})
	size := bounds.Size()

	w, h := math.Ceil(size.X*charWidth), math.Ceil(size.Y*charHeight)
	if w*h > maxPixels {
		return nil, fmt.Errorf("%w: %.0fx%.0f pixels", ErrExportTooLarge, w, h)
	}
	dc := gg.NewContext(int(w), int(h))
	p := c.Theme()
	dc.SetHexColor(string(p.Background))
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	px := func(v r2.Vec) (float64, float64) {
		return (v.X - bounds.Min.X) * charWidth, (v.Y - bounds.Min.Y) * charHeight
	}

	dc.SetHexColor(string(p.Foreground))
	for _, l := range c.Lines() {
		g := l.Geometry()
		x1, y1 := px(g.Origin)
		x2, y2 := px(g.End())
		drawLinePNG(dc, x1, y1, x2, y2, l.Style())
	}

	for _, el := range els {
		drawElementPNG(dc, el, px)
	}
	return dc, nil
}

func union(a, b r2.Box) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: r2.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// dashes sets the stroke pattern for a line or border style name.
func dashes(dc *gg.Context, style string) {
	switch style {
	case "dashed":
		dc.SetDash(6, 4)
	case "dotted":
		dc.SetDash(1, 3)
	default:
		dc.SetDash()
	}
}

func drawLinePNG(dc *gg.Context, x1, y1, x2, y2 float64, style workspace.LineStyle) {
	dc.SetLineWidth(1.5)
	dashes(dc, style.String())
	if style != workspace.LineDouble {
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		return
	}
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return
	}
	nx, ny := -(y2-y1)/length*1.5, (x2-x1)/length*1.5
	dc.DrawLine(x1+nx, y1+ny, x2+nx, y2+ny)
	dc.Stroke()
	dc.DrawLine(x1-nx, y1-ny, x2-nx, y2-ny)
	dc.Stroke()
}

func drawElementPNG(dc *gg.Context, el *workspace.Element, px func(r2.Vec) (float64, float64)) {
	b := el.Bounds()
	x, y := px(b.Min)
	x2, y2 := px(b.Max)
	w, h := x2-x, y2-y
	bg, fg := el.Style()

	dc.SetDash()
	dc.SetHexColor(string(bg))
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	dc.SetHexColor(string(fg))
	dc.SetLineWidth(1)
	dashes(dc, el.Border().String())
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	if el.Border() == workspace.BorderDouble {
		dc.DrawRectangle(x+3, y+3, w-6, h-6)
		dc.Stroke()
	}
	dc.SetDash()

	r := math.Min(w, h) / 4
	cx, cy := x+w/2, y+h/2
	switch el.Shape() {
	case workspace.ShapeSquare:
		dc.DrawRectangle(cx-r, cy-r, 2*r, 2*r)
	case workspace.ShapeCircle:
		dc.DrawCircle(cx, cy, r)
	case workspace.ShapeTriangle:
		dc.DrawRegularPolygon(3, cx, cy, r, -math.Pi/2)
	case workspace.ShapePentagon:
		dc.DrawRegularPolygon(5, cx, cy, r, -math.Pi/2)
	}
	dc.SetHexColor(string(el.Color()))
	dc.Fill()

	dc.SetHexColor(string(fg))
	for i, line := range el.ContentLines() {
		dc.DrawString(line, x+charWidth, y+charHeight*float64(i+1)+fontSize)
	}
}
