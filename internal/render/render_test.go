package render

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"folio/internal/workspace"
)

func plain(c *workspace.Canvas, w, h int) []string {
	return Grid(c, GridOptions{Width: w, Height: h, Hover: image.Pt(-1, -1)})
}

func TestGrid(t *testing.T) {
	t.Run("rows are exactly the requested size", func(t *testing.T) {
		c := workspace.NewCanvas()
		_, err := c.CreateElement(workspace.ShapeSquare)
		require.NoError(t, err)

		rows := plain(c, 70, 12)
		require.Len(t, rows, 12)
		for _, row := range rows {
			assert.Equal(t, 70, utf8.RuneCountInString(row))
		}
	})

	t.Run("palette and element are drawn", func(t *testing.T) {
		c := workspace.NewCanvas()
		el, err := c.CreateElement(workspace.ShapeCircle)
		require.NoError(t, err)

		out := strings.Join(plain(c, 70, 12), "\n")
		assert.Contains(t, out, "Kinds")
		assert.Contains(t, out, "Shapes")
		assert.Contains(t, out, "●")
		assert.Contains(t, out, "L E D M C")

		rows := plain(c, 70, 12)
		r := el.Rect()
		assert.Equal(t, '┌', []rune(rows[r.Min.Y])[r.Min.X])
	})

	t.Run("borders follow the element style", func(t *testing.T) {
		c := workspace.NewCanvas()
		c.SelectBorder(workspace.BorderDouble)
		el, err := c.CreateElement(workspace.ShapeSquare)
		require.NoError(t, err)

		r := el.Rect()
		rows := plain(c, 70, 12)
		assert.Equal(t, '╔', []rune(rows[r.Min.Y])[r.Min.X])
	})

	t.Run("connections are drawn between elements", func(t *testing.T) {
		c := workspace.NewCanvas()
		a, _ := c.CreateElement(workspace.ShapeSquare)
		b, _ := c.CreateElement(workspace.ShapeSquare)
		before := plain(c, 80, 14)

		_, err := c.Connect(a, b)
		require.NoError(t, err)
		require.NoError(t, b.SetPosition(r2.Add(a.Position(), r2.Scale(1.5, r2.Sub(b.Position(), a.Position())))))
		after := plain(c, 80, 14)

		assert.NotEqual(t, before, after)
	})

	t.Run("scroll shifts the scene", func(t *testing.T) {
		c := workspace.NewCanvas()
		el, _ := c.CreateElement(workspace.ShapeSquare)
		r := el.Rect()
		c.SetScroll(image.Pt(1, 0))

		rows := plain(c, 70, 12)
		assert.Equal(t, '┌', []rune(rows[r.Min.Y])[r.Min.X-1])
	})

	t.Run("heavily zoomed element fills only the frame", func(t *testing.T) {
		c := workspace.NewCanvas()
		el, err := c.CreateElement(workspace.ShapeSquare)
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			c.Wheel(true, true)
		}
		require.Equal(t, workspace.MaxScale, el.Scale())

		rows := plain(c, 80, 24)
		require.Len(t, rows, 24)
		for _, row := range rows {
			assert.Equal(t, 80, utf8.RuneCountInString(row))
		}
	})

	t.Run("hidden palette", func(t *testing.T) {
		l := workspace.DefaultLayout()
		l.PaletteWidth = 0
		c := workspace.NewCanvas(workspace.WithLayout(l))
		out := strings.Join(plain(c, 40, 8), "\n")
		assert.NotContains(t, out, "Kinds")
	})
}

func TestText(t *testing.T) {
	t.Run("empty canvas", func(t *testing.T) {
		err := Text(workspace.NewCanvas(), filepath.Join(t.TempDir(), "x.txt"), 40, 10)
		assert.ErrorIs(t, err, ErrNothingToExport)
	})

	t.Run("writes the plain viewport", func(t *testing.T) {
		c := workspace.NewCanvas()
		_, err := c.CreateElement(workspace.ShapeTriangle)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, Text(c, path, 60, 10))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
		assert.Len(t, lines, 10)
		assert.Contains(t, string(b), "▲")
		assert.NotContains(t, string(b), "\x1b[")
	})
}

func TestPNG(t *testing.T) {
	t.Run("empty canvas", func(t *testing.T) {
		_, err := Image(workspace.NewCanvas())
		assert.ErrorIs(t, err, ErrNothingToExport)
		assert.ErrorIs(t, PNG(workspace.NewCanvas(), filepath.Join(t.TempDir(), "x.png")), ErrNothingToExport)
	})

	t.Run("image covers the scene", func(t *testing.T) {
		c := workspace.NewCanvas()
		_, err := c.CreateElement(workspace.ShapeSquare)
		require.NoError(t, err)

		img, err := Image(c)
		require.NoError(t, err)
		size := img.Bounds().Size()
		assert.Equal(t, int((workspace.BaseWidth+2*padding)*charWidth), size.X)
		assert.Equal(t, int((workspace.BaseHeight+2*padding)*charHeight), size.Y)
	})

	t.Run("zoomed scene stays bounded", func(t *testing.T) {
		c := workspace.NewCanvas()
		_, err := c.CreateElement(workspace.ShapeSquare)
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			c.Wheel(true, true)
		}

		img, err := Image(c)
		require.NoError(t, err)
		size := img.Bounds().Size()
		assert.Equal(t, int((workspace.BaseWidth*workspace.MaxScale+2*padding)*charWidth), size.X)
		assert.Equal(t, int((workspace.BaseHeight*workspace.MaxScale+2*padding)*charHeight), size.Y)
	})

	t.Run("oversized scene is refused", func(t *testing.T) {
		c := workspace.NewCanvas()
		_, err := c.CreateElement(workspace.ShapeSquare)
		require.NoError(t, err)
		far, err := c.CreateElement(workspace.ShapeCircle)
		require.NoError(t, err)
		require.NoError(t, far.SetPosition(r2.Vec{X: 1e5, Y: 1e5}))

		_, err = Image(c)
		assert.ErrorIs(t, err, ErrExportTooLarge)
	})

	t.Run("file is written", func(t *testing.T) {
		c := workspace.NewCanvas()
		for _, s := range []workspace.Shape{workspace.ShapeCircle, workspace.ShapePentagon} {
			_, err := c.CreateElement(s)
			require.NoError(t, err)
		}
		els := c.Elements()
		c.SelectLine(workspace.LineDouble)
		_, err := c.Connect(els[0], els[1])
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "out.png")
		require.NoError(t, PNG(c, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})
}
