package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/theme"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestSwitcher(t *testing.T) {
	pad := NewPad(lipgloss.Color("#FFFFFF"))
	sw := NewSwitcher(
		&Tab{ID: "about", Title: "About"},
		&Tab{ID: "sketch", Title: "Sketch", Embed: pad},
	)
	sw.Resize(20, 5)

	assert.Nil(t, sw.Active())

	require.NoError(t, sw.Activate("about"))
	assert.Equal(t, "about", sw.Active().ID)
	assert.Zero(t, pad.Mounts(), "embeds mount lazily")

	require.NoError(t, sw.Activate("sketch"))
	assert.Equal(t, 1, pad.Mounts())
	assert.True(t, sw.Tabs()[1].Mounted())

	t.Run("revisiting never remounts", func(t *testing.T) {
		sw.Next()
		assert.Equal(t, "about", sw.Active().ID)
		sw.Next()
		require.NoError(t, sw.ActivateIndex(1))
		assert.Equal(t, 1, pad.Mounts())
	})

	t.Run("exactly one tab is active", func(t *testing.T) {
		active := 0
		for _, tab := range sw.Tabs() {
			if tab == sw.Active() {
				active++
			}
		}
		assert.Equal(t, 1, active)
	})

	t.Run("unknown targets fail", func(t *testing.T) {
		assert.Error(t, sw.Activate("missing"))
		assert.Error(t, sw.ActivateIndex(7))
		assert.Equal(t, "sketch", sw.Active().ID)
	})

	t.Run("resize reaches the mounted pad without remounting", func(t *testing.T) {
		pad.Update(mouse(2, 1, tea.MouseActionPress, tea.MouseButtonLeft))
		pad.Update(mouse(2, 1, tea.MouseActionRelease, tea.MouseButtonLeft))

		sw.Resize(30, 8)
		assert.Equal(t, 1, pad.Mounts())
		assert.Equal(t, pad.Brush(), pad.At(2, 1))

		rows := strings.Split(pad.View(), "\n")
		require.Len(t, rows, 8)
		assert.Equal(t, 30, lipgloss.Width(rows[0]))

		pad.Update(mouse(25, 6, tea.MouseActionPress, tea.MouseButtonLeft))
		assert.Equal(t, pad.Brush(), pad.At(25, 6))
	})
}

func TestPad(t *testing.T) {
	pad := NewPad(lipgloss.Color("#FFFFFF"))
	assert.Nil(t, pad.Update(mouse(1, 1, tea.MouseActionPress, tea.MouseButtonLeft)))
	assert.Empty(t, pad.View(), "an unmounted pad draws nothing")

	pad.Mount(10, 4)

	pad.Update(mouse(1, 1, tea.MouseActionPress, tea.MouseButtonLeft))
	pad.Update(mouse(2, 1, tea.MouseActionMotion, tea.MouseButtonNone))
	pad.Update(mouse(3, 1, tea.MouseActionRelease, tea.MouseButtonLeft))
	pad.Update(mouse(4, 1, tea.MouseActionMotion, tea.MouseButtonNone))

	assert.Equal(t, '█', pad.At(1, 1))
	assert.Equal(t, '█', pad.At(2, 1))
	assert.Equal(t, ' ', pad.At(4, 1), "motion after release does not paint")

	t.Run("right button erases", func(t *testing.T) {
		pad.Update(mouse(1, 1, tea.MouseActionPress, tea.MouseButtonRight))
		pad.Update(mouse(1, 1, tea.MouseActionRelease, tea.MouseButtonRight))
		assert.Equal(t, ' ', pad.At(1, 1))
		assert.Equal(t, '█', pad.At(2, 1))
	})

	t.Run("brush cycles", func(t *testing.T) {
		pad.Update(key("b"))
		assert.Equal(t, '▓', pad.Brush())
		pad.Update(mouse(5, 2, tea.MouseActionPress, tea.MouseButtonLeft))
		assert.Equal(t, '▓', pad.At(5, 2))
	})

	t.Run("out of bounds is ignored", func(t *testing.T) {
		pad.Update(mouse(50, 50, tea.MouseActionMotion, tea.MouseButtonNone))
		assert.Equal(t, ' ', pad.At(50, 50))
	})

	t.Run("view has one row per line", func(t *testing.T) {
		assert.Len(t, strings.Split(pad.View(), "\n"), 4)
	})

	t.Run("clear", func(t *testing.T) {
		pad.Update(key("c"))
		assert.Equal(t, ' ', pad.At(2, 1))
	})

	t.Run("mounting again resets", func(t *testing.T) {
		pad.Update(mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft))
		pad.Mount(10, 4)
		assert.Equal(t, ' ', pad.At(0, 0))
		assert.Equal(t, 2, pad.Mounts())
	})
}

func TestPortfolio(t *testing.T) {
	items := []Project{
		{Title: "One", Summary: "first", Slides: []string{"a", "b", "c"}},
		{Title: "Two", Summary: "second"},
	}

	t.Run("expanding one collapses the other", func(t *testing.T) {
		p := NewPortfolio(items, 0)
		assert.Equal(t, -1, p.Expanded())

		p.Expand(0)
		assert.Equal(t, 0, p.Expanded())
		p.Expand(1)
		assert.Equal(t, 1, p.Expanded())
		assert.Equal(t, 1, p.Cursor())

		p.Expand(5)
		assert.Equal(t, 1, p.Expanded())

		p.Collapse()
		assert.Equal(t, -1, p.Expanded())
	})

	t.Run("keys move and toggle", func(t *testing.T) {
		p := NewPortfolio(items, 0)
		p.Update(key("j"))
		p.Update(key("down"))
		assert.Equal(t, 1, p.Cursor())

		p.Update(key("enter"))
		assert.Equal(t, 1, p.Expanded())
		p.Update(key("enter"))
		assert.Equal(t, -1, p.Expanded())

		p.Update(key("k"))
		p.Update(key("enter"))
		assert.Equal(t, 0, p.Expanded())
		p.Update(key("esc"))
		assert.Equal(t, -1, p.Expanded())
	})

	t.Run("slideshow loops", func(t *testing.T) {
		p := NewPortfolio(items, time.Second)
		assert.NotNil(t, p.Init())

		p.Expand(0)
		var seen []string
		for i := 0; i < 4; i++ {
			seen = append(seen, p.Slide())
			assert.NotNil(t, p.Update(slideMsg{}))
		}
		assert.Equal(t, []string{"a", "b", "c", "a"}, seen)

		p.Expand(0)
		assert.Equal(t, "a", p.Slide(), "expanding restarts the slideshow")
	})

	t.Run("projects without slides", func(t *testing.T) {
		p := NewPortfolio(items, 0)
		assert.Nil(t, p.Init())
		p.Expand(1)
		assert.Empty(t, p.Slide())
	})

	t.Run("view shows the expanded detail", func(t *testing.T) {
		p := NewPortfolio([]Project{{Title: "One", Summary: "s", Detail: "details here"}}, 0)
		assert.NotContains(t, p.View(theme.Dark, 60), "details here")
		p.Expand(0)
		assert.Contains(t, p.View(theme.Dark, 60), "details here")
	})

	t.Run("empty list ignores keys", func(t *testing.T) {
		p := NewPortfolio(nil, 0)
		p.Update(key("enter"))
		assert.Equal(t, -1, p.Expanded())
	})
}
