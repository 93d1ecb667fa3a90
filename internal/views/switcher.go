// Package views holds the page-level widgets around the workspace: the tab
// switcher, the portfolio list and the embeddable sketch pad.
package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/logging"
)

// Embed is a self-contained widget that owns its drawing internally. The
// switcher mounts it the first time its tab becomes active and never again.
type Embed interface {
	Mount(width, height int)
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Resizer is implemented by embeds that follow size changes after their
// single mount.
type Resizer interface {
	Resize(width, height int)
}

type Tab struct {
	ID    string
	Title string
	Embed Embed

	mounted bool
}

func (t *Tab) Mounted() bool { return t.mounted }

// Switcher keeps exactly one tab active.
type Switcher struct {
	tabs   []*Tab
	active int
	width  int
	height int
}

func NewSwitcher(tabs ...*Tab) *Switcher {
	return &Switcher{tabs: tabs, active: -1}
}

func (s *Switcher) Tabs() []*Tab { return s.tabs }

// Active returns the active tab, or nil before the first activation.
func (s *Switcher) Active() *Tab {
	if s.active < 0 || s.active >= len(s.tabs) {
		return nil
	}
	return s.tabs[s.active]
}

// Resize records the size embeds are mounted with and passes it on to
// mounted embeds that implement Resizer.
func (s *Switcher) Resize(width, height int) {
	s.width, s.height = width, height
	for _, t := range s.tabs {
		if r, ok := t.Embed.(Resizer); ok && t.mounted {
			r.Resize(width, height)
		}
	}
}

// Activate makes the tab with id the only active one and mounts its embed if
// it has never been mounted.
func (s *Switcher) Activate(id string) error {
	for i, t := range s.tabs {
		if t.ID == id {
			s.activate(i)
			return nil
		}
	}
	return fmt.Errorf("unknown view %q", id)
}

// ActivateIndex activates the i-th tab.
func (s *Switcher) ActivateIndex(i int) error {
	if i < 0 || i >= len(s.tabs) {
		return fmt.Errorf("no view at %d", i+1)
	}
	s.activate(i)
	return nil
}

// Next activates the tab after the active one, wrapping around.
func (s *Switcher) Next() {
	if len(s.tabs) == 0 {
		return
	}
	s.activate((s.active + 1) % len(s.tabs))
}

func (s *Switcher) activate(i int) {
	s.active = i
	t := s.tabs[i]
	if t.Embed != nil && !t.mounted {
		t.Embed.Mount(s.width, s.height)
		t.mounted = true
		logging.Debug("mounted embed", "view", t.ID, "width", s.width, "height", s.height)
	}
}
