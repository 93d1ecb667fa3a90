// Package theme holds the light and dark palettes and the switch that toggles
// between them.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a set of color tokens.
type Palette struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Panel      lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

var (
	Dark = Palette{
		Name:       "dark",
		Background: lipgloss.Color("#191D2B"),
		Foreground: lipgloss.Color("#DBE1E8"),
		Panel:      lipgloss.Color("#2E344E"),
		Accent:     lipgloss.Color("#27AE60"),
		Muted:      lipgloss.Color("#6B7280"),
	}
	Light = Palette{
		Name:       "light",
		Background: lipgloss.Color("#F8F8F8"),
		Foreground: lipgloss.Color("#151515"),
		Panel:      lipgloss.Color("#E4E4E4"),
		Accent:     lipgloss.Color("#F56692"),
		Muted:      lipgloss.Color("#8A8A8A"),
	}
)

// ByName looks a palette up by name, case-insensitively.
func ByName(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Dark.Name, "":
		return Dark, nil
	case Light.Name:
		return Light, nil
	}
	return Palette{}, fmt.Errorf("unknown theme %q", name)
}

type subscriber struct {
	id int
	fn func(Palette)
}

// Switch is the theme toggle. Subscribers are notified synchronously, in
// subscription order, on the goroutine that changed the theme.
type Switch struct {
	current Palette
	subs    []subscriber
	next    int
}

func NewSwitch(initial Palette) *Switch {
	return &Switch{current: initial}
}

func (s *Switch) Current() Palette {
	return s.current
}

// Toggle flips between dark and light and notifies every subscriber.
func (s *Switch) Toggle() Palette {
	if s.current.Name == Light.Name {
		s.apply(Dark)
	} else {
		s.apply(Light)
	}
	return s.current
}

// Set switches to the named palette. Setting the current theme again still
// notifies subscribers.
func (s *Switch) Set(name string) error {
	p, err := ByName(name)
	if err != nil {
		return err
	}
	s.apply(p)
	return nil
}

func (s *Switch) apply(p Palette) {
	s.current = p
	for _, sub := range append([]subscriber(nil), s.subs...) {
		sub.fn(p)
	}
}

// Subscribe registers fn for theme changes and returns a func that removes it.
func (s *Switch) Subscribe(fn func(Palette)) func() {
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
