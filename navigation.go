package main

import (
	"strings"
	"unicode"
)

// handlePan scrolls the current canvas. The scroll offset moves with the
// viewport, so "right" reveals what lies to the right.
func (m *model) handlePan(key string, speed int) {
	c := m.getCanvas()
	if c == nil {
		return
	}
	step := panStep * speed
	switch key {
	case "h", "left", "H", "shift+left":
		c.PanBy(-step, 0)
	case "l", "right", "L", "shift+right":
		c.PanBy(step, 0)
	case "k", "up", "K", "shift+up":
		c.PanBy(0, -step)
	case "j", "down", "J", "shift+down":
		c.PanBy(0, step)
	}
}

// getMoveSpeed doubles the pan step for shifted keys: shift+arrow or an
// upper-case vim key.
func (m *model) getMoveSpeed(key string) int {
	if strings.HasPrefix(key, "shift+") || len(key) == 1 && unicode.IsUpper(rune(key[0])) {
		return 2
	}
	return 1
}

func isPanKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}
