package main

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text is kept", "hello world", "hello world"},
		{"empty", "", ""},
		{"windows line endings", "a\r\nb\rc", "a\nb\nc"},
		{"control characters are dropped", "a\x00b\x07c\td", "abc\td"},
		{"rtf", `{\rtf1\ansi{\fonttbl\f0 Helvetica;}\f0\fs24 Hello\par World\tab!}`, "Helvetica;Hello\nWorld\t!"},
		{"rtf escapes", `{\rtf1 a\{b\}c\\d}`, `a{b}c\d`},
		{"angle bracket without markup", "<3 you", "<3 you"},
		{"html", `<html><body><div>Fish &amp; chips &lt;3</div></body></html>`, "Fish & chips <3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanClipboardText(tt.in))
		})
	}
}

func TestCanvasPoint(t *testing.T) {
	assert.Equal(t, image.Pt(4, 0), canvasPoint(4, canvasTop))
	assert.Equal(t, image.Pt(0, -1), canvasPoint(0, 0))
}

func TestPanKeys(t *testing.T) {
	m := newTestModel(t)
	c := m.getCanvas()

	m.handlePan("l", m.getMoveSpeed("l"))
	assert.Equal(t, image.Pt(panStep, 0), c.Scroll())

	m.handlePan("K", m.getMoveSpeed("K"))
	assert.Equal(t, image.Pt(panStep, -2*panStep), c.Scroll())

	assert.Equal(t, 1, m.getMoveSpeed("h"))
	assert.Equal(t, 1, m.getMoveSpeed("left"))
	assert.Equal(t, 2, m.getMoveSpeed("J"))
	assert.Equal(t, 2, m.getMoveSpeed("shift+right"))

	assert.True(t, isPanKey("shift+down"))
	assert.False(t, isPanKey("x"))
}
