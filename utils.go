package main

import (
	"image"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"folio/internal/workspace"
)

func (m *model) currentLayer() *Layer {
	if len(m.layers) == 0 {
		return nil
	}
	return &m.layers[len(m.layers)-1]
}

func (m *model) getCanvas() *workspace.Canvas {
	if layer := m.currentLayer(); layer != nil {
		return layer.canvas
	}
	return nil
}

// openLayer descends into the sub-canvas of a modal element.
func (m *model) openLayer(el *workspace.Element) bool {
	if el == nil || el.Sub() == nil {
		return false
	}
	m.layers = append(m.layers, Layer{canvas: el.Sub(), host: el})
	return true
}

// closeLayer returns to the parent canvas. The root layer is never closed.
func (m *model) closeLayer() bool {
	if len(m.layers) <= 1 {
		return false
	}
	m.layers = m.layers[:len(m.layers)-1]
	return true
}

// canvasPoint converts a terminal cell to a point on the view body.
func canvasPoint(x, y int) image.Point {
	return image.Pt(x, y-canvasTop)
}

func (m *model) bodyHeight() int {
	return max(m.height-2, 1)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText reduces rich clipboard content to plain text with "\n"
// line endings and no control characters other than newlines and tabs.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = stripHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}
	return result.String()
}

var htmlMarkers = []string{"<html", "<body", "<div", "<p>", "<span"}

func isRTF(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), `{\rtf`)
}

func isHTML(text string) bool {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "<") {
		return false
	}
	lower := strings.ToLower(text)
	for _, m := range htmlMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func stripRTF(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r != '\\' {
			result.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]
		switch {
		case next == '\\' || next == '{' || next == '}':
			result.WriteRune(next)
			i++
		case next >= 'a' && next <= 'z' || next >= 'A' && next <= 'Z':
			start := i + 1
			i++
			for i+1 < len(runes) && (runes[i+1] >= 'a' && runes[i+1] <= 'z' || runes[i+1] >= 'A' && runes[i+1] <= 'Z') {
				i++
			}
			word := string(runes[start : i+1])
			for i+1 < len(runes) && (runes[i+1] == '-' || runes[i+1] >= '0' && runes[i+1] <= '9') {
				i++
			}
			if i+1 < len(runes) && runes[i+1] == ' ' {
				i++
			}
			switch word {
			case "par", "line":
				result.WriteByte('\n')
			case "tab":
				result.WriteByte('\t')
			}
		}
	}
	return strings.TrimSpace(result.String())
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func stripHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(htmlEntities.Replace(result.String()))
}
