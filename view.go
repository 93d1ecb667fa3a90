package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"folio/internal/render"
)

var helpLines = []string{
	"Folio Help",
	"==========",
	"",
	"Views:",
	"------",
	"  1-4 / Tab        Switch between About, Workspace, Sketch and Help",
	"  t                Toggle light and dark theme",
	"",
	"Workspace palette (left edge):",
	"------------------------------",
	"  Kinds            Pick what new elements are (tooltip, modal, ...)",
	"  Colors           Pick the color for new elements",
	"  Shapes           Click a shape to drop a new element",
	"  Borders / Lines  Pick border and line styles for new elements",
	"",
	"Element corners:",
	"----------------",
	"  L                Lock or unlock the element",
	"  E                Edit its text, Enter or Esc to finish",
	"  D                Duplicate it",
	"  M                Drag to move it",
	"  C                Drag onto another element to connect",
	"",
	"Workspace keys:",
	"---------------",
	"  h/←/j/↓/k/↑/l/→  Pan the canvas",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  Wheel            Pan vertically, Ctrl+Wheel zooms",
	"  +/-              Zoom in and out",
	"  b                Cycle the border of the element under the pointer",
	"  x/Delete         Delete the element under the pointer",
	"  Right click      Open the canvas inside a modal element",
	"  Esc              Back to the parent canvas",
	"  Ctrl+Z / Ctrl+Y  Undo and redo",
	"  Ctrl+S           Export the canvas as PNG",
	"  Ctrl+T           Export the viewport as text",
	"",
	"Sketch:",
	"-------",
	"  Left drag        Paint",
	"  Right drag       Erase",
	"  b / c            Cycle brush / clear",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	result.WriteString(m.tabBar())
	result.WriteString("\n")

	body := m.body()
	for len(body) < m.bodyHeight() {
		body = append(body, "")
	}
	result.WriteString(strings.Join(body[:m.bodyHeight()], "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) tabBar() string {
	pal := m.themes.Current()
	active := lipgloss.NewStyle().Foreground(pal.Background).Background(pal.Accent).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(pal.Muted).Padding(0, 1)

	var tabs []string
	for i, t := range m.views.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, t.Title)
		if t == m.views.Active() {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, idle.Render(label))
		}
	}
	bar := truncate.String(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), uint(m.width))
	return lipgloss.NewStyle().Width(m.width).Render(bar)
}

func (m model) body() []string {
	pal := m.themes.Current()
	switch m.views.Active().ID {
	case viewWorkspace:
		return render.Grid(m.getCanvas(), render.GridOptions{
			Width:  m.width,
			Height: m.bodyHeight(),
			Color:  true,
			Hover:  m.pointer,
		})
	case viewAbout:
		intro := lipgloss.NewStyle().Foreground(pal.Foreground).Bold(true).Render("Hi, this is folio.")
		sub := lipgloss.NewStyle().Foreground(pal.Muted).Render("j/k to browse, enter to open a project, esc to close it")
		return strings.Split(intro+"\n"+sub+"\n\n"+m.portfolio.View(pal, m.width), "\n")
	case viewSketch:
		return strings.Split(m.pad.View(), "\n")
	case viewHelp:
		end := min(m.helpScroll+m.bodyHeight(), len(helpLines))
		return helpLines[min(m.helpScroll, end):end]
	}
	return nil
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit folio? (y/n)"
		case ConfirmDelete:
			message = "Delete this element and its connections? (y/n)"
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	case ModeEditing:
		status = "Mode: EDIT | Type to edit, Ctrl+V=paste, Enter/Esc=finish"
	default:
		status = fmt.Sprintf("Mode: %s", m.modeString())
		if m.views.Active().ID == viewWorkspace {
			c := m.getCanvas()
			tools := c.Tools()
			status += fmt.Sprintf(" | %s | %s %s | Pointer: (%d,%d)",
				m.breadcrumb(), tools.Kind, tools.Color, m.pointer.X, m.pointer.Y)
			if el := c.ElementAt(m.pointer); el != nil && el.Tooltip() != "" {
				status += " | " + el.Tooltip()
			}
		}
	}

	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" && m.mode == ModeNormal {
		status += " | ? for help | q to quit"
	}

	pal := m.themes.Current()
	return lipgloss.NewStyle().
		Foreground(pal.Foreground).
		Background(pal.Panel).
		Width(m.width).
		Render(truncate.StringWithTail(status, uint(m.width), "…"))
}

// breadcrumb names the chain of modal elements leading to the current canvas.
func (m model) breadcrumb() string {
	parts := []string{"root"}
	for _, layer := range m.layers[1:] {
		id := string(layer.host.ID())
		parts = append(parts, fmt.Sprintf("%s %s", layer.host.Kind(), id[:min(len(id), 8)]))
	}
	return strings.Join(parts, " › ")
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
