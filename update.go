package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/logging"
	"folio/internal/workspace"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.views.Resize(m.width, m.bodyHeight())
		return m, nil

	case themeMsg:
		if err := m.themes.Set(msg.name); err != nil {
			m.errorMessage = err.Error()
			logging.Warn("ignoring theme from config", "theme", msg.name, "error", err)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.portfolio.Update(msg)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.detachTheme != nil {
		m.detachTheme()
	}
	logging.Info("quitting")
	return m, tea.Quit
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
			m.helpScroll = 0
		case "j", "down":
			m.helpScroll = min(m.helpScroll+1, max(len(helpLines)-m.bodyHeight(), 0))
		case "k", "up":
			m.helpScroll = max(m.helpScroll-1, 0)
		}
		return m, nil
	}

	switch m.mode {
	case ModeEditing:
		return m.handleEditKey(msg)

	case ModeConfirm:
		switch key {
		case "y", "Y":
			m.mode = ModeNormal
			switch m.confirmAction {
			case ConfirmQuit:
				return m.quit()
			case ConfirmDelete:
				m.deleteElement(m.confirmTarget)
			}
		case "n", "N", "esc":
			m.mode = ModeNormal
		}
		m.confirmTarget = nil
		return m, nil
	}

	m.errorMessage, m.successMessage = "", ""

	switch key {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m.quit()
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil
	case "?":
		m.help = true
		return m, nil
	case "tab":
		m.views.Next()
		return m, nil
	case "1", "2", "3", "4":
		if err := m.views.ActivateIndex(int(key[0] - '1')); err != nil {
			m.errorMessage = err.Error()
		}
		return m, nil
	case "t":
		p := m.themes.Toggle()
		logging.Debug("theme toggled", "theme", p.Name)
		return m, nil
	}

	switch m.views.Active().ID {
	case viewWorkspace:
		return m.handleWorkspaceKey(msg)
	case viewSketch:
		return m, m.pad.Update(msg)
	case viewAbout:
		return m, m.portfolio.Update(msg)
	case viewHelp:
		switch key {
		case "j", "down":
			m.helpScroll = min(m.helpScroll+1, max(len(helpLines)-m.bodyHeight(), 0))
		case "k", "up":
			m.helpScroll = max(m.helpScroll-1, 0)
		}
	}
	return m, nil
}

func (m model) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	c := m.getCanvas()

	if isPanKey(key) {
		m.handlePan(key, m.getMoveSpeed(key))
		return m, nil
	}

	switch key {
	case "esc":
		if m.closeLayer() {
			m.successMessage = "Back to parent canvas"
		}
	case "ctrl+z":
		m.undo()
	case "ctrl+y":
		m.redo()
	case "+", "=":
		c.Zoom(1.1)
	case "-":
		c.Zoom(0.9)
	case "b":
		el := c.ElementAt(m.pointer)
		if el == nil {
			return m, nil
		}
		from := el.Border()
		if err := el.CycleBorder(); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.recordAction(ActionBorder, BorderData{Element: el, From: from, To: el.Border()})
	case "x", "delete":
		el := c.ElementAt(m.pointer)
		if el == nil {
			return m, nil
		}
		if el.Locked() {
			m.errorMessage = workspace.ErrLocked.Error()
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			m.confirmTarget = el
			return m, nil
		}
		m.deleteElement(el)
	case "ctrl+s":
		m.exportPNG()
	case "ctrl+t":
		m.exportText()
	}
	return m, nil
}

func (m *model) deleteElement(el *workspace.Element) {
	if el == nil {
		return
	}
	r, err := m.getCanvas().Remove(el)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.recordAction(ActionDelete, ElementData{Element: el, Removal: r})
	logging.Debug("element deleted", "id", el.ID(), "lines", len(r.Lines))
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	el := m.editing
	if el == nil {
		m.mode = ModeNormal
		return m, nil
	}

	var err error
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.commitEdit()
		return m, nil
	case tea.KeyBackspace:
		err = el.Backspace()
	case tea.KeyCtrlV:
		var text string
		text, err = m.readClipboard()
		if err == nil {
			err = el.Insert(cleanClipboardText(text))
		}
	case tea.KeySpace:
		err = el.Insert(" ")
	case tea.KeyTab:
		err = el.Insert("\t")
	case tea.KeyRunes:
		err = el.Insert(string(msg.Runes))
	}
	if err != nil {
		m.errorMessage = err.Error()
		if errors.Is(err, workspace.ErrLocked) {
			m.commitEdit()
		}
	}
	return m, nil
}

// commitEdit leaves editing mode and records the change, if any.
func (m *model) commitEdit() {
	el := m.editing
	m.mode = ModeNormal
	m.editing = nil
	if el == nil {
		return
	}
	el.EndEdit()
	if el.Content() != m.originalText {
		m.recordAction(ActionEdit, EditData{Element: el, OldText: m.originalText, NewText: el.Content()})
	}
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.views.Active().ID {
	case viewSketch:
		msg.Y -= canvasTop
		return m, m.pad.Update(msg)
	case viewWorkspace:
	default:
		return m, nil
	}
	if m.help || m.mode == ModeConfirm {
		return m, nil
	}

	c := m.getCanvas()
	p := canvasPoint(msg.X, msg.Y)
	m.pointer = p

	if tea.MouseEvent(msg).IsWheel() {
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			m.handleOutcome(c.Wheel(msg.Button == tea.MouseButtonWheelUp, msg.Ctrl || msg.Alt))
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if m.mode == ModeEditing {
			m.commitEdit()
		}
		m.errorMessage, m.successMessage = "", ""
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.handleOutcome(c.PointerDown(p))
		case tea.MouseButtonRight:
			el := c.ElementAt(p)
			if m.openLayer(el) {
				m.successMessage = fmt.Sprintf("Opened %s %s, esc to return", el.Kind(), el.Shape())
			}
		}
	case tea.MouseActionMotion:
		m.handleOutcome(c.PointerMove(p))
	case tea.MouseActionRelease:
		m.handleOutcome(c.PointerUp(p))
	}
	return m, nil
}

// handleOutcome records history and status for what a pointer event did.
func (m *model) handleOutcome(out workspace.Outcome) {
	if out.Kind != workspace.OutcomeNone && out.Kind != workspace.OutcomeDragged &&
		out.Kind != workspace.OutcomeConnectMoved && out.Kind != workspace.OutcomePanned {
		logging.Debug("canvas outcome", "kind", out.Kind)
	}

	switch out.Kind {
	case workspace.OutcomeCreated:
		m.recordAction(ActionCreate, ElementData{Element: out.Element})
		m.successMessage = fmt.Sprintf("Created %s %s", out.Element.Kind(), out.Element.Shape())
	case workspace.OutcomeDuplicated:
		m.recordAction(ActionDuplicate, ElementData{Element: out.Element})
	case workspace.OutcomeMoved:
		if out.Changed() {
			m.recordAction(ActionMove, MoveData{Element: out.Element, From: out.From, To: out.To})
		}
	case workspace.OutcomeConnected:
		m.recordAction(ActionConnect, ConnectData{Line: out.Line})
	case workspace.OutcomeEditStarted:
		m.mode = ModeEditing
		m.editing = out.Element
		m.originalText = out.Element.Content()
	case workspace.OutcomeLockToggled:
		if out.Element.Locked() {
			m.successMessage = "Locked"
		} else {
			m.successMessage = "Unlocked"
		}
	case workspace.OutcomeBlocked:
		m.errorMessage = workspace.ErrLocked.Error()
	}
}
