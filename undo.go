package main

import (
	"fmt"

	"folio/internal/logging"
	"folio/internal/workspace"
)

// undo reverts the last action of the current layer. An action that would
// mutate a locked element is left on the stack.
func (m *model) undo() {
	layer := m.currentLayer()
	if layer == nil || len(layer.undoStack) == 0 {
		return
	}

	lastIndex := len(layer.undoStack) - 1
	action, err := m.revert(layer.canvas, layer.undoStack[lastIndex])
	if err != nil {
		m.errorMessage = fmt.Sprintf("cannot undo: %v", err)
		logging.Debug("undo blocked", "action", action.Type, "error", err)
		return
	}
	layer.undoStack = layer.undoStack[:lastIndex]
	layer.redoStack = append(layer.redoStack, action)
}

func (m *model) redo() {
	layer := m.currentLayer()
	if layer == nil || len(layer.redoStack) == 0 {
		return
	}

	lastIndex := len(layer.redoStack) - 1
	action, err := m.apply(layer.canvas, layer.redoStack[lastIndex])
	if err != nil {
		m.errorMessage = fmt.Sprintf("cannot redo: %v", err)
		logging.Debug("redo blocked", "action", action.Type, "error", err)
		return
	}
	layer.redoStack = layer.redoStack[:lastIndex]
	layer.undoStack = append(layer.undoStack, action)
}

func (m *model) revert(c *workspace.Canvas, action Action) (Action, error) {
	switch action.Type {
	case ActionCreate, ActionDuplicate:
		data := action.Data.(ElementData)
		r, err := c.Remove(data.Element)
		if err != nil {
			return action, err
		}
		data.Removal = r
		action.Data = data
	case ActionDelete:
		data := action.Data.(ElementData)
		if err := unlockedEnds(data.Removal.Lines); err != nil {
			return action, err
		}
		if err := c.Restore(data.Removal); err != nil {
			return action, err
		}
	case ActionMove:
		data := action.Data.(MoveData)
		return action, data.Element.SetPosition(data.From)
	case ActionConnect:
		data := action.Data.(ConnectData)
		if err := unlockedEnds([]*workspace.Line{data.Line}); err != nil {
			return action, err
		}
		c.Disconnect(data.Line)
	case ActionBorder:
		data := action.Data.(BorderData)
		return action, data.Element.SetBorder(data.From)
	case ActionEdit:
		data := action.Data.(EditData)
		return action, data.Element.SetContent(data.OldText)
	}
	return action, nil
}

func (m *model) apply(c *workspace.Canvas, action Action) (Action, error) {
	switch action.Type {
	case ActionCreate, ActionDuplicate:
		data := action.Data.(ElementData)
		if err := c.Restore(data.Removal); err != nil {
			return action, err
		}
	case ActionDelete:
		data := action.Data.(ElementData)
		if err := unlockedEnds(data.Removal.Lines); err != nil {
			return action, err
		}
		r, err := c.Remove(data.Element)
		if err != nil {
			return action, err
		}
		data.Removal = r
		action.Data = data
	case ActionMove:
		data := action.Data.(MoveData)
		return action, data.Element.SetPosition(data.To)
	case ActionConnect:
		data := action.Data.(ConnectData)
		if err := unlockedEnds([]*workspace.Line{data.Line}); err != nil {
			return action, err
		}
		if err := c.Reconnect(data.Line); err != nil {
			return action, err
		}
	case ActionBorder:
		data := action.Data.(BorderData)
		return action, data.Element.SetBorder(data.To)
	case ActionEdit:
		data := action.Data.(EditData)
		return action, data.Element.SetContent(data.NewText)
	}
	return action, nil
}

// unlockedEnds refuses to touch a connection set of a locked element.
func unlockedEnds(lines []*workspace.Line) error {
	for _, l := range lines {
		a, b := l.Ends()
		if a.Locked() || b.Locked() {
			return workspace.ErrLocked
		}
	}
	return nil
}

func (m *model) recordAction(actionType ActionType, data interface{}) {
	layer := m.currentLayer()
	if layer == nil {
		return
	}
	layer.undoStack = append(layer.undoStack, Action{Type: actionType, Data: data})
	layer.redoStack = layer.redoStack[:0]
}
