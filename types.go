package main

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"

	"folio/internal/theme"
	"folio/internal/views"
	"folio/internal/workspace"
)

// Layer is one open canvas: the root workspace or the sub-canvas of a modal
// element. Each layer keeps its own history.
type Layer struct {
	canvas    *workspace.Canvas
	host      *workspace.Element
	undoStack []Action
	redoStack []Action
}

type model struct {
	width          int
	height         int
	config         *Config
	mode           Mode
	confirmAction  ConfirmAction
	confirmTarget  *workspace.Element
	help           bool
	helpScroll     int
	views          *views.Switcher
	themes         *theme.Switch
	layers         []Layer
	portfolio      *views.Portfolio
	pad            *views.Pad
	pointer        image.Point
	editing        *workspace.Element
	originalText   string
	errorMessage   string
	successMessage string
	readClipboard  func() (string, error)
	detachTheme    func()
}

type Action struct {
	Type ActionType
	Data interface{}
}

// ElementData is the payload of create, duplicate and delete actions.
type ElementData struct {
	Element *workspace.Element
	Removal workspace.Removal
}

type MoveData struct {
	Element *workspace.Element
	From    r2.Vec
	To      r2.Vec
}

type ConnectData struct {
	Line *workspace.Line
}

type BorderData struct {
	Element *workspace.Element
	From    workspace.BorderStyle
	To      workspace.BorderStyle
}

type EditData struct {
	Element *workspace.Element
	OldText string
	NewText string
}
