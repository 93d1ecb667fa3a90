package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmDelete
)

type ActionType int

const (
	ActionCreate ActionType = iota
	ActionDuplicate
	ActionMove
	ActionConnect
	ActionDelete
	ActionBorder
	ActionEdit
)

var actionNames = []string{"create", "duplicate", "move", "connect", "delete", "border", "edit"}

func (a ActionType) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

const (
	viewAbout     = "about"
	viewWorkspace = "workspace"
	viewSketch    = "sketch"
	viewHelp      = "help"
)

const (
	// canvasTop is the first screen row of the view body, below the tab bar.
	canvasTop = 1
	panStep   = 2
)
