package workspace

import "gonum.org/v1/gonum/spatial/r2"

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeBlocked
	OutcomeCreated
	OutcomeDuplicated
	OutcomeLockToggled
	OutcomeEditStarted
	OutcomeDragStarted
	OutcomeDragged
	OutcomeMoved
	OutcomeConnectStarted
	OutcomeConnectMoved
	OutcomeConnected
	OutcomeConnectCancelled
	OutcomePanned
	OutcomeZoomed
	OutcomeToolSelected
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeNone:             "none",
	OutcomeBlocked:          "blocked",
	OutcomeCreated:          "created",
	OutcomeDuplicated:       "duplicated",
	OutcomeLockToggled:      "lock-toggled",
	OutcomeEditStarted:      "edit-started",
	OutcomeDragStarted:      "drag-started",
	OutcomeDragged:          "dragged",
	OutcomeMoved:            "moved",
	OutcomeConnectStarted:   "connect-started",
	OutcomeConnectMoved:     "connect-moved",
	OutcomeConnected:        "connected",
	OutcomeConnectCancelled: "connect-cancelled",
	OutcomePanned:           "panned",
	OutcomeZoomed:           "zoomed",
	OutcomeToolSelected:     "tool-selected",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return "unknown"
}

// Outcome reports what a pointer or palette event did, so the host can log it
// and record undo history. Fields not relevant to Kind are zero.
type Outcome struct {
	Kind    OutcomeKind
	Element *Element
	// Other is the duplicated original for OutcomeDuplicated and the target
	// for OutcomeConnected.
	Other *Element
	Line  *Line
	// From and To are element positions for OutcomeMoved.
	From, To r2.Vec
	Factor   float64
}

// Changed reports whether the outcome mutated the scene in a way worth
// recording.
func (o Outcome) Changed() bool {
	switch o.Kind {
	case OutcomeCreated, OutcomeDuplicated, OutcomeConnected:
		return true
	case OutcomeMoved:
		return o.From != o.To
	}
	return false
}
