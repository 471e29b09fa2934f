package blurmate

import "fmt"

// ExportState is the state of a session's export state machine.
//
//	Idle ──Export──▶ Exporting ──▶ Succeeded
//	                     │
//	                     └──────▶ Failed
//
// Succeeded and Failed accept a new Export. Reset returns to Idle.
type ExportState int

const (
	// StateIdle means no export has run since the session was created or
	// reset.
	StateIdle ExportState = iota

	// StateExporting means a worker is rendering and saving.
	StateExporting

	// StateSucceeded means the last export was saved.
	StateSucceeded

	// StateFailed means the last export failed; the session's error and
	// reason describe why.
	StateFailed
)

// String returns the state name.
func (s ExportState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExporting:
		return "exporting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("ExportState(%d)", int(s))
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s ExportState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Event describes one state transition of a session.
type Event struct {
	// SessionID identifies the session. It changes when a new image is
	// loaded.
	SessionID string

	// State is the state entered.
	State ExportState

	// Kind classifies Err. KindNone unless State is StateFailed.
	Kind ErrorKind

	// Err is the failure, for StateFailed.
	Err error

	// Reason is a localized, user-facing description of the outcome. Empty
	// for StateIdle and StateExporting.
	Reason string

	// Width and Height are the size of the saved image, for StateSucceeded.
	Width, Height int
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s (%s): %v", e.SessionID, e.State, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s", e.SessionID, e.State)
}
