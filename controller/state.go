package controller

// State is the phase a form's status is in.
type State int

const (
	StateIdle    State = iota // Nothing submitted yet.
	StateBusy                 // Request in flight.
	StateShown                // Completed with something to show.
	StateEmpty                // Search completed with zero results.
	StateInvalid              // Rejected locally, no request made.
	StateFailed               // Request failed.
)

var stateNames = [...]string{
	StateIdle:    "idle",
	StateBusy:    "busy",
	StateShown:   "shown",
	StateEmpty:   "empty",
	StateInvalid: "invalid",
	StateFailed:  "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Status is the text shown next to a form together with its state.
type Status struct {
	State   State
	Message string
}

// IsError reports whether the status must be drawn in the error style.
func (s Status) IsError() bool {
	return s.State == StateFailed
}

// Class is the CSS class for the status element.
func (s Status) Class() string {
	if s.IsError() {
		return "error"
	}
	return ""
}
