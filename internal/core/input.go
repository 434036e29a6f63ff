package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone              Action = iota
	ActionMoveLeft                 // Left, A, H - shift the piece one column left
	ActionMoveRight                // Right, D, L - shift the piece one column right
	ActionMoveDown                 // Down, S, J - soft drop one row
	ActionDrop                     // Space - hard drop and lock
	ActionRotateClockwise          // Up, X, W, K
	ActionRotateCounterClockwise   // Z
	ActionTogglePause              // P, Escape
	ActionExit                     // Q, Ctrl+C - leave the round
	ActionRestart                  // R - platform-level restart after game over
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionMoveDown:
		return "MoveDown"
	case ActionDrop:
		return "Drop"
	case ActionRotateClockwise:
		return "RotateClockwise"
	case ActionRotateCounterClockwise:
		return "RotateCounterClockwise"
	case ActionTogglePause:
		return "TogglePause"
	case ActionExit:
		return "Exit"
	case ActionRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions gathered for a single simulation tick.
// Actions keep their arrival order; games apply them first to last.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf builds an input frame from actions in the given order.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Push(a)
	}
	return f
}

// Push appends an action to the frame.
func (f *InputFrame) Push(a Action) {
	f.actions = append(f.actions, a)
}

// Actions returns the queued actions in arrival order.
// The returned slice must not be modified.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Len returns the number of queued actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.actions = append(clone.actions, f.actions...)
	return clone
}
