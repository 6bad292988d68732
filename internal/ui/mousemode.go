package ui

// MouseMode selects what a left-button drag on the canvas does.
type MouseMode int

const (
	MouseSketch MouseMode = iota
	MousePan
)

// Next cycles to the next mouse mode.
func (m MouseMode) Next() MouseMode {
	switch m {
	case MouseSketch:
		return MousePan
	default:
		return MouseSketch
	}
}

// String returns the name of the mouse mode.
func (m MouseMode) String() string {
	switch m {
	case MousePan:
		return "pan"
	default:
		return "sketch"
	}
}

// Icon returns a visual indicator for the mouse mode.
func (m MouseMode) Icon() string {
	return "[" + m.String() + "]"
}
