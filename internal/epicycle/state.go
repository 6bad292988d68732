package epicycle

// State is the engine's animation state.
type State uint8

const (
	// Idle: the curve is being authored and nothing is transformed.
	Idle State = iota
	// Tracing: coefficients exist and the chain is being stepped.
	Tracing
)

func (s State) String() string {
	switch s {
	case Tracing:
		return "tracing"
	default:
		return "idle"
	}
}
