package particle

// State selects which precomputed coordinate set every target points at.
type State uint8

const (
	Formed State = iota
	Scattered
)

func (s State) String() string {
	switch s {
	case Formed:
		return "formed"
	case Scattered:
		return "scattered"
	}
	return "unknown"
}

func (s State) Other() State {
	if s == Formed {
		return Scattered
	}
	return Formed
}
