// Package ai drives enemy agents with a perception-gated state machine built
// on the character controller and the combat system.
package ai

// State is an enemy's behavior state.
type State uint8

const (
	Patrol State = iota
	Chase
	Attack
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Patrol:
		return "Patrol"
	case Chase:
		return "Chase"
	case Attack:
		return "Attack"
	default:
		return "Unknown"
	}
}

// Perception is what an agent knows about the player this step.
type Perception struct {
	Distance float64
	LOS      bool
}

// Next returns the state after one evaluation. At most one transition happens
// per call; it depends only on the current state, the perception and the tuning.
func Next(s State, p Perception, t Tuning) State {
	d := p.Distance
	switch s {
	case Patrol:
		if d <= t.DetectRange && p.LOS {
			return Chase
		}
	case Chase:
		if d <= t.FireRange && p.LOS {
			return Attack
		}
		if d > t.DetectRange*t.DisengageFactor {
			return Patrol
		}
	case Attack:
		if d > t.DetectRange*t.OuterDisengageFactor {
			return Patrol
		}
		if !p.LOS {
			if d < t.DetectRange {
				return Chase
			}
			return Patrol
		}
	}
	return s
}
