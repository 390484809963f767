package character

import (
	"fmt"
	"strings"
)

// TurnMode selects how turn input changes yaw.
type TurnMode uint8

const (
	TurnSmooth TurnMode = iota
	TurnSnap
)

// String returns the lowercase name of the mode.
func (m TurnMode) String() string {
	if m == TurnSnap {
		return "snap"
	}
	return "smooth"
}

// ParseTurnMode parses "smooth" or "snap".
func ParseTurnMode(s string) (TurnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "smooth":
		return TurnSmooth, nil
	case "snap":
		return TurnSnap, nil
	}
	return TurnSmooth, fmt.Errorf("character: unknown turn mode %q", s)
}

// Params tune the controller for one kind of actor.
type Params struct {
	MoveSpeed    float64 // units/s at full deflection
	TurnRate     float64 // rad/s at full smooth-turn deflection
	TurnMode     TurnMode
	SnapCooldown float64 // seconds between snap turns
	Gravity      float64 // units/s², negative is down
	JumpImpulse  float64 // units/s
	CoyoteTime   float64 // seconds after leaving ground a jump is still honored
	StepHeight   float64 // tallest ledge climbed without jumping
	GroundProbe  float64 // ground snap reach below the feet
	FootOffset   float64 // clearance kept above a snapped surface
	Skin         float64 // feet lift that keeps resting contact from counting as overlap
}

// PlayerParams returns the player's locomotion tuning.
func PlayerParams() Params {
	return Params{
		MoveSpeed:    3.5,
		TurnRate:     1.8,
		TurnMode:     TurnSmooth,
		SnapCooldown: 0.18,
		Gravity:      -9.81,
		JumpImpulse:  4.5,
		CoyoteTime:   0.12,
		StepHeight:   0.35,
		GroundProbe:  0.2,
		FootOffset:   0,
		Skin:         0.01,
	}
}

// EnemyParams returns the enemy locomotion tuning. Enemies fall with reduced gravity.
func EnemyParams() Params {
	p := PlayerParams()
	p.MoveSpeed = 2.6
	p.Gravity = -9.81 * 0.45
	return p
}
