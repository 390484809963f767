package ai

import "testing"

func TestNext(t *testing.T) {
	tu := DefaultTuning()

	tests := []struct {
		name string
		from State
		p    Perception
		want State
	}{
		{"patrol sees player", Patrol, Perception{Distance: 5, LOS: true}, Chase},
		{"patrol in range but occluded", Patrol, Perception{Distance: 5, LOS: false}, Patrol},
		{"patrol out of range", Patrol, Perception{Distance: 12.5, LOS: true}, Patrol},
		{"patrol at detect edge", Patrol, Perception{Distance: 12, LOS: true}, Chase},
		{"patrol never skips to attack", Patrol, Perception{Distance: 1, LOS: true}, Chase},
		{"chase into fire range", Chase, Perception{Distance: 7, LOS: true}, Attack},
		{"chase in range occluded", Chase, Perception{Distance: 6, LOS: false}, Chase},
		{"chase inside hysteresis", Chase, Perception{Distance: 16.5, LOS: false}, Chase},
		{"chase disengages", Chase, Perception{Distance: 16.9, LOS: true}, Patrol},
		{"attack holds", Attack, Perception{Distance: 8, LOS: true}, Attack},
		{"attack loses LOS nearby", Attack, Perception{Distance: 10, LOS: false}, Chase},
		{"attack loses LOS far", Attack, Perception{Distance: 13, LOS: false}, Patrol},
		{"attack outer disengage with LOS", Attack, Perception{Distance: 18.5, LOS: true}, Patrol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.from, tt.p, tu); got != tt.want {
				t.Errorf("Next(%v, %+v) = %v, expected %v", tt.from, tt.p, got, tt.want)
			}
		})
	}
}

func TestPatrolNeverChasesWithoutDetection(t *testing.T) {
	tu := DefaultTuning()
	for d := tu.DetectRange + 0.01; d < 60; d += 0.37 {
		for _, los := range []bool{false, true} {
			s := Patrol
			for i := 0; i < 10; i++ {
				s = Next(s, Perception{Distance: d, LOS: los}, tu)
			}
			if s != Patrol {
				t.Fatalf("distance %f LOS %v ended in %v", d, los, s)
			}
		}
	}
	for d := 0.0; d <= tu.DetectRange; d += 0.5 {
		if s := Next(Patrol, Perception{Distance: d, LOS: false}, tu); s != Patrol {
			t.Fatalf("occluded at %f transitioned to %v", d, s)
		}
	}
}

func TestStateString(t *testing.T) {
	if Patrol.String() != "Patrol" || Chase.String() != "Chase" || Attack.String() != "Attack" {
		t.Error("unexpected state names")
	}
	if State(9).String() != "Unknown" {
		t.Error("out of range state should be Unknown")
	}
}
