package combat

import "math"

// readyEpsilon absorbs float error when a cooldown is drained by repeated dt steps.
const readyEpsilon = 1e-9

// WeaponDef describes one weapon and the projectiles it fires.
type WeaponDef struct {
	Name        string  `yaml:"name"`
	Speed       float64 `yaml:"speed"`       // projectile speed, units/s
	Radius      float64 `yaml:"radius"`      // projectile radius
	Color       string  `yaml:"color"`       // hex color, e.g. "#00ffea"
	FireRate    float64 `yaml:"fire_rate"`   // shots per second
	Damage      float64 `yaml:"damage"`      // per hit
	Magazine    int     `yaml:"magazine"`    // rounds per magazine; 0 means unlimited
	ReloadTime  float64 `yaml:"reload_time"` // seconds
	MaxLifetime float64 `yaml:"max_lifetime"`
	MaxRange    float64 `yaml:"max_range"`
}

// Interval returns the seconds between shots.
func (d WeaponDef) Interval() float64 {
	if d.FireRate <= 0 {
		return math.Inf(1)
	}
	return 1 / d.FireRate
}

// DefaultWeapons returns the stock loadout: assault rifle, battle rifle, pistol.
func DefaultWeapons() []WeaponDef {
	return []WeaponDef{
		{Name: "AR", Speed: 16, Radius: 0.04, Color: "#00ffea", FireRate: 12, Damage: 25,
			Magazine: 32, ReloadTime: 1.6, MaxLifetime: 8, MaxRange: 150},
		{Name: "BR", Speed: 35, Radius: 0.03, Color: "#ff6a00", FireRate: 4, Damage: 45,
			Magazine: 12, ReloadTime: 2.0, MaxLifetime: 8, MaxRange: 150},
		{Name: "Pistol", Speed: 22, Radius: 0.025, Color: "#ffff00", FireRate: 8, Damage: 35,
			Magazine: 10, ReloadTime: 1.2, MaxLifetime: 8, MaxRange: 150},
	}
}

// EnemyWeapon returns the weapon enemies fire with. Cadence is tracked by the agent.
func EnemyWeapon() WeaponDef {
	return WeaponDef{Name: "Enemy", Speed: 12, Radius: 0.05, Color: "#ff3355",
		Damage: 10, MaxLifetime: 8, MaxRange: 150}
}

// WeaponState is the per-weapon mutable state inside a Loadout.
type WeaponState struct {
	Cooldown   float64 // seconds until the next shot; may dip below zero by at most one step while held
	Ammo       int
	Reloading  bool
	ReloadLeft float64
}

// Ready reports whether the cooldown has elapsed.
func (s WeaponState) Ready() bool {
	return s.Cooldown <= readyEpsilon
}

// Loadout is a fixed list of weapons with one current index.
// Each weapon tracks its own cooldown and ammo.
type Loadout struct {
	defs    []WeaponDef
	states  []WeaponState
	current int
}

// NewLoadout creates a loadout with every magazine full. It panics on an empty list.
func NewLoadout(defs []WeaponDef) *Loadout {
	if len(defs) == 0 {
		panic("combat: loadout needs at least one weapon")
	}
	l := &Loadout{
		defs:   append([]WeaponDef(nil), defs...),
		states: make([]WeaponState, len(defs)),
	}
	l.Refill()
	return l
}

// Refill resets every weapon to a full magazine with no cooldown.
func (l *Loadout) Refill() {
	for i, d := range l.defs {
		l.states[i] = WeaponState{Ammo: d.Magazine}
	}
}

// Len returns the number of weapons.
func (l *Loadout) Len() int { return len(l.defs) }

// Index returns the current weapon index.
func (l *Loadout) Index() int { return l.current }

// Current returns the current weapon definition.
func (l *Loadout) Current() WeaponDef { return l.defs[l.current] }

// CurrentState returns the current weapon's state.
func (l *Loadout) CurrentState() WeaponState { return l.states[l.current] }

// Def returns the definition of weapon i.
func (l *Loadout) Def(i int) WeaponDef { return l.defs[i] }

// State returns the state of weapon i.
func (l *Loadout) State(i int) WeaponState { return l.states[i] }

// Cycle selects the next weapon. An in-progress reload of the old weapon is
// cancelled; the new weapon's cooldown is reset. Ammo is untouched.
func (l *Loadout) Cycle() int {
	old := &l.states[l.current]
	old.Reloading = false
	old.ReloadLeft = 0

	l.current = (l.current + 1) % len(l.defs)
	l.states[l.current].Cooldown = 0
	return l.current
}

// RequestReload starts reloading the current weapon. It reports false when the
// weapon has no magazine, is already reloading, or is full.
func (l *Loadout) RequestReload() bool {
	d, st := l.defs[l.current], &l.states[l.current]
	if d.Magazine <= 0 || st.Reloading || st.Ammo >= d.Magazine {
		return false
	}
	st.Reloading = true
	st.ReloadLeft = d.ReloadTime
	return true
}

// Tick drains cooldowns of every weapon and advances the current weapon's
// reload. While the trigger is held the current weapon keeps up to one step
// of overdue time so cadence does not depend on the step size.
func (l *Loadout) Tick(dt float64, held bool) {
	for i := range l.states {
		st := &l.states[i]
		floor := 0.0
		if held && i == l.current && !st.Reloading {
			floor = -dt
		}
		st.Cooldown = math.Max(st.Cooldown-dt, floor)
	}

	st := &l.states[l.current]
	if st.Reloading {
		st.ReloadLeft -= dt
		if st.ReloadLeft <= readyEpsilon {
			st.Reloading = false
			st.ReloadLeft = 0
			st.Ammo = l.defs[l.current].Magazine
		}
	}
}

// consume spends one round and schedules the next shot.
func (l *Loadout) consume() {
	d, st := l.defs[l.current], &l.states[l.current]
	st.Cooldown += d.Interval()
	if d.Magazine > 0 {
		st.Ammo--
	}
}
