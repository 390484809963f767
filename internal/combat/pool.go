package combat

import "github.com/vovakirdan/arena/internal/core"

// DefaultMaxActive is the default cap on projectiles in flight.
const DefaultMaxActive = 128

// Team separates friend from foe for hit tests.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// String returns the team name.
func (t Team) String() string {
	if t == TeamEnemy {
		return "enemy"
	}
	return "player"
}

// Owner identifies who fired a projectile.
type Owner struct {
	ActorID int
	Team    Team
}

// Projectile is one pooled ballistic object.
type Projectile struct {
	Origin      core.Vec3
	Position    core.Vec3
	Velocity    core.Vec3
	Radius      float64
	Owner       Owner
	Damage      float64
	Age         float64
	MaxLifetime float64
	MaxRange    float64
	Travelled   float64
	Weapon      string
	Color       string
}

// Handle addresses a pool slot. The generation makes a handle stale once the
// slot is released, so it cannot touch the slot's next occupant.
type Handle struct {
	Index int
	Gen   uint32
}

type slot struct {
	p      Projectile
	gen    uint32
	active bool
}

// Pool is a fixed-capacity arena of projectile slots with a LIFO free list.
// All slots are allocated up front; Active()+Free() always equals Cap().
type Pool struct {
	slots  []slot
	free   []int
	active int
}

// NewPool allocates capacity slots. Non-positive capacity uses DefaultMaxActive.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultMaxActive
	}
	p := &Pool{
		slots: make([]slot, capacity),
		free:  make([]int, capacity),
	}
	// Lowest index is handed out first.
	for i := range p.free {
		p.free[i] = capacity - 1 - i
	}
	return p
}

// Cap returns the number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// Active returns the number of projectiles in flight.
func (p *Pool) Active() int { return p.active }

// Free returns the number of pooled slots.
func (p *Pool) Free() int { return len(p.free) }

// Acquire takes a slot off the free list. It reports false when every slot is active.
func (p *Pool) Acquire() (Handle, *Projectile, bool) {
	n := len(p.free)
	if n == 0 {
		return Handle{}, nil, false
	}
	i := p.free[n-1]
	p.free = p.free[:n-1]

	s := &p.slots[i]
	s.active = true
	s.p = Projectile{}
	p.active++
	return Handle{Index: i, Gen: s.gen}, &s.p, true
}

// Release returns a slot to the free list. Stale or inactive handles are ignored.
func (p *Pool) Release(h Handle) bool {
	if h.Index < 0 || h.Index >= len(p.slots) {
		return false
	}
	s := &p.slots[h.Index]
	if !s.active || s.gen != h.Gen {
		return false
	}
	s.active = false
	s.gen++
	p.free = append(p.free, h.Index)
	p.active--
	return true
}

// Get returns the projectile behind a live handle.
func (p *Pool) Get(h Handle) (*Projectile, bool) {
	if h.Index < 0 || h.Index >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.Index]
	if !s.active || s.gen != h.Gen {
		return nil, false
	}
	return &s.p, true
}

// Each calls fn for every active projectile in slot order. fn may release the
// handle it is given.
func (p *Pool) Each(fn func(h Handle, pr *Projectile)) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.active {
			fn(Handle{Index: i, Gen: s.gen}, &s.p)
		}
	}
}

// Reset releases every active slot.
func (p *Pool) Reset() {
	p.Each(func(h Handle, _ *Projectile) { p.Release(h) })
}
