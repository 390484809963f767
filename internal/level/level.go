// Package level describes arena geometry: a YAML file format, the built-in
// levels and the conversion into an immutable collision.World.
package level

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/core"
)

// Point is a position or size written as a flow sequence, e.g. [1, 0.5, -2].
type Point [3]float64

// Vec converts p to a vector.
func (p Point) Vec() core.Vec3 {
	return core.V3(p[0], p[1], p[2])
}

// BoxDef is the center/size shorthand for a collider.
type BoxDef struct {
	Center Point `yaml:"center"`
	Size   Point `yaml:"size"`
}

// ColliderDef is one static box. Either Min/Max or Box must be given.
type ColliderDef struct {
	Name     string  `yaml:"name"`
	Min      *Point  `yaml:"min,omitempty"`
	Max      *Point  `yaml:"max,omitempty"`
	Box      *BoxDef `yaml:"box,omitempty"`
	Walkable bool    `yaml:"walkable"`
}

// AABB returns the collider's box as written, without normalizing it.
func (d ColliderDef) AABB() (core.AABB, error) {
	switch {
	case d.Box != nil:
		return core.BoxFromCenter(d.Box.Center.Vec(), d.Box.Size.Vec()), nil
	case d.Min != nil && d.Max != nil:
		return core.AABB{Min: d.Min.Vec(), Max: d.Max.Vec()}, nil
	default:
		return core.AABB{}, fmt.Errorf("level: collider %q needs min/max or box", d.Name)
	}
}

// Level is a complete arena description.
type Level struct {
	Name      string        `yaml:"name"`
	Title     string        `yaml:"title"`
	Spawn     Point         `yaml:"spawn"`
	SpawnYaw  float64       `yaml:"spawn_yaw"`
	Bounds    float64       `yaml:"bounds"` // enemy leash half extent; 0 keeps the configured value
	Colliders []ColliderDef `yaml:"colliders"`
	Scatter   *Scatter      `yaml:"scatter,omitempty"`
}

// Build converts the level into a collision world. Scattered obstacles are
// placed with an rng seeded by seed, so the same seed gives the same layout.
// Inverted boxes are normalized and degenerate ones skipped; both are logged
// as warnings and never fail the build.
func Build(l Level, seed int64, logger *log.Logger) (*collision.World, error) {
	if logger == nil {
		logger = log.Default()
	}

	colliders := make([]collision.StaticCollider, 0, len(l.Colliders))
	for _, d := range l.Colliders {
		box, err := d.AABB()
		if err != nil {
			return nil, err
		}
		if box.Normalized() != box {
			logger.Warn("normalized inverted collider", "level", l.Name, "collider", d.Name)
		}
		colliders = append(colliders, collision.StaticCollider{
			ID:       len(colliders),
			Name:     d.Name,
			Box:      box,
			Walkable: d.Walkable,
		})
	}

	if l.Scatter != nil {
		rng := rand.New(rand.NewSource(seed))
		placed := l.Scatter.place(rng)
		for _, c := range placed {
			c.ID = len(colliders)
			colliders = append(colliders, c)
		}
		if missing := l.Scatter.Count - len(placed); missing > 0 {
			logger.Debug("scatter placement gave up", "level", l.Name, "missing", missing)
		}
	}

	w := collision.NewWorld(colliders)
	for _, c := range w.Skipped() {
		logger.Warn("skipped degenerate collider", "level", l.Name, "collider", c.Name, "id", c.ID)
	}
	return w, nil
}

// SafeSpawn drops the spawn point onto the highest walkable surface at or
// below spawn+2 under it. Without any surface the spawn is returned unchanged.
func SafeSpawn(w *collision.World, spawn core.Vec3) core.Vec3 {
	if top, _, ok := w.SurfaceBelow(spawn.X, spawn.Z, spawn.Y+2, -1e9); ok {
		spawn.Y = top
	}
	return spawn
}
