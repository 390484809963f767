package level

import (
	"math/rand"

	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/core"
)

// Obstacle kinds used by Scatter.
const (
	KindCrate    = "crate"
	KindBarrier  = "barrier"
	KindPillar   = "pillar"
	KindPlatform = "platform"
)

const scatterAttempts = 80

// Scatter places random obstacles on the ground around the level center.
type Scatter struct {
	Count      int      `yaml:"count"`
	HalfExtent float64  `yaml:"half_extent"` // obstacle centers lie within this square
	Kinds      []string `yaml:"kinds"`       // empty means every kind
	Forbidden  []BoxDef `yaml:"forbidden"`   // no obstacle may overlap these
}

// place returns the obstacles that found a free spot within scatterAttempts tries.
func (s *Scatter) place(rng *rand.Rand) []collision.StaticCollider {
	kinds := s.Kinds
	if len(kinds) == 0 {
		kinds = []string{KindCrate, KindCrate, KindBarrier, KindPillar, KindPlatform}
	}
	forbidden := make([]core.AABB, len(s.Forbidden))
	for i, f := range s.Forbidden {
		forbidden[i] = core.BoxFromCenter(f.Center.Vec(), f.Size.Vec())
	}

	out := make([]collision.StaticCollider, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		size := obstacleSize(kind, rng)

		for a := 0; a < scatterAttempts; a++ {
			x := between(rng, -s.HalfExtent, s.HalfExtent)
			z := between(rng, -s.HalfExtent, s.HalfExtent)
			box := core.AABB{
				Min: core.V3(x-size.X/2, 0, z-size.Z/2),
				Max: core.V3(x+size.X/2, size.Y, z+size.Z/2),
			}
			if overlapsAny(box, forbidden) || overlapsPlaced(box, out) {
				continue
			}
			out = append(out, collision.StaticCollider{
				Name:     kind,
				Box:      box,
				Walkable: kind == KindPlatform,
			})
			break
		}
	}
	return out
}

func obstacleSize(kind string, rng *rand.Rand) core.Vec3 {
	switch kind {
	case KindBarrier:
		return core.V3(between(rng, 1.5, 3.5), between(rng, 1.2, 2.5), between(rng, 0.3, 0.8))
	case KindPillar:
		d := 2 * between(rng, 0.4, 0.8)
		return core.V3(d, between(rng, 2, 4), d)
	case KindPlatform:
		return core.V3(between(rng, 1.5, 3), between(rng, 0.3, 0.6), between(rng, 1.5, 3))
	default:
		return core.V3(between(rng, 0.8, 2.5), between(rng, 0.8, 2.8), between(rng, 0.8, 2.5))
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func overlapsAny(box core.AABB, zones []core.AABB) bool {
	for _, z := range zones {
		if box.Intersects(z) {
			return true
		}
	}
	return false
}

func overlapsPlaced(box core.AABB, placed []collision.StaticCollider) bool {
	for _, p := range placed {
		if box.Intersects(p.Box) {
			return true
		}
	}
	return false
}
