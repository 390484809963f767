// Package collision holds the immutable static geometry of a level and the
// read-only queries the simulation runs against it: ray casts, line of sight,
// walkable surface probes and box overlap.
package collision

import (
	"math"

	"github.com/vovakirdan/arena/internal/core"
)

// StaticCollider is one axis-aligned obstacle. Walkable colliders also act as
// ground that actors can stand on.
type StaticCollider struct {
	ID       int
	Name     string
	Box      core.AABB
	Walkable bool
}

// Top returns the height of the collider's upper face.
func (c StaticCollider) Top() float64 {
	return c.Box.Max.Y
}

// Hit describes the nearest intersection found by a ray cast.
type Hit struct {
	Index    int       // index into World.Colliders
	Distance float64   // along the normalized ray direction
	Point    core.Vec3 // world-space entry point
}

// World is the collider registry built once per level. It is never mutated
// after NewWorld returns, so any number of readers may share it.
type World struct {
	colliders []StaticCollider
	skipped   []StaticCollider
	bounds    core.AABB
}

// NewWorld copies the colliders into a contiguous array. Boxes with inverted
// axes are normalized; boxes with zero extent are skipped and reported by Skipped.
// An empty list yields a world with no obstacles.
func NewWorld(colliders []StaticCollider) *World {
	w := &World{colliders: make([]StaticCollider, 0, len(colliders))}
	for _, c := range colliders {
		c.Box = c.Box.Normalized()
		if c.Box.Empty() {
			w.skipped = append(w.skipped, c)
			continue
		}
		if len(w.colliders) == 0 {
			w.bounds = c.Box
		} else {
			w.bounds = w.bounds.Union(c.Box)
		}
		w.colliders = append(w.colliders, c)
	}
	return w
}

// Len returns the number of accepted colliders.
func (w *World) Len() int {
	return len(w.colliders)
}

// Collider returns the collider at index i.
func (w *World) Collider(i int) StaticCollider {
	return w.colliders[i]
}

// Colliders returns the collider array. Callers must not modify it.
func (w *World) Colliders() []StaticCollider {
	return w.colliders
}

// Skipped returns the colliders rejected as degenerate.
func (w *World) Skipped() []StaticCollider {
	return w.skipped
}

// Bounds returns the union of all collider boxes, or the zero box for an empty world.
func (w *World) Bounds() core.AABB {
	return w.bounds
}

// Raycast returns the nearest collider hit along dir within maxDist.
// dir does not need to be normalized. A ray starting inside a box hits it at distance 0.
func (w *World) Raycast(origin, dir core.Vec3, maxDist float64) (Hit, bool) {
	return w.SweepRadius(origin, dir, maxDist, 0)
}

// SweepRadius is Raycast for a ball of the given radius: every box is grown by
// radius on all sides before the ray test. Point is the ball's center at contact.
func (w *World) SweepRadius(origin, dir core.Vec3, maxDist, radius float64) (Hit, bool) {
	n := dir.Normalize()
	if n == (core.Vec3{}) || maxDist <= 0 {
		return Hit{}, false
	}
	radius = math.Max(radius, 0)

	best := Hit{Index: -1, Distance: math.Inf(1)}
	for i := range w.colliders {
		t, ok := w.colliders[i].Box.Expand(radius, radius).RayHit(origin, n, maxDist)
		if ok && t < best.Distance {
			best.Index = i
			best.Distance = t
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	best.Point = origin.Add(n.Scale(best.Distance))
	return best, true
}

// Segment casts a ray from a to b and reports the nearest hit before b.
func (w *World) Segment(a, b core.Vec3) (Hit, bool) {
	return w.Raycast(a, b.Sub(a), a.Dist(b))
}

// LineOfSight reports whether the segment from a to b is free of static colliders.
func (w *World) LineOfSight(a, b core.Vec3) bool {
	_, blocked := w.Segment(a, b)
	return !blocked
}

// SurfaceBelow finds the highest walkable top under the point (x, z) whose height
// lies within [minY, maxY]. It returns the top height and the collider index.
func (w *World) SurfaceBelow(x, z, maxY, minY float64) (float64, int, bool) {
	top, idx := math.Inf(-1), -1
	for i := range w.colliders {
		c := &w.colliders[i]
		if !c.Walkable || !c.Box.ContainsXZ(x, z) {
			continue
		}
		if y := c.Top(); y >= minY && y <= maxY && y > top {
			top, idx = y, i
		}
	}
	return top, idx, idx >= 0
}

// HighestSurface returns the highest walkable top anywhere under (x, z).
func (w *World) HighestSurface(x, z float64) (float64, bool) {
	top, _, ok := w.SurfaceBelow(x, z, math.Inf(1), math.Inf(-1))
	return top, ok
}

// HasGroundBelow reports whether any walkable top lies at or below y under (x, z).
func (w *World) HasGroundBelow(x, z, y float64) bool {
	_, _, ok := w.SurfaceBelow(x, z, y, math.Inf(-1))
	return ok
}

// AppendOverlaps appends the indices of colliders that overlap box to dst.
func (w *World) AppendOverlaps(dst []int, box core.AABB) []int {
	for i := range w.colliders {
		if w.colliders[i].Box.Intersects(box) {
			dst = append(dst, i)
		}
	}
	return dst
}

// Clear reports whether no collider overlaps box.
func (w *World) Clear(box core.AABB) bool {
	for i := range w.colliders {
		if w.colliders[i].Box.Intersects(box) {
			return false
		}
	}
	return true
}

// FootprintSurface returns the highest walkable top whose footprint overlaps
// fp on the ground plane and whose height lies within [minY, maxY].
func (w *World) FootprintSurface(fp core.AABB, minY, maxY float64) (float64, int, bool) {
	top, idx := math.Inf(-1), -1
	for i := range w.colliders {
		c := &w.colliders[i]
		if !c.Walkable || !c.Box.OverlapsXZ(fp) {
			continue
		}
		if y := c.Top(); y >= minY && y <= maxY && y > top {
			top, idx = y, i
		}
	}
	return top, idx, idx >= 0
}

// CeilingAbove returns the lowest collider underside overlapping fp on the
// ground plane whose height lies within [fromY, toY].
func (w *World) CeilingAbove(fp core.AABB, fromY, toY float64) (float64, bool) {
	low, found := math.Inf(1), false
	for i := range w.colliders {
		c := &w.colliders[i]
		if !c.Box.OverlapsXZ(fp) {
			continue
		}
		if y := c.Box.Min.Y; y >= fromY && y <= toY && y < low {
			low, found = y, true
		}
	}
	return low, found
}
