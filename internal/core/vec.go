package core

import "math"

// Vec2 is a 2D vector, used for stick axes and ground-plane directions.
type Vec2 struct {
	X, Y float64
}

// Len returns the length of the vector.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// ClampUnit scales the vector down so its length does not exceed 1.
// Diagonal stick input must not move an actor faster than a straight push.
func (v Vec2) ClampUnit() Vec2 {
	l := v.Len()
	if l <= 1 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Vec3 is a 3D point or direction. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len returns the length of the vector.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Dist returns the distance between two points.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Flat returns the vector projected onto the ground plane (Y = 0).
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// ForwardFromYaw returns the unit forward direction on the ground plane for a heading.
// Yaw 0 faces -Z; positive yaw turns counter-clockwise when seen from above.
func ForwardFromYaw(yaw float64) Vec3 {
	return Vec3{X: -math.Sin(yaw), Z: -math.Cos(yaw)}
}

// RightFromYaw returns the unit right direction on the ground plane for a heading.
func RightFromYaw(yaw float64) Vec3 {
	return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
}

// YawTowards returns the heading that faces from one point towards another on the ground plane.
// The second result is false when the points coincide horizontally.
func YawTowards(from, to Vec3) (float64, bool) {
	d := to.Sub(from)
	if d.X*d.X+d.Z*d.Z < 1e-12 {
		return 0, false
	}
	return math.Atan2(-d.X, -d.Z), true
}

// WrapAngle normalizes an angle into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	if a > -math.Pi && a <= math.Pi {
		return a
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// BoxFromCenter builds an AABB from its center point and full size.
func BoxFromCenter(center, size Vec3) AABB {
	h := size.Scale(0.5)
	return AABB{Min: center.Sub(h), Max: center.Add(h)}
}

// Normalized returns the box with Min/Max swapped per axis where they were inverted.
func (b AABB) Normalized() AABB {
	if b.Min.X > b.Max.X {
		b.Min.X, b.Max.X = b.Max.X, b.Min.X
	}
	if b.Min.Y > b.Max.Y {
		b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
	}
	if b.Min.Z > b.Max.Z {
		b.Min.Z, b.Max.Z = b.Max.Z, b.Min.Z
	}
	return b
}

// Empty reports whether the box has zero extent on any axis.
func (b AABB) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z
}

// Size returns the box extents.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Expand grows the box by dx on X and Z and dy on Y, on every side.
func (b AABB) Expand(dx, dy float64) AABB {
	return AABB{
		Min: Vec3{b.Min.X - dx, b.Min.Y - dy, b.Min.Z - dx},
		Max: Vec3{b.Max.X + dx, b.Max.Y + dy, b.Max.Z + dx},
	}
}

// Contains reports whether p lies inside the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsXZ reports whether the ground-plane projection of p lies inside the box footprint.
func (b AABB) ContainsXZ(x, z float64) bool {
	return x >= b.Min.X && x <= b.Max.X && z >= b.Min.Z && z <= b.Max.Z
}

// Intersects reports whether two boxes overlap with non-zero volume.
func (b AABB) Intersects(o AABB) bool {
	if b.Min.X >= o.Max.X || o.Min.X >= b.Max.X {
		return false
	}
	if b.Min.Y >= o.Max.Y || o.Min.Y >= b.Max.Y {
		return false
	}
	if b.Min.Z >= o.Max.Z || o.Min.Z >= b.Max.Z {
		return false
	}
	return true
}

// OverlapsXZ reports whether the ground-plane footprints of two boxes overlap
// with non-zero area. Touching edges do not count.
func (b AABB) OverlapsXZ(o AABB) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// RayHit tests a ray against the box using the slab method.
// dir need not be normalized; the returned t is in units of dir.
// A ray starting inside the box hits at t = 0.
func (b AABB) RayHit(origin, dir Vec3, maxT float64) (float64, bool) {
	tMin, tMax := 0.0, maxT

	for axis := 0; axis < 3; axis++ {
		var o, d, lo, hi float64
		switch axis {
		case 0:
			o, d, lo, hi = origin.X, dir.X, b.Min.X, b.Max.X
		case 1:
			o, d, lo, hi = origin.Y, dir.Y, b.Min.Y, b.Max.Y
		case 2:
			o, d, lo, hi = origin.Z, dir.Z, b.Min.Z, b.Max.Z
		}

		if math.Abs(d) < 1e-12 {
			// Parallel to the slab
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
