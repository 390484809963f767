package level

func init() {
	Register("fortress", Fortress)
	Register("flat", Flat)
	Register("steps", Steps)
}

func box(name string, center, size Point, walkable bool) ColliderDef {
	return ColliderDef{Name: name, Box: &BoxDef{Center: center, Size: size}, Walkable: walkable}
}

func ground(half float64) ColliderDef {
	return box("ground", Point{0, -0.5, 0}, Point{2 * half, 1, 2 * half}, true)
}

// Fortress is the default arena: a walled fortress with a walkable roof in the
// middle of a 25x25 field, curb steps at the door, a crate climb and twelve
// scattered obstacles.
func Fortress() Level {
	l := Level{
		Name:  "fortress",
		Title: "Fortress",
		Spawn: Point{0, 4.85, 0},
		Colliders: []ColliderDef{
			ground(12.5),
			box("wall-front-left", Point{-1.75, 1.5, 2.5}, Point{1.5, 3, 0.5}, false),
			box("wall-front-right", Point{1.75, 1.5, 2.5}, Point{1.5, 3, 0.5}, false),
			box("lintel", Point{0, 2.8, 2.5}, Point{2.2, 0.4, 0.6}, false),
			box("wall-back", Point{0, 1.5, -2.5}, Point{5, 3, 0.5}, false),
			box("wall-east", Point{2.5, 1.5, 0}, Point{0.5, 3, 5}, false),
			box("wall-west", Point{-2.5, 1.5, 0}, Point{0.5, 3, 5}, false),
			box("roof", Point{0, 3.25, 0}, Point{5, 0.5, 5}, true),
			box("interior-floor", Point{0, 0.05, 0}, Point{4, 0.1, 4}, true),
			box("curb", Point{0, 0.125, 3.6}, Point{2, 0.25, 0.6}, true),
			box("crate-low", Point{6, 0.15, -6}, Point{1.2, 0.3, 1.2}, true),
			box("crate-high", Point{6, 0.3, -7.2}, Point{1.2, 0.6, 1.2}, true),
			box("crate-big", Point{-6, 0.75, 5}, Point{1.5, 1.5, 1.5}, false),
		},
		Scatter: &Scatter{
			Count:      12,
			HalfExtent: 12,
			Forbidden: []BoxDef{
				{Center: Point{0, 2.25, 0.1}, Size: Point{6, 4.5, 6.2}},
				{Center: Point{0, 1.75, 2.75}, Size: Point{3, 3.5, 3.5}},
				{Center: Point{6, 1, -6.6}, Size: Point{2.4, 2, 3.6}},
				{Center: Point{-6, 1, 5}, Size: Point{2.5, 2, 2.5}},
			},
		},
	}
	for _, x := range []float64{-2.2, 2.2} {
		for _, z := range []float64{-2.2, 2.2} {
			l.Colliders = append(l.Colliders, box("pillar", Point{x, 1.75, z}, Point{0.6, 3.5, 0.6}, false))
		}
	}
	return l
}

// Flat is an empty field.
func Flat() Level {
	return Level{
		Name:      "flat",
		Title:     "Flat Field",
		Colliders: []ColliderDef{ground(12.5)},
	}
}

// Steps is a stair run climbing east with a row of low and tall walls to the north.
func Steps() Level {
	l := Level{
		Name:      "steps",
		Title:     "Steps",
		Spawn:     Point{0, 0, 4},
		Colliders: []ColliderDef{ground(12.5)},
	}
	for i := 1; i <= 4; i++ {
		x0 := 1.0 + float64(i)
		top := 0.3 * float64(i)
		l.Colliders = append(l.Colliders, ColliderDef{
			Name:     "stair",
			Min:      &Point{x0, 0, -2},
			Max:      &Point{8, top, 2},
			Walkable: true,
		})
	}
	l.Colliders = append(l.Colliders,
		box("curb-high", Point{-3, 0.25, -5}, Point{2, 0.5, 0.5}, true),
		box("wall", Point{0, 1, -5}, Point{2, 2, 0.5}, false),
		box("wall", Point{3, 1, -5}, Point{2, 2, 0.5}, false),
	)
	return l
}
