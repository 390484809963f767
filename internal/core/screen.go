package core

import (
	"strings"
)

// Shade tags a cell with a semantic color that the platform maps to a style.
type Shade uint8

const (
	ShadeDefault Shade = iota
	ShadeFloor
	ShadeWall
	ShadeRoof
	ShadePlayer
	ShadeEnemy
	ShadeProjectile
	ShadeImpact
	ShadeHUD
	ShadeWarning
)

// Cell is one character of a Screen.
type Cell struct {
	Rune  rune
	Shade Shade
}

var blankCell = Cell{Rune: ' '}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y, W, H int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Screen is a 2D cell buffer the viewer draws the arena into.
// It keeps drawing independent of the terminal so renders can be tested
// as plain strings.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

// Resize reallocates the buffer and clears it. Non-positive sizes collapse to 0.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height && s.cells != nil {
		return
	}
	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	s.Clear()
}

// Clear fills the entire screen with blank default cells.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Set places a shaded rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, shade Shade) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Shade: shade}
	}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes a string horizontally starting at (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string, shade Shade) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, shade)
		i++
	}
}

// FillRect fills a rectangular area.
func (s *Screen) FillRect(r Rect, fill rune, shade Shade) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill, shade)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, shade Shade) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─', shade)
		s.Set(x, bottom, '─', shade)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│', shade)
		s.Set(right, y, '│', shade)
	}
	s.Set(r.X, r.Y, '┌', shade)
	s.Set(right, r.Y, '┐', shade)
	s.Set(r.X, bottom, '└', shade)
	s.Set(right, bottom, '┘', shade)
}

// Row returns the runes of row y as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String converts the buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
