package tui

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arena/internal/ai"
	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/combat"
	"github.com/vovakirdan/arena/internal/core"
	"github.com/vovakirdan/arena/internal/sim"
)

// shadeStyles maps core.Shade to lipgloss styles.
var shadeStyles = map[core.Shade]lipgloss.Style{
	core.ShadeDefault:    lipgloss.NewStyle(),
	core.ShadeFloor:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ShadeWall:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ShadeRoof:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ShadePlayer:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ShadeEnemy:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ShadeProjectile: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ShadeImpact:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ShadeHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236")),
	core.ShadeWarning:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same shade to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Shade

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Shade != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := shadeStyles[start]
			if !ok {
				style = shadeStyles[core.ShadeDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// lowHealth is the health fraction below which the HUD turns red.
const lowHealth = 0.3

// View is a top-down camera over the arena. One screen row covers Scale
// world units; columns cover half that, since terminal cells are about
// twice as tall as they are wide.
type View struct {
	Center core.Vec3
	Scale  float64
}

// DefaultScale is the world units per screen row.
const DefaultScale = 0.5

func (v View) scale() float64 {
	if v.Scale <= 0 {
		return DefaultScale
	}
	return v.Scale
}

// toCell maps a world point to a screen cell. Screen up is world -Z, which
// is the direction an actor with yaw 0 faces.
func (v View) toCell(s *core.Screen, p core.Vec3) (int, int) {
	sc := v.scale()
	cx := float64(s.Width()) / 2
	cy := float64(s.Height()-1) / 2
	x := cx + (p.X-v.Center.X)/(sc/2)
	y := cy + (p.Z-v.Center.Z)/sc
	return int(math.Floor(x)), int(math.Floor(y))
}

// toWorld maps the center of a screen cell back to world X and Z.
func (v View) toWorld(s *core.Screen, x, y int) (float64, float64) {
	sc := v.scale()
	cx := float64(s.Width()) / 2
	cy := float64(s.Height()-1) / 2
	return v.Center.X + (float64(x)+0.5-cx)*(sc/2), v.Center.Z + (float64(y)+0.5-cy)*sc
}

// DrawArena draws the world, the actors and the HUD for snap. The view is
// centered on the player.
func DrawArena(s *core.Screen, world *collision.World, snap sim.Snapshot) {
	s.Clear()
	if s.Width() == 0 || s.Height() < 2 {
		return
	}
	v := View{Center: snap.Player.Position, Scale: DefaultScale}

	drawColliders(s, world, v)

	for _, p := range snap.Projectiles {
		x, y := v.toCell(s, p.Position)
		shade := core.ShadeProjectile
		if p.Team == combat.TeamEnemy {
			shade = core.ShadeImpact
		}
		s.Set(x, y, '*', shade)
	}
	for _, e := range snap.Enemies {
		x, y := v.toCell(s, e.Position)
		s.Set(x, y, enemyGlyph(e.State), core.ShadeEnemy)
	}

	px, py := v.toCell(s, snap.Player.Position)
	hx, hy := v.toCell(s, snap.Player.Position.Add(core.ForwardFromYaw(snap.Player.Yaw).Scale(v.scale()*1.2)))
	if hx != px || hy != py {
		s.Set(hx, hy, headingGlyph(snap.Player.Yaw), core.ShadePlayer)
	}
	s.Set(px, py, '@', core.ShadePlayer)

	drawHUD(s, snap)
}

// drawColliders paints every cell from the highest collider under it, so
// walls and raised floors hide the ground beneath.
func drawColliders(s *core.Screen, world *collision.World, v View) {
	if world == nil {
		return
	}
	cols := slices.Clone(world.Colliders())
	slices.SortStableFunc(cols, func(a, b collision.StaticCollider) int {
		return cmp.Compare(a.Top(), b.Top())
	})
	ground := world.Bounds().Min.Y
	for y := range s.Height() - 1 {
		for x := range s.Width() {
			wx, wz := v.toWorld(s, x, y)
			for i := len(cols) - 1; i >= 0; i-- {
				c := cols[i]
				if !c.Box.ContainsXZ(wx, wz) {
					continue
				}
				r, shade := colliderGlyph(c, ground)
				s.Set(x, y, r, shade)
				break
			}
		}
	}
}

func colliderGlyph(c collision.StaticCollider, ground float64) (rune, core.Shade) {
	switch {
	case !c.Walkable:
		return '#', core.ShadeWall
	case c.Box.Min.Y <= ground:
		return '.', core.ShadeFloor
	default:
		return '=', core.ShadeRoof
	}
}

func enemyGlyph(st ai.State) rune {
	switch st {
	case ai.Chase:
		return 'C'
	case ai.Attack:
		return 'A'
	default:
		return 'p'
	}
}

// headingGlyph returns an arrow for the facing direction, quantized to the
// four screen directions.
func headingGlyph(yaw float64) rune {
	f := core.ForwardFromYaw(yaw)
	if math.Abs(f.X) > math.Abs(f.Z) {
		if f.X > 0 {
			return '>'
		}
		return '<'
	}
	if f.Z < 0 {
		return '^'
	}
	return 'v'
}

func drawHUD(s *core.Screen, snap sim.Snapshot) {
	y := s.Height() - 1
	shade := core.ShadeHUD
	if snap.Player.MaxHealth > 0 && snap.Player.Health/snap.Player.MaxHealth < lowHealth {
		shade = core.ShadeWarning
	}
	s.FillRect(core.Rect{X: 0, Y: y, W: s.Width(), H: 1}, ' ', shade)

	w := snap.Weapon
	ammo := fmt.Sprintf("%d/%d", w.Ammo, w.Magazine)
	if w.Reloading {
		ammo = fmt.Sprintf("reload %.1fs", w.ReloadLeft)
	}
	hud := fmt.Sprintf(" HP %3.0f/%.0f  wave %d  %s %s  kills %d  score %d  t %.0fs",
		snap.Player.Health, snap.Player.MaxHealth, snap.Wave, w.Name, ammo,
		snap.Stats.Kills, snap.Stats.Score(), snap.Time)
	s.DrawText(0, y, hud, shade)
}
