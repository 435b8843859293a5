package window

import (
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/game"
	"github.com/plus3/gearjump/kinematics"
)

const gearTeeth = 12

var (
	backgroundColor = color.RGBA{28, 30, 36, 255}
	gearColor       = color.RGBA{186, 160, 110, 255}
	gearToothColor  = color.RGBA{120, 100, 70, 255}
	playerColor     = color.RGBA{255, 179, 186, 255}
	orbitColor      = color.RGBA{90, 90, 110, 255}
	boundsColor     = color.RGBA{100, 200, 100, 255}
)

// Renderer draws a session's entities. World coordinates have their origin
// at the screen centre with y pointing up.
type Renderer struct {
	Components *game.Components
	Zoom       float32
	ShowBounds bool

	order []ecs.EntityId
}

func (r *Renderer) project(screen *ebiten.Image, p kinematics.Vec2) (float32, float32) {
	b := screen.Bounds()
	cx := float32(b.Dx()) / 2
	cy := float32(b.Dy()) / 2
	return cx + float32(p.X)*r.Zoom, cy - float32(p.Y)*r.Zoom
}

// Draw paints every sprite in ascending depth so the player sits over gears.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	c := r.Components
	r.order = r.order[:0]
	for id := range c.Sprites.Iter() {
		if c.Transforms.Has(id) {
			r.order = append(r.order, id)
		}
	}
	slices.SortStableFunc(r.order, func(a, b ecs.EntityId) int {
		za, zb := c.Transforms.Get(a).Position.Z, c.Transforms.Get(b).Position.Z
		switch {
		case za < zb:
			return -1
		case za > zb:
			return 1
		}
		return 0
	})

	for _, id := range r.order {
		transform := c.Transforms.Get(id)
		sprite := c.Sprites.Get(id)
		switch sprite.Kind {
		case game.SpriteGear:
			r.drawGear(screen, transform, sprite)
			if bounds := c.Bounds.Get(id); r.ShowBounds && bounds != nil {
				r.drawBounds(screen, bounds.Rect)
			}
		case game.SpritePlayer:
			if orbit := c.Orbits.Get(id); orbit != nil {
				r.drawOrbit(screen, orbit)
			}
			r.drawPlayer(screen, transform, sprite)
		}
	}
}

func (r *Renderer) drawGear(screen *ebiten.Image, t *game.Transform, s *game.Sprite) {
	width, height := s.Extents()
	radius := float32(min(width, height)/2) * r.Zoom
	x, y := r.project(screen, t.Position.XY())

	inner := radius * 0.8
	vector.DrawFilledCircle(screen, x, y, inner, gearColor, true)
	for i := range gearTeeth {
		angle := t.Rotation + float64(i)*2*math.Pi/gearTeeth
		sin, cos := math.Sincos(angle)
		vector.StrokeLine(screen,
			x+inner*float32(cos), y-inner*float32(sin),
			x+radius*float32(cos), y-radius*float32(sin),
			6*r.Zoom, gearToothColor, true)
	}
	vector.DrawFilledCircle(screen, x, y, radius*0.15, backgroundColor, true)
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, t *game.Transform, s *game.Sprite) {
	width, height := s.Extents()
	x, y := r.project(screen, t.Position.XY())
	vector.DrawFilledCircle(screen, x, y, float32(min(width, height)/4)*r.Zoom, playerColor, true)
}

func (r *Renderer) drawOrbit(screen *ebiten.Image, o *game.Orbit) {
	x, y := r.project(screen, o.Anchor.XY())
	vector.StrokeCircle(screen, x, y, float32(o.Radius)*r.Zoom, 1, orbitColor, true)
}

func (r *Renderer) drawBounds(screen *ebiten.Image, rect kinematics.Rect) {
	x, y := r.project(screen, kinematics.V2(rect.Min.X, rect.Max.Y))
	width, height := rect.Size()
	vector.StrokeRect(screen, x, y, float32(width)*r.Zoom, float32(height)*r.Zoom, 1, boundsColor, false)
}
