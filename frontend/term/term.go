// Package term runs a play session in a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gearjump/game"
	"github.com/plus3/gearjump/kinematics"
)

const (
	gearTeeth = 8
	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gearStyle   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	toothStyle  = tcell.StyleDefault.Foreground(tcell.ColorTan)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true)
	orbitStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Terminal renders a session onto a tcell screen and maps keys to actions.
type Terminal struct {
	screen  tcell.Screen
	session *game.Session

	// Span is the world width, in world units, shown across the screen.
	Span float64
	// ShowOrbit draws the player's orbit circle.
	ShowOrbit bool
}

// New wraps an initialised screen. The screen is not finalised by Terminal.
func New(screen tcell.Screen, session *game.Session) *Terminal {
	return &Terminal{
		screen:    screen,
		session:   session,
		Span:      400,
		ShowOrbit: true,
	}
}

// HandleEvent applies a tcell event and reports whether the user asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			t.session.Trigger(game.ActionSpeedUp)
		case tcell.KeyDown:
			t.session.Trigger(game.ActionSpeedDown)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				t.session.Trigger(game.ActionJump)
			case '+', '=':
				t.session.Trigger(game.ActionSpeedUp)
			case '-', '_':
				t.session.Trigger(game.ActionSpeedDown)
			case 'o':
				t.ShowOrbit = !t.ShowOrbit
			}
		}
	}
	return false
}

func (t *Terminal) scale() float64 {
	width, _ := t.screen.Size()
	return float64(width) / t.Span
}

// Cell maps a world position to a screen cell. World y points up.
func (t *Terminal) Cell(p kinematics.Vec2) (x, y int) {
	width, height := t.screen.Size()
	s := t.scale()
	x = width/2 + int(math.Round(p.X*s))
	y = height/2 - int(math.Round(p.Y*s/cellAspect))
	return x, y
}

func (t *Terminal) put(p kinematics.Vec2, r rune, style tcell.Style) {
	x, y := t.Cell(p)
	width, height := t.screen.Size()
	if x < 0 || y < 1 || x >= width || y >= height {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) putText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Draw renders the current session state and shows it.
func (t *Terminal) Draw() {
	t.screen.Clear()
	c := t.session.Components

	for id := range c.Gears.Iter() {
		transform := c.Transforms.Get(id)
		sprite := c.Sprites.Get(id)
		if transform == nil || sprite == nil {
			continue
		}
		t.drawGear(transform, sprite)
	}

	if orbit := t.session.PlayerOrbit(); orbit != nil {
		if t.ShowOrbit {
			t.drawOrbit(orbit)
		}
		t.put(orbit.Position.XY(), '@', playerStyle)
	}

	governor := t.session.Governor()
	stats := t.session.Stats()
	t.putText(0, 0, fmt.Sprintf("speed %.2fx  jumps %d  transfers %d  [space] jump [+/-] speed [q] quit",
		governor.Multiplier(), stats.Jumps, stats.Transfers), hudStyle)

	t.screen.Show()
}

func (t *Terminal) drawGear(transform *game.Transform, sprite *game.Sprite) {
	width, height := sprite.Extents()
	radius := min(width, height) / 2 * 0.8
	center := transform.Position.XY()

	t.put(center, 'O', gearStyle)
	for i := range gearTeeth {
		angle := transform.Rotation + float64(i)*2*math.Pi/gearTeeth
		sin, cos := math.Sincos(angle)
		t.put(center.Add(kinematics.V2(cos, sin).Scale(radius)), '#', toothStyle)
	}
}

func (t *Terminal) drawOrbit(orbit *game.Orbit) {
	steps := max(16, int(orbit.Radius*t.scale()*4))
	for i := range steps {
		t.put(orbit.PositionAt(float64(i)*2*math.Pi/float64(steps)).XY(), '.', orbitStyle)
	}
}

// Run polls input and ticks the session every interval until ctx is
// cancelled, the user quits or the screen is finalised. The event reader is
// stopped before Run returns, so the screen can be handed to another Run.
func (t *Terminal) Run(ctx context.Context, interval time.Duration) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer func() {
		close(quit)
		for range events {
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	t.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || t.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			t.session.Tick(dt)
			t.Draw()
		}
	}
}

// Play opens the controlling terminal and runs a session of level on it.
func Play(ctx context.Context, level *game.Level, interval time.Duration, opts ...game.Option) error {
	session, err := game.NewSession(level, opts...)
	if err != nil {
		return err
	}
	defer session.End()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal screen: %w", err)
	}
	defer screen.Fini()

	return New(screen, session).Run(ctx, interval)
}
