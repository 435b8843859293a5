// Package window runs a play session in an Ebiten window, with optional
// Dear ImGui debug panels.
package window

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/gearjump/debugui"
	debugui_ebiten "github.com/plus3/gearjump/debugui/ebiten"
	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/game"
)

type Config struct {
	Title  string
	Width  int
	Height int
	Zoom   float32
	Debug  bool
	Level  *game.Level
	Logger *log.Logger
}

var keyActions = []struct {
	key    ebiten.Key
	action game.Action
}{
	{ebiten.KeyArrowUp, game.ActionSpeedUp},
	{ebiten.KeyEqual, game.ActionSpeedUp},
	{ebiten.KeyArrowDown, game.ActionSpeedDown},
	{ebiten.KeyMinus, game.ActionSpeedDown},
	{ebiten.KeySpace, game.ActionJump},
}

// Game implements ebiten.Game around a game.Session.
type Game struct {
	config   Config
	session  *game.Session
	renderer *Renderer
	backend  *debugui_ebiten.ImguiBackend
	capture  *ecs.Singleton[debugui.ImguiInputState]
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(config Config) error {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}
	if config.Zoom == 0 {
		config.Zoom = 1
	}

	g := &Game{config: config}

	if config.Debug {
		backend := debugui_ebiten.NewImguiBackend(config.Title, config.Width, config.Height)
		g.backend = &backend
	} else {
		ebiten.SetWindowSize(config.Width, config.Height)
		ebiten.SetWindowTitle(config.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := g.start(); err != nil {
		return err
	}
	defer func() { g.session.End() }()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

func (g *Game) start() error {
	if g.session != nil {
		g.session.End()
	}

	session, err := game.NewSession(g.config.Level, game.WithLogger(g.config.Logger))
	if err != nil {
		return err
	}
	g.session = session
	g.renderer = &Renderer{
		Components: session.Components,
		Zoom:       g.config.Zoom,
		ShowBounds: g.renderer != nil && g.renderer.ShowBounds,
	}

	if g.backend != nil {
		panels := debugui.Install(session.World, session.Scheduler)
		panels.Spawn(session.World, controlPanel(session))
		g.capture = ecs.NewSingleton[debugui.ImguiInputState](session.World)
	}
	return nil
}

func (g *Game) keyboardCaptured() bool {
	return g.capture != nil && g.capture.Get().WantCaptureKeyboard
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if !g.keyboardCaptured() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := g.start(); err != nil {
				return err
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyB) {
			g.renderer.ShowBounds = !g.renderer.ShowBounds
		}
		for _, binding := range keyActions {
			if inpututil.IsKeyJustPressed(binding.key) {
				g.session.Trigger(binding.action)
			}
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	if g.backend != nil {
		g.backend.BeginFrame()
		g.session.Tick(dt)
		g.backend.EndFrame()
	} else {
		g.session.Tick(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)

	governor := g.session.Governor()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"speed %.2fx  transfers %d\nspace jump, up/down speed, r restart, b bounds, esc quit",
		governor.Multiplier(), g.session.Stats().Transfers))

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
