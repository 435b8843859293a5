package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gearjump/debugui"
	debugui_ebiten "github.com/plus3/gearjump/debugui/ebiten"
	"github.com/plus3/gearjump/ecs"
)

// Game drives an ecs scheduler from Ebiten and overlays the debug panels.
type Game struct {
	scheduler    *ecs.Scheduler
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	// ImguiSystem defers panel renders, so they must run inside the ImGui frame.
	g.imguiBackend.Get().BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.imguiBackend.Get().EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.imguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	world := ecs.NewWorld()
	backend := ecs.NewSingleton(world, debugui_ebiten.NewImguiBackend("gearjump debug", 1280, 720))

	scheduler := ecs.NewScheduler(world)
	panels := debugui.Install(world, scheduler)

	panels.Spawn(world, func() {
		imgui.Begin("Debug Window")
		imgui.Text("Hello from the world!")
		imgui.End()
	})

	if err := ebiten.RunGame(&Game{scheduler: scheduler, imguiBackend: backend}); err != nil {
		panic(err)
	}
}
