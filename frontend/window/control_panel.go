package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gearjump/game"
)

// controlPanel renders the session controls: speed buttons, a jump button
// and the running counters.
func controlPanel(session *game.Session) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(260, 220), imgui.CondOnce)
		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		governor := session.Governor()
		low, high := governor.Bounds()
		imgui.Text(fmt.Sprintf("Speed: %.2fx (%.2f - %.2f)", governor.Multiplier(), low, high))

		if imgui.Button("Slower") {
			session.Trigger(game.ActionSpeedDown)
		}
		imgui.SameLine()
		if imgui.Button("Faster") {
			session.Trigger(game.ActionSpeedUp)
		}
		imgui.SameLine()
		if imgui.Button("Jump") {
			session.Trigger(game.ActionJump)
		}

		imgui.Separator()

		stats := session.Stats()
		imgui.Text(fmt.Sprintf("Jumps: %d", stats.Jumps))
		imgui.Text(fmt.Sprintf("Transfers: %d", stats.Transfers))
		imgui.Text(fmt.Sprintf("Speed changes: %d", stats.SpeedChanges))

		if orbit := session.PlayerOrbit(); orbit != nil {
			imgui.Separator()
			imgui.Text(fmt.Sprintf("Anchor: (%.1f, %.1f)", orbit.Anchor.X, orbit.Anchor.Y))
			imgui.Text(fmt.Sprintf("Phase: %.3f rad, %s", orbit.Phase, orbit.Direction))
			imgui.Text(fmt.Sprintf("Radial error: %.2e", orbit.RadialError()))
		}

		imgui.End()
	}
}
