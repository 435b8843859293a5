// Package debugui provides Dear ImGui panels for inspecting a running ecs.World.
// Panels are ordinary entities carrying an ImguiItem; ImguiSystem queues their
// render functions into the frame's command buffer so they draw after every
// gameplay system has run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gearjump/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors Dear ImGui's input capture flags as a singleton.
// Frontends check it before treating a key press as a game action.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      *ecs.Table[ImguiItem]
	InputState *ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range i.Items.Iter() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}
