package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gearjump/ecs"
)

func NewQueryDebuggerPanel(world *ecs.World) *QueryDebuggerPanel {
	return &QueryDebuggerPanel{
		world:    world,
		selected: make(map[string]bool),
	}
}

func (qd *QueryDebuggerPanel) Render() {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, table := range qd.world.CollectStats().Tables {
		selected := qd.selected[table.Name]
		if imgui.Checkbox(table.Name, &selected) {
			qd.Toggle(table.Name, selected)
		}
	}

	imgui.Separator()

	if len(qd.selected) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matches := qd.Matches()
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatches", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Index")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, id := range matches {
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id.Index()))
				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(qd.world.ComponentNames(id), ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerPanel) Toggle(table string, on bool) {
	if on {
		qd.selected[table] = true
	} else {
		delete(qd.selected, table)
	}
}

// Matches returns the live entities that carry every selected component.
func (qd *QueryDebuggerPanel) Matches() []ecs.EntityId {
	var matches []ecs.EntityId
	for id := range qd.world.Entities() {
		names := qd.world.ComponentNames(id)
		ok := true
		for required := range qd.selected {
			if !slices.Contains(names, required) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, id)
		}
	}
	return matches
}
