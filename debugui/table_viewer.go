package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gearjump/ecs"
)

type TableInfo struct {
	Name string
	Len  int
}

func NewTableViewerPanel(world *ecs.World) *TableViewerPanel {
	return &TableViewerPanel{
		world:      world,
		sortColumn: 1,
	}
}

// Render lists the world's component tables with their sizes. Clicking a row
// returns its name so the entity browser can filter on it; otherwise "".
func (tv *TableViewerPanel) Render() string {
	if !imgui.BeginV("Component Tables", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	tv.Refresh()

	largest := 0
	for _, table := range tv.tables {
		largest = max(largest, table.Len)
	}

	var clicked string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTables", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, table := range tv.tables {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(table.Name, tv.selected == table.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tv.selected = table.Name
				clicked = table.Name
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Len))

			if largest > 0 {
				barWidth := float32(table.Len) / float32(largest) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// Refresh reloads table sizes from the world.
func (tv *TableViewerPanel) Refresh() {
	stats := tv.world.CollectStats()
	tv.tables = tv.tables[:0]
	for _, table := range stats.Tables {
		tv.tables = append(tv.tables, TableInfo{Name: table.Name, Len: table.Len})
	}
	tv.sortTables()
}

func (tv *TableViewerPanel) SortBy(column int, ascending bool) {
	tv.sortColumn = column
	tv.sortAscending = ascending
	tv.sortTables()
}

func (tv *TableViewerPanel) Tables() []TableInfo {
	return tv.tables
}

func (tv *TableViewerPanel) sortTables() {
	slices.SortStableFunc(tv.tables, func(a, b TableInfo) int {
		var c int
		if tv.sortColumn == 0 {
			c = strings.Compare(a.Name, b.Name)
		} else {
			c = cmp.Compare(a.Len, b.Len)
		}
		if !tv.sortAscending {
			return -c
		}
		return c
	})
}
