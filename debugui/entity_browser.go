package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gearjump/ecs"
)

type EntityInfo struct {
	ID         ecs.EntityId
	Components []string
}

func NewEntityBrowserPanel(world *ecs.World, maxEntitiesPerPage int) *EntityBrowserPanel {
	return &EntityBrowserPanel{
		world:              world,
		sortAscending:      true,
		lastEntityCount:    -1,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserPanel) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterTable = ""
		eb.currentPage = 0
	}
	if eb.filterTable != "" {
		imgui.Text("Table: " + eb.filterTable)
	}

	filtered := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.Filtered()
		}

		start := min(eb.currentPage*eb.maxEntitiesPerPage, len(filtered))
		end := min(start+eb.maxEntitiesPerPage, len(filtered))

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d##%d", entity.ID.Index(), entity.ID)
			if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ID.Generation()))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Components)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Refresh rebuilds the entity list when the live entity count changed.
func (eb *EntityBrowserPanel) Refresh() {
	if eb.lastEntityCount == eb.world.Len() && eb.entities != nil {
		return
	}
	eb.lastEntityCount = eb.world.Len()

	eb.entities = eb.entities[:0]
	for id := range eb.world.Entities() {
		eb.entities = append(eb.entities, EntityInfo{
			ID:         id,
			Components: eb.world.ComponentNames(id),
		})
	}
	eb.sortEntities()

	if !eb.world.Alive(eb.selected) {
		eb.selected = 0
	}
}

func (eb *EntityBrowserPanel) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowserPanel) sortEntities() {
	slices.SortStableFunc(eb.entities, func(a, b EntityInfo) int {
		var c int
		switch eb.sortColumn {
		case 1:
			c = int(a.ID.Generation()) - int(b.ID.Generation())
		case 2:
			c = strings.Compare(strings.Join(a.Components, ","), strings.Join(b.Components, ","))
		case 3:
			c = len(a.Components) - len(b.Components)
		default:
			c = int(a.ID.Index()) - int(b.ID.Index())
		}
		if !eb.sortAscending {
			return -c
		}
		return c
	})
}

// Filtered returns the entities matching the search text and table filter.
// The search matches the entity index or any component name, case-insensitively.
func (eb *EntityBrowserPanel) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterTable == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	needle := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		if eb.filterTable != "" && !slices.Contains(entity.Components, eb.filterTable) {
			continue
		}

		if needle != "" {
			index := fmt.Sprintf("%d", entity.ID.Index())
			components := strings.ToLower(strings.Join(entity.Components, " "))
			if !strings.Contains(index, needle) && !strings.Contains(components, needle) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowserPanel) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

func (eb *EntityBrowserPanel) SetTableFilter(table string) {
	eb.filterTable = table
	eb.currentPage = 0
}

func (eb *EntityBrowserPanel) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowserPanel) Select(id ecs.EntityId) {
	eb.selected = id
}
