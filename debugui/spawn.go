package debugui

import "github.com/plus3/gearjump/ecs"

// Panels holds the debug windows spawned by Install.
type Panels struct {
	Items     *ecs.Table[ImguiItem]
	Browser   *EntityBrowserPanel
	Inspector *ComponentInspectorPanel
	Tables    *TableViewerPanel
	Stats     *PerformanceStatsPanel
	Query     *QueryDebuggerPanel
}

// Install registers ImguiSystem on scheduler and spawns the debug panels as
// entities of world. The browser feeds its selection to the inspector, and
// clicking a component table filters the browser.
func Install(world *ecs.World, scheduler *ecs.Scheduler) *Panels {
	p := &Panels{
		Items:     ecs.NewTable[ImguiItem](world),
		Browser:   NewEntityBrowserPanel(world, 100),
		Inspector: NewComponentInspectorPanel(world),
		Tables:    NewTableViewerPanel(world),
		Stats:     NewPerformanceStatsPanel(world, scheduler, 120),
		Query:     NewQueryDebuggerPanel(world),
	}

	scheduler.Register(&ImguiSystem{
		Items:      p.Items,
		InputState: ecs.NewSingleton[ImguiInputState](world),
	})

	p.Spawn(world, func() {
		p.Browser.Render()
		p.Inspector.Render(p.Browser.Selected())
	})
	p.Spawn(world, func() {
		if table := p.Tables.Render(); table != "" {
			p.Browser.SetTableFilter(table)
		}
	})
	p.Spawn(world, p.Stats.Render)
	p.Spawn(world, p.Query.Render)

	return p
}

// Spawn adds another window rendered by render.
func (p *Panels) Spawn(world *ecs.World, render func()) ecs.EntityId {
	id := world.Spawn()
	p.Items.Insert(id, ImguiItem{Render: render})
	return id
}
