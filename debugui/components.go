package debugui

import (
	"github.com/plus3/gearjump/ecs"
)

type EntityBrowserPanel struct {
	world              *ecs.World
	entities           []EntityInfo
	lastEntityCount    int
	sortColumn         int
	sortAscending      bool
	selected           ecs.EntityId
	filterText         string
	filterTable        string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorPanel struct {
	world   *ecs.World
	layouts *LayoutCache
}

type TableViewerPanel struct {
	world         *ecs.World
	tables        []TableInfo
	sortColumn    int
	sortAscending bool
	selected      string
}

type PerformanceStatsPanel struct {
	world         *ecs.World
	scheduler     *ecs.Scheduler
	timer         *FrameTimer
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerPanel struct {
	world    *ecs.World
	selected map[string]bool
}
