package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// componentTable is the type-erased view of a Table the World needs to
// clean up after despawns and to report stats.
type componentTable interface {
	remove(id EntityId) bool
	lookup(id EntityId) (any, bool)
	name() string
	Len() int
}

// World owns entity allocation, the component tables registered against it and
// its singletons. Entity slots are recycled; each reuse bumps the slot
// generation so stale ids stop resolving.
type World struct {
	generations []uint32
	alive       []bool
	free        []uint32
	live        int

	tables     []componentTable
	singletons map[reflect.Type]any
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn allocates a new entity. Components are attached through tables.
func (w *World) Spawn() EntityId {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.generations))
		w.generations = append(w.generations, 0)
		w.alive = append(w.alive, false)
	}

	w.generations[index]++
	w.alive[index] = true
	w.live++
	return NewEntityId(w.generations[index], index)
}

// Despawn removes the entity and all of its components.
// Returns false if the id is stale or was never spawned.
func (w *World) Despawn(id EntityId) bool {
	if !w.Alive(id) {
		return false
	}

	for _, table := range w.tables {
		table.remove(id)
	}

	index := id.Index()
	w.alive[index] = false
	w.free = append(w.free, index)
	w.live--
	return true
}

// Alive reports whether id refers to a live entity.
func (w *World) Alive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(w.generations) {
		return false
	}
	return w.alive[index] && w.generations[index] == id.Generation()
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

// Entities iterates live entities in slot order.
func (w *World) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index, alive := range w.alive {
			if !alive {
				continue
			}
			if !yield(NewEntityId(w.generations[index], uint32(index))) {
				return
			}
		}
	}
}

func (w *World) register(table componentTable) {
	w.tables = append(w.tables, table)
}

// Components yields the table name and a pointer to each component the
// entity carries, in table registration order. Debug tooling uses this to
// inspect entities without knowing their component types.
func (w *World) Components(id EntityId) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if !w.Alive(id) {
			return
		}
		for _, table := range w.tables {
			component, ok := table.lookup(id)
			if !ok {
				continue
			}
			if !yield(table.name(), component) {
				return
			}
		}
	}
}

// ComponentNames lists the tables holding a component for id.
func (w *World) ComponentNames(id EntityId) []string {
	var names []string
	for name := range w.Components(id) {
		names = append(names, name)
	}
	return names
}

// WorldStats is a point-in-time summary of a World, used by debug panels and reports.
type WorldStats struct {
	EntityCount    int
	SingletonCount int
	SingletonTypes []string
	Tables         []TableStats
}

// TableStats describes a single component table.
type TableStats struct {
	Name string
	Len  int
}

// CollectStats gathers entity, table and singleton counts.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount:    w.live,
		SingletonCount: len(w.singletons),
		Tables:         make([]TableStats, 0, len(w.tables)),
	}
	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	for _, table := range w.tables {
		stats.Tables = append(stats.Tables, TableStats{Name: table.name(), Len: table.Len()})
	}
	return stats
}
