package ecs_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/plus3/gearjump/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		generation uint32
		index      uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,index=%d", tt.generation, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.generation, tt.index)
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.index, id.Index())
			assert.False(t, id.IsZero())
		})
	}

	assert.True(t, ecs.EntityId(0).IsZero())
}

func TestWorldSpawnDespawn(t *testing.T) {
	world := ecs.NewWorld()

	a := world.Spawn()
	b := world.Spawn()

	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
	assert.True(t, world.Alive(a))
	assert.True(t, world.Alive(b))
	assert.Equal(t, 2, world.Len())

	assert.True(t, world.Despawn(a))
	assert.False(t, world.Alive(a))
	assert.False(t, world.Despawn(a), "second despawn of the same id")
	assert.Equal(t, 1, world.Len())
}

func TestWorldRecyclesSlotsWithNewGeneration(t *testing.T) {
	world := ecs.NewWorld()

	first := world.Spawn()
	require.True(t, world.Despawn(first))

	second := world.Spawn()
	assert.Equal(t, first.Index(), second.Index())
	assert.Greater(t, second.Generation(), first.Generation())
	assert.False(t, world.Alive(first), "stale id must not resolve to the recycled slot")
	assert.True(t, world.Alive(second))
}

func TestWorldAliveUnknownId(t *testing.T) {
	world := ecs.NewWorld()
	assert.False(t, world.Alive(ecs.NewEntityId(1, 42)))
	assert.False(t, world.Alive(0))
}

func TestWorldDespawnRemovesComponents(t *testing.T) {
	world := ecs.NewWorld()
	positions := ecs.NewTable[Position](world)
	names := ecs.NewTable[Name](world)

	id := world.Spawn()
	positions.Insert(id, Position{X: 1, Y: 2})
	names.Insert(id, "gear")

	require.True(t, world.Despawn(id))
	assert.Nil(t, positions.Get(id))
	assert.False(t, names.Has(id))
	assert.Equal(t, 0, positions.Len())
	assert.Equal(t, 0, names.Len())
}

func TestWorldEntitiesInSlotOrder(t *testing.T) {
	world := ecs.NewWorld()
	a := world.Spawn()
	b := world.Spawn()
	c := world.Spawn()
	world.Despawn(b)

	assert.Equal(t, []ecs.EntityId{a, c}, slices.Collect(world.Entities()))
}

func TestWorldCollectStats(t *testing.T) {
	world := ecs.NewWorld()
	positions := ecs.NewTable[Position](world)
	ecs.NewTable[Velocity](world)
	ecs.NewSingleton(world, Health{Current: 1, Max: 1})

	for range 3 {
		positions.Insert(world.Spawn(), Position{})
	}

	stats := world.CollectStats()
	assert.Equal(t, 3, stats.EntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Health"}, stats.SingletonTypes)
	require.Len(t, stats.Tables, 2)
	assert.Equal(t, "ecs_test.Position", stats.Tables[0].Name)
	assert.Equal(t, 3, stats.Tables[0].Len)
	assert.Equal(t, "ecs_test.Velocity", stats.Tables[1].Name)
	assert.Equal(t, 0, stats.Tables[1].Len)
}

func TestWorldComponents(t *testing.T) {
	world := ecs.NewWorld()
	positions := ecs.NewTable[Position](world)
	names := ecs.NewTable[Name](world)
	ecs.NewTable[Velocity](world)

	id := world.Spawn()
	positions.Insert(id, Position{X: 1, Y: 2})
	names.Insert(id, "gear")

	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Name"}, world.ComponentNames(id))

	for name, component := range world.Components(id) {
		if name == "ecs_test.Position" {
			component.(*Position).X = 10
		}
	}
	assert.Equal(t, 10.0, positions.Get(id).X, "components are yielded by pointer")

	world.Despawn(id)
	assert.Empty(t, world.ComponentNames(id))
}
