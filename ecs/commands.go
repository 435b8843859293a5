package ecs

// Commands provides a buffer for deferred world operations that are executed at the end of a frame.
// This keeps structural changes and cross-entity writes out of system execution.
type Commands struct {
	spawns   []spawnCommand
	despawns []EntityId
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	build func(w *World, id EntityId)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn. build receives the new id to attach components.
func (c *Commands) Spawn(build func(w *World, id EntityId)) {
	c.spawns = append(c.spawns, spawnCommand{build: build})
}

// Despawn queues an entity removal.
func (c *Commands) Despawn(entity EntityId) {
	c.despawns = append(c.despawns, entity)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns) + len(c.defers)
}

// Flush applies all commands to the world in the order despawns, spawns,
// defers, and resets the buffer.
func (c *Commands) Flush(w *World) {
	if w == nil {
		panic("ecs: flushing commands into a nil world")
	}

	for _, id := range c.despawns {
		w.Despawn(id)
	}

	for _, cmd := range c.spawns {
		id := w.Spawn()
		if cmd.build != nil {
			cmd.build(w, id)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.defers = c.defers[:0]
}
