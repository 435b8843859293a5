package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

const (
	tableBlockSize = 64
)

// Table stores components of a single type `T` for entities of a World.
// Components live in fixed-size blocks so pointers returned by Get and Insert
// stay valid until the component is removed or the table is compacted.
type Table[T any] struct {
	world     *World
	typeName  string
	blocks    [][tableBlockSize]T
	owners    [][tableBlockSize]EntityId
	freeSlots []int
	nextIndex int
	slots     *intmap.Map[EntityId, int]
}

// NewTable creates a table for component type T and registers it with the
// world so despawned entities lose their T component.
func NewTable[T any](w *World) *Table[T] {
	t := &Table[T]{
		world:    w,
		typeName: reflect.TypeFor[T]().String(),
		slots:    intmap.New[EntityId, int](64),
	}
	w.register(t)
	return t
}

// Insert attaches value to the entity, replacing any existing T.
// Returns nil if the entity is not alive.
func (t *Table[T]) Insert(id EntityId, value T) *T {
	if !t.world.Alive(id) {
		return nil
	}

	if slot, ok := t.slots.Get(id); ok {
		ptr := t.at(slot)
		*ptr = value
		return ptr
	}

	var slot int
	if n := len(t.freeSlots); n > 0 {
		slot = t.freeSlots[n-1]
		t.freeSlots = t.freeSlots[:n-1]
	} else {
		slot = t.nextIndex
		t.nextIndex++
		if slot/tableBlockSize >= len(t.blocks) {
			t.blocks = append(t.blocks, [tableBlockSize]T{})
			t.owners = append(t.owners, [tableBlockSize]EntityId{})
		}
	}

	t.owners[slot/tableBlockSize][slot%tableBlockSize] = id
	t.slots.Put(id, slot)

	ptr := t.at(slot)
	*ptr = value
	return ptr
}

// Get returns a pointer to the entity's component, or nil if it has none.
func (t *Table[T]) Get(id EntityId) *T {
	slot, ok := t.slots.Get(id)
	if !ok {
		return nil
	}
	return t.at(slot)
}

// Has reports whether the entity has a T component.
func (t *Table[T]) Has(id EntityId) bool {
	_, ok := t.slots.Get(id)
	return ok
}

// Remove detaches the entity's component. Returns false if there was none.
func (t *Table[T]) Remove(id EntityId) bool {
	return t.remove(id)
}

func (t *Table[T]) remove(id EntityId) bool {
	slot, ok := t.slots.Get(id)
	if !ok {
		return false
	}
	t.slots.Del(id)

	var zero T
	*t.at(slot) = zero
	t.owners[slot/tableBlockSize][slot%tableBlockSize] = 0
	t.freeSlots = append(t.freeSlots, slot)
	return true
}

func (t *Table[T]) lookup(id EntityId) (any, bool) {
	ptr := t.Get(id)
	return ptr, ptr != nil
}

func (t *Table[T]) name() string {
	return t.typeName
}

// Len returns the number of stored components.
func (t *Table[T]) Len() int {
	return t.slots.Len()
}

// Iter yields entities and their components in slot order.
// Structural changes during iteration should go through Commands.
func (t *Table[T]) Iter() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for slot := 0; slot < t.nextIndex; slot++ {
			owner := t.owners[slot/tableBlockSize][slot%tableBlockSize]
			if owner == 0 {
				continue
			}
			if !yield(owner, t.at(slot)) {
				return
			}
		}
	}
}

// Compact moves components into the lowest slots, preserving their relative order.
func (t *Table[T]) Compact() {
	total := t.slots.Len()
	numBlocks := (total + tableBlockSize - 1) / tableBlockSize
	newBlocks := make([][tableBlockSize]T, numBlocks)
	newOwners := make([][tableBlockSize]EntityId, numBlocks)

	writePos := 0
	for slot := 0; slot < t.nextIndex; slot++ {
		owner := t.owners[slot/tableBlockSize][slot%tableBlockSize]
		if owner == 0 {
			continue
		}
		newBlocks[writePos/tableBlockSize][writePos%tableBlockSize] = *t.at(slot)
		newOwners[writePos/tableBlockSize][writePos%tableBlockSize] = owner
		t.slots.Put(owner, writePos)
		writePos++
	}

	t.blocks = newBlocks
	t.owners = newOwners
	t.freeSlots = nil
	t.nextIndex = writePos
}

func (t *Table[T]) at(slot int) *T {
	return &t.blocks[slot/tableBlockSize][slot%tableBlockSize]
}
