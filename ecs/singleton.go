package ecs

import "reflect"

// Singleton provides access to a single value that is not associated with
// any entity. Use this for session-wide state such as the speed governor or
// queued input.
type Singleton[T any] struct {
	value *T
}

// NewSingleton returns an accessor for the world's T singleton.
// If the singleton doesn't exist yet it is created from the initializer,
// or the zero value when none is given. Every accessor for the same type
// shares the same underlying value.
func NewSingleton[T any](w *World, initializer ...T) *Singleton[T] {
	key := reflect.TypeFor[T]()

	if existing, ok := w.singletons[key]; ok {
		return &Singleton[T]{value: existing.(*T)}
	}

	value := new(T)
	if len(initializer) > 0 {
		*value = initializer[0]
	}
	w.singletons[key] = value

	return &Singleton[T]{value: value}
}

// Get returns a pointer to the singleton value.
func (s *Singleton[T]) Get() *T {
	return s.value
}

// ReadSingleton looks up the T singleton without creating it.
func ReadSingleton[T any](w *World) (*T, bool) {
	existing, ok := w.singletons[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return existing.(*T), true
}

// RemoveSingleton drops the T singleton. Accessors created earlier keep
// pointing at the old value.
func RemoveSingleton[T any](w *World) bool {
	key := reflect.TypeFor[T]()
	if _, ok := w.singletons[key]; !ok {
		return false
	}
	delete(w.singletons, key)
	return true
}
