package ecs

// System represents a behavior that runs once per tick.
// Systems hold the tables and singletons they operate on as fields, and can
// keep custom state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f(frame).
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
