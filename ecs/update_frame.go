package ecs

type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	World     *World
}

func newUpdateFrame(dt float64, tick uint64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  newCommands(),
		World:     world,
	}
}
