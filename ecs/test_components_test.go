package ecs_test

// Common test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Name string

type Health struct {
	Current int
	Max     int
}
