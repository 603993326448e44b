package ecs_test

import "github.com/plus3/sceneview/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Hidden struct{}

type Score int32

type Counter struct {
	Ticks int
}

type Ping struct {
	Seq int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Hidden](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}
