package input

import (
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/ecs"
)

// KeyboardInputSystem rebuilds the keyboard state from this frame's events.
type KeyboardInputSystem struct {
	Events ecs.EventReader[KeyboardInput]
	Keys   ecs.Singleton[ButtonInput[KeyCode]]
}

func (s *KeyboardInputSystem) Execute(frame *ecs.UpdateFrame) {
	keys := s.Keys.Get()
	keys.Clear()
	for event := range s.Events.Read() {
		switch event.State {
		case Pressed:
			keys.Press(event.Key)
		case Released:
			keys.Release(event.Key)
		}
	}
}

// MouseButtonInputSystem rebuilds the mouse button state from this frame's events.
type MouseButtonInputSystem struct {
	Events  ecs.EventReader[MouseButtonInput]
	Buttons ecs.Singleton[ButtonInput[MouseButton]]
}

func (s *MouseButtonInputSystem) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Buttons.Get()
	buttons.Clear()
	for event := range s.Events.Read() {
		switch event.State {
		case Pressed:
			buttons.Press(event.Button)
		case Released:
			buttons.Release(event.Button)
		}
	}
}

// Plugin installs the input singletons, event queues and the PreUpdate systems
// that keep them in sync.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	storage := a.Storage()
	a.InsertSingleton(ButtonInput[KeyCode]{})
	a.InsertSingleton(ButtonInput[MouseButton]{})
	ecs.AddEvents[KeyboardInput](storage)
	ecs.AddEvents[MouseButtonInput](storage)

	a.AddSystem(app.PreUpdate, &KeyboardInputSystem{})
	a.AddSystem(app.PreUpdate, &MouseButtonInputSystem{})
}
