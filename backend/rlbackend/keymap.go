package rlbackend

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/input"
)

type keyBinding struct {
	raylib int32
	key    input.KeyCode
}

var keyBindings = []keyBinding{
	{rl.KeyA, input.KeyA}, {rl.KeyB, input.KeyB}, {rl.KeyC, input.KeyC},
	{rl.KeyD, input.KeyD}, {rl.KeyE, input.KeyE}, {rl.KeyF, input.KeyF},
	{rl.KeyG, input.KeyG}, {rl.KeyH, input.KeyH}, {rl.KeyI, input.KeyI},
	{rl.KeyJ, input.KeyJ}, {rl.KeyK, input.KeyK}, {rl.KeyL, input.KeyL},
	{rl.KeyM, input.KeyM}, {rl.KeyN, input.KeyN}, {rl.KeyO, input.KeyO},
	{rl.KeyP, input.KeyP}, {rl.KeyQ, input.KeyQ}, {rl.KeyR, input.KeyR},
	{rl.KeyS, input.KeyS}, {rl.KeyT, input.KeyT}, {rl.KeyU, input.KeyU},
	{rl.KeyV, input.KeyV}, {rl.KeyW, input.KeyW}, {rl.KeyX, input.KeyX},
	{rl.KeyY, input.KeyY}, {rl.KeyZ, input.KeyZ},

	{rl.KeyZero, input.Key0}, {rl.KeyOne, input.Key1}, {rl.KeyTwo, input.Key2},
	{rl.KeyThree, input.Key3}, {rl.KeyFour, input.Key4}, {rl.KeyFive, input.Key5},
	{rl.KeySix, input.Key6}, {rl.KeySeven, input.Key7}, {rl.KeyEight, input.Key8},
	{rl.KeyNine, input.Key9},

	{rl.KeySpace, input.KeySpace},
	{rl.KeyEscape, input.KeyEscape},
	{rl.KeyEnter, input.KeyEnter},
	{rl.KeyTab, input.KeyTab},
	{rl.KeyBackspace, input.KeyBackspace},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyUp, input.KeyUp},
	{rl.KeyDown, input.KeyDown},
	{rl.KeyLeftShift, input.KeyLeftShift},
	{rl.KeyRightShift, input.KeyRightShift},
	{rl.KeyLeftControl, input.KeyLeftControl},
	{rl.KeyRightControl, input.KeyRightControl},
	{rl.KeyLeftAlt, input.KeyLeftAlt},
	{rl.KeyRightAlt, input.KeyRightAlt},

	{rl.KeyF1, input.KeyF1}, {rl.KeyF2, input.KeyF2}, {rl.KeyF3, input.KeyF3},
	{rl.KeyF4, input.KeyF4}, {rl.KeyF5, input.KeyF5}, {rl.KeyF6, input.KeyF6},
	{rl.KeyF7, input.KeyF7}, {rl.KeyF8, input.KeyF8}, {rl.KeyF9, input.KeyF9},
	{rl.KeyF10, input.KeyF10}, {rl.KeyF11, input.KeyF11}, {rl.KeyF12, input.KeyF12},
}

type mouseBinding struct {
	raylib rl.MouseButton
	button input.MouseButton
}

var mouseBindings = []mouseBinding{
	{rl.MouseButtonLeft, input.MouseLeft},
	{rl.MouseButtonRight, input.MouseRight},
	{rl.MouseButtonMiddle, input.MouseMiddle},
}

// pollInput turns raylib's edge-triggered key and button state into events.
// The raylib key value doubles as the scan code.
func pollInput(keyboard *ecs.Events[input.KeyboardInput], mouse *ecs.Events[input.MouseButtonInput]) {
	for _, binding := range keyBindings {
		switch {
		case rl.IsKeyPressed(binding.raylib):
			keyboard.Send(input.KeyboardInput{Key: binding.key, ScanCode: uint32(binding.raylib), State: input.Pressed})
		case rl.IsKeyReleased(binding.raylib):
			keyboard.Send(input.KeyboardInput{Key: binding.key, ScanCode: uint32(binding.raylib), State: input.Released})
		}
	}

	for _, binding := range mouseBindings {
		switch {
		case rl.IsMouseButtonPressed(binding.raylib):
			mouse.Send(input.MouseButtonInput{Button: binding.button, State: input.Pressed})
		case rl.IsMouseButtonReleased(binding.raylib):
			mouse.Send(input.MouseButtonInput{Button: binding.button, State: input.Released})
		}
	}
}
