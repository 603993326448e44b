// Package input turns backend key and mouse events into per-frame button state.
package input

//go:generate go tool stringer -type=KeyCode,MouseButton,ButtonState -output=input_string.go

// KeyCode identifies a physical key independent of the window backend.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ButtonState is carried by input events.
type ButtonState int

const (
	Pressed ButtonState = iota
	Released
)

// KeyboardInput is sent once per key transition.
type KeyboardInput struct {
	Key KeyCode
	// ScanCode is the backend's own key identifier.
	ScanCode uint32
	State    ButtonState
}

// MouseButtonInput is sent once per mouse button transition.
type MouseButtonInput struct {
	Button MouseButton
	State  ButtonState
}
