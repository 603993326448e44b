package input

// ButtonInput tracks which buttons of type T are held, and which changed state
// during the current frame. The zero value is ready to use.
type ButtonInput[T comparable] struct {
	pressed      map[T]struct{}
	justPressed  map[T]struct{}
	justReleased map[T]struct{}
}

func (b *ButtonInput[T]) init() {
	if b.pressed == nil {
		b.pressed = make(map[T]struct{})
		b.justPressed = make(map[T]struct{})
		b.justReleased = make(map[T]struct{})
	}
}

// Press registers a press. The button is just-pressed only if it was not
// already held.
func (b *ButtonInput[T]) Press(button T) {
	b.init()
	if _, held := b.pressed[button]; !held {
		b.justPressed[button] = struct{}{}
	}
	b.pressed[button] = struct{}{}
}

// Release registers a release of a held button.
func (b *ButtonInput[T]) Release(button T) {
	b.init()
	if _, held := b.pressed[button]; held {
		delete(b.pressed, button)
		b.justReleased[button] = struct{}{}
	}
}

// ReleaseAll releases every held button.
func (b *ButtonInput[T]) ReleaseAll() {
	for button := range b.pressed {
		b.Release(button)
	}
}

// Pressed reports whether the button is held.
func (b *ButtonInput[T]) Pressed(button T) bool {
	_, ok := b.pressed[button]
	return ok
}

// AnyPressed reports whether any of the buttons is held.
func (b *ButtonInput[T]) AnyPressed(buttons ...T) bool {
	for _, button := range buttons {
		if b.Pressed(button) {
			return true
		}
	}
	return false
}

// JustPressed reports whether the button went down this frame.
func (b *ButtonInput[T]) JustPressed(button T) bool {
	_, ok := b.justPressed[button]
	return ok
}

// JustReleased reports whether the button went up this frame.
func (b *ButtonInput[T]) JustReleased(button T) bool {
	_, ok := b.justReleased[button]
	return ok
}

// Clear forgets this frame's transitions while keeping held buttons held.
func (b *ButtonInput[T]) Clear() {
	clear(b.justPressed)
	clear(b.justReleased)
}

// Reset forgets everything about one button.
func (b *ButtonInput[T]) Reset(button T) {
	delete(b.pressed, button)
	delete(b.justPressed, button)
	delete(b.justReleased, button)
}

// Len returns the number of held buttons.
func (b *ButtonInput[T]) Len() int {
	return len(b.pressed)
}
