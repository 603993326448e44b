package input_test

import (
	"testing"

	"github.com/plus3/sceneview/input"
	"github.com/stretchr/testify/assert"
)

func TestButtonInputTransitions(t *testing.T) {
	var keys input.ButtonInput[input.KeyCode]
	assert.False(t, keys.Pressed(input.KeySpace))

	keys.Press(input.KeySpace)
	assert.True(t, keys.Pressed(input.KeySpace))
	assert.True(t, keys.JustPressed(input.KeySpace))

	keys.Clear()
	assert.True(t, keys.Pressed(input.KeySpace), "held across frames")
	assert.False(t, keys.JustPressed(input.KeySpace))

	// A repeated press of a held key is not a new transition.
	keys.Press(input.KeySpace)
	assert.False(t, keys.JustPressed(input.KeySpace))

	keys.Release(input.KeySpace)
	assert.False(t, keys.Pressed(input.KeySpace))
	assert.True(t, keys.JustReleased(input.KeySpace))
}

func TestButtonInputReleaseUnheld(t *testing.T) {
	var buttons input.ButtonInput[input.MouseButton]
	buttons.Release(input.MouseLeft)
	assert.False(t, buttons.JustReleased(input.MouseLeft))
}

func TestButtonInputBulk(t *testing.T) {
	var keys input.ButtonInput[input.KeyCode]
	keys.Press(input.KeyA)
	keys.Press(input.KeyB)
	assert.Equal(t, 2, keys.Len())
	assert.True(t, keys.AnyPressed(input.KeyEscape, input.KeyB))
	assert.False(t, keys.AnyPressed(input.KeyEscape))

	keys.Reset(input.KeyA)
	assert.False(t, keys.Pressed(input.KeyA))
	assert.False(t, keys.JustPressed(input.KeyA))

	keys.ReleaseAll()
	assert.Equal(t, 0, keys.Len())
	assert.True(t, keys.JustReleased(input.KeyB))
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "KeySpace", input.KeySpace.String())
	assert.Equal(t, "MouseLeft", input.MouseLeft.String())
	assert.Equal(t, "Released", input.Released.String())
}
