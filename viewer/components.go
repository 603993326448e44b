package viewer

import (
	"io"
	"math"

	"github.com/plus3/sceneview/scene"
)

// RotationSpeed is the angular velocity of Rotates entities, in radians per second.
const RotationSpeed = 4 * math.Pi / 20

// Rotates marks entities that spin about the world Y axis.
type Rotates struct{}

// SecondaryScene remembers the unparented scene instance so the motion system
// can find its nodes. Id is zero until setup has run.
type SecondaryScene struct {
	Id scene.InstanceId
}

// Diagnostics is where the plain diagnostic lines for held Space and left
// clicks are written.
type Diagnostics struct {
	Out io.Writer
}
