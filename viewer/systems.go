package viewer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/input"
	"github.com/plus3/sceneview/scene"
)

var (
	cameraPosition = mgl32.Vec3{0.7, 0.7, 1.0}
	cameraTarget   = mgl32.Vec3{0.0, 0.3, 0.0}
	cameraScale    = mgl32.Vec3{0.1, 0.3, 0.5}
	lightPosition  = mgl32.Vec3{3.0, 5.0, 3.0}
)

// SetupSystem runs once at startup. It requests the model, parents one
// instance under a (possibly scaled) root node, spawns a second unparented
// instance, and places the camera and the rotating light.
type SetupSystem struct {
	Options   ecs.Singleton[Options]
	Assets    ecs.Singleton[scene.AssetServer]
	Spawner   ecs.Singleton[scene.SceneSpawner]
	Secondary ecs.Singleton[SecondaryScene]
	Log       ecs.Singleton[app.Log]
}

func (s *SetupSystem) Execute(frame *ecs.UpdateFrame) {
	opts := s.Options.Get()
	server := s.Assets.Get()

	rootTransform := scene.Identity()
	if opts.RootScale > 0 {
		rootTransform = rootTransform.WithScale(mgl32.Vec3{opts.RootScale, opts.RootScale, opts.RootScale})
	}
	root := frame.Commands.SpawnRef(rootTransform, scene.GlobalIdentity(), scene.Name{Value: "root"})

	parented := server.Load(opts.ScenePath())
	frame.Commands.Spawn(
		scene.Identity(),
		scene.GlobalIdentity(),
		scene.Parent{Ref: root},
		scene.SceneRoot{Handle: parented},
	)

	secondary := server.Load(opts.Model)
	s.Secondary.Get().Id = s.Spawner.Get().Spawn(secondary)

	frame.Commands.Spawn(
		scene.FromTranslation(cameraPosition).LookingAt(cameraTarget, scene.AxisY).WithScale(cameraScale),
		scene.GlobalIdentity(),
		scene.PerspectiveCamera(),
	)

	frame.Commands.Spawn(
		scene.FromTranslation(lightPosition),
		scene.GlobalIdentity(),
		scene.DefaultPointLight(),
		Rotates{},
	)

	s.Log.Get().Info("scene requested",
		"parented", parented.String(),
		"secondary", secondary.String(),
		"root_scale", opts.RootScale)
}

// RotatorSystem spins every Rotates entity about the world Y axis at
// RotationSpeed. The rotation is applied on the left, so translations orbit
// the origin.
type RotatorSystem struct {
	Rotators ecs.Query[struct {
		*scene.Transform
		*Rotates
	}]
}

func (s *RotatorSystem) Execute(frame *ecs.UpdateFrame) {
	rotation := scene.FromRotation(mgl32.QuatRotate(float32(RotationSpeed*frame.DeltaTime), scene.AxisY))
	for r := range s.Rotators.Values() {
		*r.Transform = rotation.Mul(*r.Transform)
	}
}

// MoveSceneEntitiesSystem swings the nodes of the secondary instance along
// sinusoids when motion is enabled.
type MoveSceneEntitiesSystem struct {
	Options   ecs.Singleton[Options]
	Secondary ecs.Singleton[SecondaryScene]
	Time      ecs.Singleton[app.Time]
	Nodes     ecs.Query[struct {
		*scene.Transform
		*scene.SceneNode
	}]
}

func (s *MoveSceneEntitiesSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Options.Get().Motion {
		return
	}
	instance := s.Secondary.Get().Id
	if instance == 0 {
		return
	}

	elapsed := s.Time.Get().Elapsed
	for node := range s.Nodes.Values() {
		if node.Instance != instance {
			continue
		}
		node.Translation = motionOffset(node.Index, elapsed)
	}
}

// motionOffset is the translation of node index at time t. Even nodes swing
// towards +X and odd ones towards -X, with amplitude growing by half a step
// per index.
func motionOffset(index int, t float64) mgl32.Vec3 {
	direction := 1.0
	if index%2 != 0 {
		direction = -1
	}
	scale := 1 + 0.5*float64(index)
	return mgl32.Vec3{
		float32(scale * direction * math.Sin(t) / 20),
		0,
		float32(math.Cos(t) / 20),
	}
}

// KeyboardLogSystem logs every keyboard event once.
type KeyboardLogSystem struct {
	Events  ecs.EventReader[input.KeyboardInput]
	Options ecs.Singleton[Options]
	Log     ecs.Singleton[app.Log]
}

func (s *KeyboardLogSystem) Execute(frame *ecs.UpdateFrame) {
	log := s.Log.Get()
	full := s.Options.Get().LogFullEvents
	for event := range s.Events.Read() {
		if full {
			log.Info("keyboard input",
				"key", event.Key,
				"scan_code", event.ScanCode,
				"state", event.State)
			continue
		}
		log.Info("keyboard input", "key", event.Key)
	}
}

// KeySystem reacts to input state: Space held and left clicks write a
// diagnostic line, Escape asks the app to exit.
type KeySystem struct {
	Keys        ecs.Singleton[input.ButtonInput[input.KeyCode]]
	Mouse       ecs.Singleton[input.ButtonInput[input.MouseButton]]
	Diagnostics ecs.Singleton[Diagnostics]
	Exit        ecs.EventWriter[app.AppExit]
}

func (s *KeySystem) Execute(frame *ecs.UpdateFrame) {
	keys := s.Keys.Get()
	mouse := s.Mouse.Get()
	out := s.Diagnostics.Get().Out

	if keys.Pressed(input.KeySpace) {
		fmt.Fprintln(out, "space is being held down")
	}
	if keys.JustPressed(input.KeyEscape) {
		s.Exit.Send(app.AppExit{})
	}
	if mouse.JustPressed(input.MouseLeft) {
		fmt.Fprintln(out, "a left click just happened")
	}
}
