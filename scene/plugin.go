package scene

import (
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
)

// Plugin registers the scene components and singletons, and adds instancing
// and transform propagation to PostUpdate. Assets must be set.
type Plugin struct {
	Assets *assets.Server
}

func (p Plugin) Build(a *app.App) {
	if p.Assets == nil {
		panic("scene: Plugin.Assets is nil")
	}

	app.RegisterComponent[Transform](a)
	app.RegisterComponent[GlobalTransform](a)
	app.RegisterComponent[Parent](a)
	app.RegisterComponent[Name](a)
	app.RegisterComponent[Camera](a)
	app.RegisterComponent[PointLight](a)
	app.RegisterComponent[SceneRoot](a)
	app.RegisterComponent[SceneInstance](a)
	app.RegisterComponent[SceneNode](a)

	a.InsertSingleton(AssetServer{Server: p.Assets})
	a.InsertSingleton(SceneSpawner{})
	a.InsertSingleton(AmbientLight{Color: White, Brightness: 0.2})
	a.InsertSingleton(ClearColor{Color: Color{0.1, 0.1, 0.1}})

	a.AddSystem(app.PostUpdate, &SceneSpawnSystem{})
	a.AddSystem(app.PostUpdate, &PropagateTransformsSystem{})
}
