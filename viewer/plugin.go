package viewer

import (
	"io"
	"os"

	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/input"
	"github.com/plus3/sceneview/scene"
)

// Plugin installs the viewer on an app, together with the input and scene
// plugins it depends on.
type Plugin struct {
	Options Options
	Assets  *assets.Server
	// Diagnostics receives the held-Space and left-click lines. Nil means stderr.
	Diagnostics io.Writer
}

func (p Plugin) Build(a *app.App) {
	a.AddPlugin(input.Plugin{})
	a.AddPlugin(scene.Plugin{Assets: p.Assets})

	app.RegisterComponent[Rotates](a)

	out := p.Diagnostics
	if out == nil {
		out = os.Stderr
	}
	ambient := p.Options.Ambient
	a.InsertSingleton(p.Options)
	a.InsertSingleton(Diagnostics{Out: out})
	a.InsertSingleton(SecondaryScene{})
	a.InsertSingleton(scene.AmbientLight{
		Color:      scene.Color{R: ambient.Color[0], G: ambient.Color[1], B: ambient.Color[2]},
		Brightness: ambient.Brightness,
	})

	a.AddStartupSystem(&SetupSystem{})
	a.AddSystem(app.Update, &RotatorSystem{})
	a.AddSystem(app.Update, &MoveSceneEntitiesSystem{})
	a.AddSystem(app.Update, &KeyboardLogSystem{})
	a.AddSystem(app.Update, &KeySystem{})
}
