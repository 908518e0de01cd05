// Command sphere is the minimal variant: an untextured sphere with a faster
// spin, the same star shell, and no shooting stars.
package main

import (
	"flag"

	"github.com/helio3d/helio"
)

func main() {
	seed := flag.Int64("seed", 0, "scene seed (0 derives one from the clock)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	scene := helio.SceneDef{
		Seed: *seed,
		Body: &helio.CelestialBodyDef{
			Radius:   10,
			SpinRate: 0.005,
			Segments: 48,
			Rings:    32,
		},
		StarField: &helio.StarFieldDef{
			Count:    3000,
			SpinRate: 0.0002,
		},
		Lights: []helio.LightDef{
			{Type: helio.LightTypeAmbient, Color: [3]float32{1, 1, 1}, Intensity: 1},
		},
		CameraDistance: 30,
	}

	helio.NewApp().
		UseModules(
			helio.LoggingModule{Prefix: "sphere", Debug: *debug},
			helio.TimeModule{},
			helio.NewPlatformWindow(1024, 768, "Sphere"),
			helio.InputModule{},
			helio.AssetServerModule{},
			helio.CelestialModule{},
			helio.StarFieldModule{},
			helio.OrbitCameraModule{},
			helio.RendererModule{},
			helio.SceneModule{Def: scene},
		).
		Run()
}
