// Command planet renders the full celestial scene: a textured, lit sphere
// orbited by a damped camera, a slowly rotating star shell and a pool of
// shooting stars.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/helio3d/helio"
)

func main() {
	configPath := flag.String("config", "", "path to a helio.yaml config file")
	texturePath := flag.String("texture", "", "override the body texture path")
	seed := flag.Int64("seed", 0, "scene seed (0 derives one from the clock)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := helio.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *texturePath != "" {
		cfg.Scene.TexturePath = *texturePath
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *debug {
		cfg.Logging.Debug = true
	}

	helio.NewApp().
		UseModules(
			helio.LoggingModule{Prefix: "planet", Debug: cfg.Logging.Debug},
			helio.TimeModule{},
			helio.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			helio.InputModule{},
			helio.AssetServerModule{},
			helio.CelestialModule{},
			helio.StarFieldModule{},
			helio.ShootingStarModule{},
			helio.OrbitCameraModule{},
			helio.RendererModule{},
			helio.SceneModule{Def: helio.SceneFromConfig(cfg)},
		).
		Run()
}
