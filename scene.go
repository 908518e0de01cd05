package helio

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef describes a celestial scene declaratively. Nil sections are
// simply absent from the loaded scene, so a bare variant can drop the
// texture, the lights or the shooting stars without touching the loader.
type SceneDef struct {
	Seed int64 // 0 derives the seed from the clock

	Body          *CelestialBodyDef
	StarField     *StarFieldDef
	ShootingStars *ShootingStarDef
	Lights        []LightDef

	CameraDistance float32
}

type CelestialBodyDef struct {
	Radius      float32
	SpinRate    float32
	TexturePath string
	Segments    int
	Rings       int
}

type StarFieldDef struct {
	Count    int
	SpinRate float32
}

type ShootingStarDef struct {
	Count int
}

type LightDef struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	Direction mgl32.Vec3
}

// DefaultLights is a sun-like directional light plus a dim ambient fill.
func DefaultLights() []LightDef {
	return []LightDef{
		{
			Type:      LightTypeDirectional,
			Color:     [3]float32{1, 0.98, 0.92},
			Intensity: 1,
			Direction: mgl32.Vec3{-1, -0.3, -0.2},
		},
		{
			Type:      LightTypeAmbient,
			Color:     [3]float32{1, 1, 1},
			Intensity: 0.08,
		},
	}
}

// SceneFromConfig builds the standard celestial scene from configuration.
func SceneFromConfig(cfg *Config) SceneDef {
	return SceneDef{
		Seed: cfg.Scene.Seed,
		Body: &CelestialBodyDef{
			Radius:      cfg.Scene.BodyRadius,
			SpinRate:    cfg.Scene.BodySpinRate,
			TexturePath: cfg.Scene.TexturePath,
			Segments:    48,
			Rings:       32,
		},
		StarField: &StarFieldDef{
			Count:    cfg.Scene.StarCount,
			SpinRate: cfg.Scene.StarFieldSpinRate,
		},
		ShootingStars: &ShootingStarDef{
			Count: cfg.Scene.ShootingStarCount,
		},
		Lights:         DefaultLights(),
		CameraDistance: cfg.Scene.CameraDistance,
	}
}

// SceneModule spawns the entities described by Def. Install it after
// AssetServerModule and PlatformWindowModule so the loader can build meshes
// and size the camera to the window.
type SceneModule struct {
	Def SceneDef
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	assets := GetResource[AssetServer](app)
	if assets == nil {
		panic("SceneModule requires AssetServerModule to be installed first")
	}
	ws := GetResource[WindowState](app)
	if ws == nil {
		panic("SceneModule requires PlatformWindowModule to be installed first")
	}
	LoadScene(cmd, assets, ws, app.Logger(), m.Def)
}

// LoadScene spawns the camera, body, star field, shooting stars and lights
// for def. A texture that fails to load degrades to an untextured body
// rather than aborting the scene.
func LoadScene(cmd *Commands, assets *AssetServer, ws *WindowState, log Logger, def SceneDef) {
	seed := def.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sampler := NewShellSampler(seed)

	distance := def.CameraDistance
	if distance <= 0 {
		distance = 30
	}
	cmd.AddEntity(
		NewCamera(ws.WindowWidth, ws.WindowHeight),
		NewOrbitCamera(distance),
	)

	if def.Body != nil {
		var textureId AssetId
		if def.Body.TexturePath != "" {
			id, err := assets.LoadTexture(def.Body.TexturePath)
			if err != nil {
				log.Warnf("texture unavailable, rendering untextured: %v", err)
			} else {
				textureId = id
			}
		}
		mesh := assets.CreateSphereMesh(def.Body.Radius, def.Body.Segments, def.Body.Rings)
		cmd.AddEntity(
			CelestialBodyComponent{
				Radius:   def.Body.Radius,
				SpinRate: def.Body.SpinRate,
			},
			NewTransform(),
			MeshComponent{Mesh: mesh.Id(), Texture: textureId},
		)
	}

	if def.StarField != nil {
		cmd.AddEntity(GenerateStarField(sampler, def.StarField.Count, def.StarField.SpinRate))
	}

	if def.ShootingStars != nil {
		cmd.AddEntity(NewShootingStarPool(sampler, def.ShootingStars.Count))
	}

	for _, light := range def.Lights {
		cmd.AddEntity(LightComponent{
			Type:      light.Type,
			Color:     light.Color,
			Intensity: light.Intensity,
			Direction: light.Direction,
		})
	}
}
