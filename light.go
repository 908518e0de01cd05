package helio

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeAmbient     LightType = 2
)

// LightComponent is the ECS component for lights. The renderer folds the
// first directional light and the first ambient light into the body shader;
// point lights use the entity's TransformComponent for position.
type LightComponent struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	Direction mgl32.Vec3 // directional only, need not be normalized
}
