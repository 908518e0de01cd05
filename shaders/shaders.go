package shaders

import (
	_ "embed"
)

//go:embed mesh.wgsl
var MeshWGSL string

//go:embed points.wgsl
var PointsWGSL string

//go:embed lines.wgsl
var LinesWGSL string
