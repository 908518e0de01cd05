package helio

import (
	"math"
)

// CreateSphereMesh builds a UV sphere: rings+1 latitude rows of segments+1
// vertices each (the seam column is duplicated for clean texture wrapping).
func (server *AssetServer) CreateSphereMesh(radius float32, segments, rings int) Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]meshVertex, 0, (rings+1)*(segments+1))
	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			nx := float32(sinPhi * math.Cos(theta))
			ny := float32(cosPhi)
			nz := float32(sinPhi * math.Sin(theta))

			vertices = append(vertices, meshVertex{
				position: [3]float32{nx * radius, ny * radius, nz * radius},
				normal:   [3]float32{nx, ny, nz},
				uv: [2]float32{
					float32(seg) / float32(segments),
					float32(ring) / float32(rings),
				},
			})
		}
	}

	indices := make([]uint16, 0, rings*segments*6)
	stride := segments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint16(ring*stride + seg)
			b := uint16((ring+1)*stride + seg)
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return server.LoadMesh(MakeAnySlice(vertices), indices)
}
