package helio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"reflect"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

type AssetId string

// Textures larger than this get downscaled before upload.
const maxTextureDim = 2048

// AnySlice wraps a typed slice so buffer code can move it to the GPU
// without knowing the element type.
type AnySlice struct {
	v reflect.Value
}

func MakeAnySlice(s any) AnySlice {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Slice {
		panic(fmt.Sprintf("expected a slice, got %s", v.Kind()))
	}
	return AnySlice{v: v}
}

func (s AnySlice) Len() int { return s.v.Len() }

func (s AnySlice) ElementSize() int { return int(s.v.Type().Elem().Size()) }

func (s AnySlice) DataPointer() unsafe.Pointer { return s.v.UnsafePointer() }

type AssetServer struct {
	meshes   map[AssetId]MeshAsset
	textures map[AssetId]TextureAsset
}

type Mesh struct {
	assetId AssetId
}

func (m Mesh) Id() AssetId { return m.assetId }

type MeshAsset struct {
	vertices AnySlice
	indices  []uint16
}

type TextureAsset struct {
	texels []uint8 // RGBA8
	width  uint32
	height uint32
}

// MeshComponent attaches a mesh and an optional texture to an entity. An
// empty Texture renders with the renderer's default white texture.
type MeshComponent struct {
	Mesh    AssetId
	Texture AssetId
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(&AssetServer{
		meshes:   make(map[AssetId]MeshAsset),
		textures: make(map[AssetId]TextureAsset),
	})
}

func (server *AssetServer) LoadMesh(vertices AnySlice, indices []uint16) Mesh {
	id := makeAssetId()
	server.meshes[id] = MeshAsset{
		vertices: vertices,
		indices:  indices,
	}
	return Mesh{assetId: id}
}

// CreateTexture registers raw RGBA8 texels.
func (server *AssetServer) CreateTexture(texels []uint8, width uint32, height uint32) AssetId {
	id := makeAssetId()
	server.textures[id] = TextureAsset{
		texels: texels,
		width:  width,
		height: height,
	}
	return id
}

// LoadTexture decodes a PNG or JPEG file into an RGBA texture, downscaling
// anything above maxTextureDim. A failed load returns an error rather than
// panicking; callers degrade to untextured rendering.
func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("open texture %s: %w", filename, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode texture %s: %w", filename, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxTextureDim || h > maxTextureDim {
		scale := float64(maxTextureDim) / float64(max(w, h))
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)

	return server.CreateTexture(rgba.Pix, uint32(w), uint32(h)), nil
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
