package helio

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/helio3d/helio/shaders"
)

// meshVertex matches the mesh.wgsl VertexInput.
type meshVertex struct {
	position [3]float32 `helio:"layout" location:"0" format:"float3"`
	normal   [3]float32 `helio:"layout" location:"1" format:"float3"`
	uv       [2]float32 `helio:"layout" location:"2" format:"float2"`
}

// pointCorner is the shared billboard quad, expanded per star instance.
type pointCorner struct {
	corner [2]float32 `helio:"layout" location:"0" format:"float2"`
}

// starInstance matches the instance-stepped attributes of points.wgsl.
type starInstance struct {
	position   [3]float32
	size       float32
	brightness float32
}

type lineVertex struct {
	position [3]float32 `helio:"layout" location:"0" format:"float3"`
}

type cameraUniform struct {
	View mgl32.Mat4
	Proj mgl32.Mat4
	Eye  mgl32.Vec4
}

type modelUniform struct {
	Model mgl32.Mat4
}

type lightUniform struct {
	Direction mgl32.Vec4 // xyz = travel direction of the light
	Color     mgl32.Vec4 // rgb + intensity
	Ambient   mgl32.Vec4 // rgb + intensity
}

type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

type rendererState struct {
	meshPipeline *wgpu.RenderPipeline
	starPipeline *wgpu.RenderPipeline
	linePipeline *wgpu.RenderPipeline

	cameraBuffer    *wgpu.Buffer
	bodyModelBuffer *wgpu.Buffer
	starModelBuffer *wgpu.Buffer
	lightBuffer     *wgpu.Buffer

	meshBindGroup *wgpu.BindGroup
	starBindGroup *wgpu.BindGroup
	lineBindGroup *wgpu.BindGroup

	linearSampler     *wgpu.Sampler
	textureBindGroups map[AssetId]*wgpu.BindGroup // group 1, "" = default white
	gpuMeshes         map[AssetId]*gpuMesh

	quadVertexBuffer   *wgpu.Buffer
	starInstanceBuffer *wgpu.Buffer
	starCount          uint32

	lineVertexBuffer *wgpu.Buffer
	lineVertexCount  uint32

	clearColor wgpu.Color
}

// RendererModule is the forward wgpu renderer: star billboards, then
// shooting-star trails, then the lit textured body, all in one pass with
// back-to-front draw order instead of a depth buffer.
type RendererModule struct{}

func (m RendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, "forward")

	ws := GetResource[WindowState](app)
	if ws == nil {
		panic("RendererModule requires PlatformWindowModule to be installed first")
	}

	gpu := createGpuState(ws)

	rs := &rendererState{
		textureBindGroups: map[AssetId]*wgpu.BindGroup{},
		gpuMeshes:         map[AssetId]*gpuMesh{},
		clearColor:        wgpu.Color{R: 0.004, G: 0.004, B: 0.012, A: 1.0},
	}

	alphaBlend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
	}

	rs.meshPipeline = createRenderPipeline(pipelineSpec{
		name:     "MeshPipeline",
		shader:   shaders.MeshWGSL,
		layouts:  []wgpu.VertexBufferLayout{createVertexBufferLayout(meshVertex{})},
		topology: wgpu.PrimitiveTopologyTriangleList,
		cullMode: wgpu.CullModeBack,
		blend:    nil,
	}, gpu)

	rs.starPipeline = createRenderPipeline(pipelineSpec{
		name:   "StarPipeline",
		shader: shaders.PointsWGSL,
		layouts: []wgpu.VertexBufferLayout{
			createVertexBufferLayout(pointCorner{}),
			{
				ArrayStride: 5 * 4, // vec3 position + size + brightness
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 2},
					{Format: wgpu.VertexFormatFloat32, Offset: 16, ShaderLocation: 3},
				},
			},
		},
		topology: wgpu.PrimitiveTopologyTriangleList,
		cullMode: wgpu.CullModeNone,
		blend:    alphaBlend,
	}, gpu)

	rs.linePipeline = createRenderPipeline(pipelineSpec{
		name:     "LinePipeline",
		shader:   shaders.LinesWGSL,
		layouts:  []wgpu.VertexBufferLayout{createVertexBufferLayout(lineVertex{})},
		topology: wgpu.PrimitiveTopologyLineList,
		cullMode: wgpu.CullModeNone,
		blend:    alphaBlend,
	}, gpu)

	uniformUsage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	rs.cameraBuffer = createBuffer("camera", cameraUniform{View: mgl32.Ident4(), Proj: mgl32.Ident4()}, gpu, uniformUsage)
	rs.bodyModelBuffer = createBuffer("bodyModel", modelUniform{Model: mgl32.Ident4()}, gpu, uniformUsage)
	rs.starModelBuffer = createBuffer("starModel", modelUniform{Model: mgl32.Ident4()}, gpu, uniformUsage)
	rs.lightBuffer = createBuffer("light", defaultLightUniform(), gpu, uniformUsage)

	quad := []pointCorner{
		{corner: [2]float32{-1, -1}},
		{corner: [2]float32{1, -1}},
		{corner: [2]float32{1, 1}},
		{corner: [2]float32{-1, -1}},
		{corner: [2]float32{1, 1}},
		{corner: [2]float32{-1, 1}},
	}
	var err error
	rs.quadVertexBuffer, err = gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "StarQuad",
		Contents: untypedSliceToWgpuBytes(MakeAnySlice(quad)),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(err)
	}

	rs.linearSampler, err = gpu.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}

	rs.meshBindGroup = createBindGroup("MeshUniforms", rs.meshPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: rs.cameraBuffer, Size: wgpu.WholeSize},
		{Binding: 1, Buffer: rs.bodyModelBuffer, Size: wgpu.WholeSize},
		{Binding: 2, Buffer: rs.lightBuffer, Size: wgpu.WholeSize},
	}, gpu.device)

	rs.starBindGroup = createBindGroup("StarUniforms", rs.starPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: rs.cameraBuffer, Size: wgpu.WholeSize},
		{Binding: 1, Buffer: rs.starModelBuffer, Size: wgpu.WholeSize},
	}, gpu.device)

	rs.lineBindGroup = createBindGroup("LineUniforms", rs.linePipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: rs.cameraBuffer, Size: wgpu.WholeSize},
	}, gpu.device)

	// 1x1 white fallback so untextured meshes share the mesh pipeline.
	white := TextureAsset{texels: []uint8{255, 255, 255, 255}, width: 1, height: 1}
	whiteView := createTextureFromAsset(&white, gpu)
	rs.textureBindGroups[""] = createBindGroup("MeshTextureDefault", rs.meshPipeline, 1, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: whiteView, Size: wgpu.WholeSize},
		{Binding: 1, Sampler: rs.linearSampler, Size: wgpu.WholeSize},
	}, gpu.device)

	cmd.AddResources(gpu, rs)

	app.UseSystem(
		System(prepareSceneSystem).InStage(PreRender),
	)
	app.UseSystem(
		System(renderSystem).InStage(Render),
	)
}

func defaultLightUniform() lightUniform {
	return lightUniform{
		Direction: mgl32.Vec4{-1, -0.3, -0.2, 0},
		Color:     mgl32.Vec4{1, 1, 1, 1},
		Ambient:   mgl32.Vec4{1, 1, 1, 0.08},
	}
}

// prepareSceneSystem uploads everything the frame needs: swapchain resize,
// camera and light uniforms, model matrices, and any vertex data whose
// component is marked dirty.
func prepareSceneSystem(ws *WindowState, gpu *GpuState, rs *rendererState, assets *AssetServer, cmd *Commands) {
	if w, h, ok := ws.takeResize(); ok {
		gpu.resize(w, h)
		MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
			cam.SetViewport(w, h)
			return true
		})
	}

	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		uniform := cameraUniform{
			View: cam.ViewMatrix(),
			Proj: cam.ProjMatrix(),
			Eye:  cam.Position.Vec4(1),
		}
		mustWriteBuffer(gpu, rs.cameraBuffer, uniform)
		return false // single camera
	})

	uploadLights(gpu, rs, cmd)

	MakeQuery2[CelestialBodyComponent, TransformComponent](cmd).Map(
		func(eid EntityId, body *CelestialBodyComponent, transform *TransformComponent) bool {
			spin := mgl32.HomogRotate3DY(body.Angle)
			model := transform.ObjectToWorld().Mul4(spin)
			mustWriteBuffer(gpu, rs.bodyModelBuffer, modelUniform{Model: model})
			transform.Dirty = false
			return false
		})

	MakeQuery1[StarFieldComponent](cmd).Map(func(eid EntityId, sf *StarFieldComponent) bool {
		uploadStarField(gpu, rs, sf)
		return false
	})

	MakeQuery1[ShootingStarPoolComponent](cmd).Map(func(eid EntityId, pool *ShootingStarPoolComponent) bool {
		uploadShootingStars(gpu, rs, pool)
		return false
	})

	MakeQuery1[MeshComponent](cmd).Map(func(eid EntityId, mc *MeshComponent) bool {
		ensureGpuMesh(gpu, rs, assets, mc.Mesh)
		ensureTextureBindGroup(gpu, rs, assets, mc.Texture)
		return true
	})
}

// uploadLights folds the scene's lights into the single body light uniform:
// the first directional light and the first ambient light win. A scene with
// no lights at all gets the default sun.
func uploadLights(gpu *GpuState, rs *rendererState, cmd *Commands) {
	uniform := lightUniform{Direction: mgl32.Vec4{-1, -0.3, -0.2, 0}}
	found := false
	MakeQuery1[LightComponent](cmd).Map(func(eid EntityId, light *LightComponent) bool {
		found = true
		rgb := mgl32.Vec4{light.Color[0], light.Color[1], light.Color[2], light.Intensity}
		switch light.Type {
		case LightTypeDirectional:
			uniform.Direction = light.Direction.Vec4(0)
			uniform.Color = rgb
		case LightTypeAmbient:
			uniform.Ambient = rgb
		}
		return true
	})
	if !found {
		uniform = defaultLightUniform()
	}
	mustWriteBuffer(gpu, rs.lightBuffer, uniform)
}

// uploadStarField re-uploads instance data only when the field is dirty;
// the rigid rotation rides the model matrix every frame, so spinning the
// field never touches the instance buffer.
func uploadStarField(gpu *GpuState, rs *rendererState, sf *StarFieldComponent) {
	if sf.Dirty || rs.starInstanceBuffer == nil {
		instances := make([]starInstance, 0, sf.Count())
		for i := 0; i < sf.Count(); i++ {
			instances = append(instances, starInstance{
				position:   [3]float32{sf.Positions[i*3], sf.Positions[i*3+1], sf.Positions[i*3+2]},
				size:       sf.Sizes[i],
				brightness: sf.Brightness[i],
			})
		}
		contents := untypedSliceToWgpuBytes(MakeAnySlice(instances))
		if rs.starInstanceBuffer == nil {
			buf, err := gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
				Label:    "StarInstances",
				Contents: contents,
				Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				panic(err)
			}
			rs.starInstanceBuffer = buf
		} else if len(contents) > 0 {
			if err := gpu.queue.WriteBuffer(rs.starInstanceBuffer, 0, contents); err != nil {
				panic(err)
			}
		}
		rs.starCount = uint32(sf.Count())
		sf.Dirty = false
	}

	mustWriteBuffer(gpu, rs.starModelBuffer, modelUniform{Model: mgl32.HomogRotate3DY(sf.Angle)})
}

func uploadShootingStars(gpu *GpuState, rs *rendererState, pool *ShootingStarPoolComponent) {
	if !pool.Dirty && rs.lineVertexBuffer != nil {
		return
	}
	verts := pool.Vertices()
	contents := wgpu.ToBytes(verts)
	if rs.lineVertexBuffer == nil {
		buf, err := gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "ShootingStarLines",
			Contents: contents,
			Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			panic(err)
		}
		rs.lineVertexBuffer = buf
	} else if len(contents) > 0 {
		if err := gpu.queue.WriteBuffer(rs.lineVertexBuffer, 0, contents); err != nil {
			panic(err)
		}
	}
	rs.lineVertexCount = uint32(len(verts) / 3)
	pool.Dirty = false
}

func ensureGpuMesh(gpu *GpuState, rs *rendererState, assets *AssetServer, meshId AssetId) {
	if _, ok := rs.gpuMeshes[meshId]; ok {
		return
	}
	asset, ok := assets.meshes[meshId]
	if !ok {
		return
	}
	vertexBuf, indexBuf := createVertexIndexBuffers(asset.vertices, asset.indices, gpu.device)
	rs.gpuMeshes[meshId] = &gpuMesh{
		vertexBuffer: vertexBuf,
		indexBuffer:  indexBuf,
		indexCount:   uint32(len(asset.indices)),
	}
}

func ensureTextureBindGroup(gpu *GpuState, rs *rendererState, assets *AssetServer, textureId AssetId) {
	if _, ok := rs.textureBindGroups[textureId]; ok {
		return
	}
	asset, ok := assets.textures[textureId]
	if !ok {
		return
	}
	view := createTextureFromAsset(&asset, gpu)
	rs.textureBindGroups[textureId] = createBindGroup("MeshTexture", rs.meshPipeline, 1, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: view, Size: wgpu.WholeSize},
		{Binding: 1, Sampler: rs.linearSampler, Size: wgpu.WholeSize},
	}, gpu.device)
}

func mustWriteBuffer(gpu *GpuState, buffer *wgpu.Buffer, data any) {
	if err := gpu.queue.WriteBuffer(buffer, 0, toBufferBytes(data)); err != nil {
		panic(err)
	}
}

// renderSystem encodes one frame: stars first, then trails, then the body.
func renderSystem(gpu *GpuState, rs *rendererState, cmd *Commands) {
	nextTexture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()
	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: rs.clearColor,
			},
		},
	})
	defer renderPass.Release()

	if rs.starCount > 0 && rs.starInstanceBuffer != nil {
		renderPass.SetPipeline(rs.starPipeline)
		renderPass.SetBindGroup(0, rs.starBindGroup, nil)
		renderPass.SetVertexBuffer(0, rs.quadVertexBuffer, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(1, rs.starInstanceBuffer, 0, wgpu.WholeSize)
		renderPass.Draw(6, rs.starCount, 0, 0)
	}

	if rs.lineVertexCount > 0 && rs.lineVertexBuffer != nil {
		renderPass.SetPipeline(rs.linePipeline)
		renderPass.SetBindGroup(0, rs.lineBindGroup, nil)
		renderPass.SetVertexBuffer(0, rs.lineVertexBuffer, 0, wgpu.WholeSize)
		renderPass.Draw(rs.lineVertexCount, 1, 0, 0)
	}

	MakeQuery1[MeshComponent](cmd).Map(func(eid EntityId, mc *MeshComponent) bool {
		mesh, ok := rs.gpuMeshes[mc.Mesh]
		if !ok {
			return true
		}
		textureGroup, ok := rs.textureBindGroups[mc.Texture]
		if !ok {
			textureGroup = rs.textureBindGroups[""]
		}
		renderPass.SetPipeline(rs.meshPipeline)
		renderPass.SetBindGroup(0, rs.meshBindGroup, nil)
		renderPass.SetBindGroup(1, textureGroup, nil)
		renderPass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
		return true
	})

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpu.queue.Submit(cmdBuffer)
	gpu.surface.Present()
}
