package helio

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single shared GLFW window. Resize events land in
// pendingWidth/pendingHeight from the GLFW callback and are applied by the
// renderer at the start of the next frame, so a resize can never interleave
// with an in-progress pass.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	pendingWidth  int
	pendingHeight int
	resized       bool
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context, wgpu owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

// takeResize reports and consumes a pending resize. Duplicate events with
// the current dimensions are dropped here, which keeps the downstream
// surface/camera updates idempotent.
func (ws *WindowState) takeResize() (int, int, bool) {
	if !ws.resized {
		return 0, 0, false
	}
	ws.resized = false
	if ws.pendingWidth == ws.WindowWidth && ws.pendingHeight == ws.WindowHeight {
		return 0, 0, false
	}
	ws.WindowWidth = ws.pendingWidth
	ws.WindowHeight = ws.pendingHeight
	return ws.WindowWidth, ws.WindowHeight, true
}

// PlatformWindowModule provides the shared WindowState resource. Install is
// idempotent: an existing WindowState is reused so only one window ever
// exists.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Helio"
	}
	return &PlatformWindowModule{Width: width, Height: height, Title: title}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if GetResource[WindowState](app) != nil {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	ws.windowGlfw.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.pendingWidth = width
		ws.pendingHeight = height
		ws.resized = true
	})
	app.addResources(ws)

	app.UseSystem(
		System(windowEventsSystem).InStage(Prelude),
	)

	// Deregister callbacks before the window goes away, then tear GLFW down.
	app.OnShutdown(func() {
		ws.windowGlfw.SetFramebufferSizeCallback(nil)
		ws.windowGlfw.Destroy()
		glfw.Terminate()
	})
}

func windowEventsSystem(s *WindowState, cmd *Commands) {
	glfw.PollEvents()
	if s.windowGlfw.ShouldClose() {
		cmd.Quit()
	}
}
