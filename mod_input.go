package helio

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeySpace
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	keyCount
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeySpace:  glfw.KeySpace,
	KeyTab:    glfw.KeyTab,
	KeyLeft:   glfw.KeyLeft,
	KeyRight:  glfw.KeyRight,
	KeyUp:     glfw.KeyUp,
	KeyDown:   glfw.KeyDown,
}

var mouseToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}

// Input is the polled input snapshot for the current tick.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	// ScrollY accumulates wheel movement since the previous tick.
	ScrollY float64
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)

	if ws := GetResource[WindowState](app); ws != nil {
		ws.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
			input.ScrollY += yoff
		})
		app.OnShutdown(func() {
			ws.windowGlfw.SetScrollCallback(nil)
		})
	}

	app.UseSystem(
		System(inputSystem).InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input) {
	for key, glfwKey := range keyToGlfw {
		pressed := s.windowGlfw.GetKey(glfwKey) == glfw.Press
		input.JustPressed[key] = pressed && !input.Pressed[key]
		input.JustReleased[key] = !pressed && input.Pressed[key]
		input.Pressed[key] = pressed
	}

	for btn, glfwBtn := range mouseToGlfw {
		pressed := s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press
		input.JustPressed[btn] = pressed && !input.Pressed[btn]
		input.JustReleased[btn] = !pressed && input.Pressed[btn]
		input.Pressed[btn] = pressed
	}

	x, y := s.windowGlfw.GetCursorPos()
	input.MouseDeltaX = x - input.MouseX
	input.MouseDeltaY = y - input.MouseY
	input.MouseX = x
	input.MouseY = y
}

// consumeScroll returns the accumulated wheel movement and resets it.
func (input *Input) consumeScroll() float64 {
	dy := input.ScrollY
	input.ScrollY = 0
	return dy
}
