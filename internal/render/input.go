package render

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"bascule/internal/scene"
)

// Camera control rates, per second of held key.
const (
	RotateSpeed = 1.2
	ZoomSpeed   = 18.0
	SlideSpeed  = 12.0
	PitchSpeed  = 1.0

	DragSensitivity = 0.005
	WheelZoomStep   = 2.5

	// A press and release closer than this (Manhattan, in window pixels)
	// is a click rather than a drag.
	ClickSlop = 4.0
)

// applyCameraKeys moves the camera for every held key.
func applyCameraKeys(cam *scene.Camera, down func(glfw.Key) bool, dt float64) {
	if down(glfw.KeyLeft) {
		cam.Rotate(-RotateSpeed*dt, 0)
	}
	if down(glfw.KeyRight) {
		cam.Rotate(RotateSpeed*dt, 0)
	}
	if down(glfw.KeyUp) {
		cam.Zoom(-ZoomSpeed * dt)
	}
	if down(glfw.KeyDown) {
		cam.Zoom(ZoomSpeed * dt)
	}
	if down(glfw.KeyA) {
		cam.Slide(-SlideSpeed * dt)
	}
	if down(glfw.KeyD) {
		cam.Slide(SlideSpeed * dt)
	}
	if down(glfw.KeyW) {
		cam.Rotate(0, PitchSpeed*dt)
	}
	if down(glfw.KeyS) {
		cam.Rotate(0, -PitchSpeed*dt)
	}
}

// pointer tracks the left button between press and release.
type pointer struct {
	down         bool
	lastX, lastY float64
	pressX       float64
	pressY       float64
}

func (p *pointer) press(x, y float64) {
	p.down = true
	p.lastX, p.lastY = x, y
	p.pressX, p.pressY = x, y
}

// move returns the drag delta since the previous position.
func (p *pointer) move(x, y float64) (dx, dy float64, dragging bool) {
	if !p.down {
		return 0, 0, false
	}
	dx, dy = x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	return dx, dy, true
}

// release reports whether the press/release pair counts as a click.
func (p *pointer) release(x, y float64) bool {
	if !p.down {
		return false
	}
	p.down = false
	return math.Abs(x-p.pressX)+math.Abs(y-p.pressY) <= ClickSlop
}

// Input routes glfw state to the scene. Keys are polled each frame; mouse
// buttons, motion and wheel arrive through callbacks.
type Input struct {
	scene    *scene.Scene
	prevKeys map[glfw.Key]bool
	ptr      pointer
}

func NewInput(s *scene.Scene) *Input {
	return &Input{
		scene:    s,
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Bind installs the mouse callbacks on window.
func (in *Input) Bind(window *glfw.Window) {
	window.SetMouseButtonCallback(func(w *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if btn != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		switch action {
		case glfw.Press:
			in.ptr.press(x, y)
		case glfw.Release:
			if in.ptr.release(x, y) {
				ww, wh := w.GetSize()
				in.scene.HandleClick(x, y, ww, wh)
			}
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if dx, dy, ok := in.ptr.move(x, y); ok {
			in.scene.Camera().Rotate(dx*DragSensitivity, -dy*DragSensitivity)
		}
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.scene.Camera().Zoom(-yoff * WheelZoomStep)
	})
}

// Poll applies held keys and the night trigger for this frame.
func (in *Input) Poll(window *glfw.Window, dt float64) {
	if in.JustPressed(window, glfw.KeySpace) && in.scene.CanTrigger() {
		in.scene.Trigger()
	}
	applyCameraKeys(in.scene.Camera(), func(k glfw.Key) bool {
		return window.GetKey(k) == glfw.Press
	}, dt)
}
