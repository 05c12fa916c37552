package render

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"bascule/internal/scene"
)

// MaxFrameStep caps the wall-clock delta handed to the scene.
const MaxFrameStep = 0.05

// RunDesktop opens the window and drives s until the window closes or Esc
// is pressed. Window and GL failures are fatal.
func RunDesktop(s *scene.Scene, cfg WindowConfig, textureSeed uint64, log zerolog.Logger) {
	runtime.LockOSThread()

	window, err := initWindow(cfg)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("window ready")

	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	rend.Upload(s.Library())
	rend.UploadTextures(textureSeed)

	input := NewInput(s)
	input.Bind(window)

	last := glfw.GetTime()
	fpsStart, frames := last, 0
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxFrameStep {
			dt = MaxFrameStep
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		input.Poll(window, dt)
		s.Tick(dt)

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.Draw(s.Frame(float64(fbW)/float64(fbH)), fbW, fbH)
		window.SwapBuffers()

		frames++
		if now-fpsStart >= 1 {
			window.SetTitle(fmt.Sprintf("%s - %d fps", cfg.Title, frames))
			fpsStart, frames = now, 0
		}
	}
	log.Info().Msg("window closed")
}
