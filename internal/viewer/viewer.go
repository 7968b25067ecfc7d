package viewer

import (
	"context"
	"fmt"
	"runtime"

	"Cinematic3D/internal/engine"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Background matches the dark scenes the sequences were authored in.
var Background = [3]float32{0.067, 0.067, 0.067}

var boundsColor = mgl32.Vec3{0.2, 0.8, 0.4}

// Window is a preview of the engine's camera, driven by the glfw clock.
// It must be created and run on the main goroutine.
type Window struct {
	engine *engine.Engine
	window *glfw.Window
	boxes  *renderer.BoxRenderer
	title  string
}

func Open(e *engine.Engine, title string) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(e.Width), int(e.Height), title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(Background[0], Background[1], Background[2], 1)

	boxes, err := renderer.NewBoxRenderer()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	logger.Log.Info("Window open",
		zap.Int32("width", e.Width),
		zap.Int32("height", e.Height),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return &Window{engine: e, window: window, boxes: boxes, title: title}, nil
}

// Run ticks the engine once per displayed frame with the real time elapsed
// since the last one, until the window closes or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	last := glfw.GetTime()
	shown := last
	frames := 0

	for !w.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := glfw.GetTime()
		dt := now - last
		last = now

		width, height := w.window.GetFramebufferSize()
		if int32(width) != w.engine.Width || int32(height) != w.engine.Height {
			w.engine.Resize(int32(width), int32(height))
			gl.Viewport(0, 0, int32(width), int32(height))
		}

		w.engine.Tick(dt)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		w.boxes.Draw(w.engine.Camera, w.bounds())
		w.window.SwapBuffers()
		glfw.PollEvents()

		frames++
		if now-shown >= 1 {
			w.window.SetTitle(w.status(float64(frames) / (now - shown)))
			shown, frames = now, 0
		}
	}
	return nil
}

func (w *Window) status(fps float64) string {
	p := pose.Snapshot(w.engine.Camera)
	look := pose.Forward(p.Rotation)
	return fmt.Sprintf("%s | %.0f fps | pos %.2f %.2f %.2f | look %.2f %.2f %.2f | fov %.0f",
		w.title, fps,
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		look.X(), look.Y(), look.Z(), p.Fov)
}

// bounds outlines every asset loaded so far.
func (w *Window) bounds() []renderer.Box {
	loaded := w.engine.Loaded()
	boxes := make([]renderer.Box, 0, len(loaded))
	for _, asset := range loaded {
		b := asset.Bounds
		boxes = append(boxes, renderer.Box{
			Min:   mgl32.Vec3{float32(b.Min.X()), float32(b.Min.Y()), float32(b.Min.Z())},
			Max:   mgl32.Vec3{float32(b.Max.X()), float32(b.Max.Y()), float32(b.Max.Z())},
			Color: boundsColor,
		})
	}
	return boxes
}

func (w *Window) Close() {
	w.boxes.Delete()
	w.window.Destroy()
	glfw.Terminate()
}
