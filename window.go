package main

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cubesketch/internal/app"
	"cubesketch/internal/config"
	"cubesketch/internal/layer"
)

// idleTimeout bounds how long the loop sleeps waiting for input when no
// frame was rendered.
const idleTimeout = 0.25

// wheelPixelsPerLine converts glfw scroll offsets (lines) into DOM-style
// pixel deltas.
const wheelPixelsPerLine = 100

// window forwards glfw input into the compositor and presents its frames.
type window struct {
	win       *glfw.Window
	app       *app.App
	presenter *presenter
	title     string
	showFPS   bool
}

func runWindow(cfg *config.Config, a *app.App) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	slog.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	p, err := newPresenter()
	if err != nil {
		return err
	}
	defer p.release()

	w := &window{win: win, app: a, presenter: p, title: cfg.Window.Title, showFPS: cfg.Window.ShowFPS}
	w.bind()

	// the canvas follows the window size in screen coordinates, which is
	// what cursor positions are reported in
	width, height := win.GetSize()
	a.Compositor.Resize(width, height)

	return w.loop()
}

func (w *window) bind() {
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.app.Compositor.Resize(width, height)
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.app.Compositor.PointerMove(&layer.PointerEvent{ClientX: x, ClientY: y, Button: -1})
	})
	w.win.SetMouseButtonCallback(w.onMouseButton)
	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.app.Compositor.Wheel(&layer.WheelEvent{DeltaY: -yoff * wheelPixelsPerLine})
	})
	w.win.SetKeyCallback(w.onKey)
}

func buttonFromGLFW(b glfw.MouseButton) layer.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return layer.ButtonPrimary
	case glfw.MouseButtonMiddle:
		return layer.ButtonAuxiliary
	case glfw.MouseButtonRight:
		return layer.ButtonSecondary
	default:
		return layer.Button(b)
	}
}

func (w *window) onMouseButton(win *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	x, y := win.GetCursorPos()
	e := &layer.PointerEvent{ClientX: x, ClientY: y, Button: buttonFromGLFW(b)}
	switch action {
	case glfw.Press:
		w.app.Compositor.PointerDown(e)
		if e.Button == layer.ButtonSecondary {
			// there is no native menu; report what a browser would do
			if !w.app.Compositor.ContextMenu(&layer.ContextMenuEvent{ClientX: x, ClientY: y}) {
				slog.Debug("context menu requested", "x", x, "y", y)
			}
		}
	case glfw.Release:
		w.app.Compositor.PointerUp(e)
	}
}

func (w *window) onKey(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	ctrl := mods&glfw.ModControl != 0
	shift := mods&glfw.ModShift != 0
	switch {
	case key == glfw.KeyEscape:
		win.SetShouldClose(true)
	case ctrl && key == glfw.KeyZ && shift, ctrl && key == glfw.KeyY:
		w.app.Redo()
	case ctrl && key == glfw.KeyZ:
		w.app.Undo()
	case key == glfw.KeyC:
		w.app.Clear()
	case key == glfw.KeyD:
		w.app.ToggleDragging()
	case key == glfw.KeyG:
		w.app.ToggleDrawing()
	case key == glfw.KeyP:
		w.app.CycleProjection()
	case key >= glfw.Key1 && key <= glfw.Key9:
		w.app.ApplyPreset(int(key - glfw.Key1))
	case key == glfw.KeyLeft:
		w.app.PanGrid(-1, 0)
	case key == glfw.KeyRight:
		w.app.PanGrid(1, 0)
	case key == glfw.KeyUp:
		w.app.PanGrid(0, -1)
	case key == glfw.KeyDown:
		w.app.PanGrid(0, 1)
	case key == glfw.KeyLeftBracket:
		w.app.NudgeFov(-1)
	case key == glfw.KeyRightBracket:
		w.app.NudgeFov(1)
	}
}

func (w *window) loop() error {
	lastFpsTime := glfw.GetTime()
	frameCount := 0

	for !w.win.ShouldClose() {
		rendered := w.app.Render()
		if rendered {
			w.presenter.upload(w.app.Canvas.Flatten(w.app.Background))
		}
		fbw, fbh := w.win.GetFramebufferSize()
		w.presenter.draw(fbw, fbh)

		frameCount++
		if now := glfw.GetTime(); now-lastFpsTime >= 1.0 {
			if w.showFPS {
				w.win.SetTitle(fmt.Sprintf("%s | FPS: %d", w.title, frameCount))
			}
			frameCount = 0
			lastFpsTime = now
		}

		w.win.SwapBuffers()
		pumpEvents(glfwPump{}, rendered)
	}
	return nil
}

// eventPump is the part of glfw's event API the frame loop uses.
type eventPump interface {
	PollEvents()
	WaitEventsTimeout(timeout float64)
}

type glfwPump struct{}

func (glfwPump) PollEvents()                       { glfw.PollEvents() }
func (glfwPump) WaitEventsTimeout(timeout float64) { glfw.WaitEventsTimeout(timeout) }

// pumpEvents polls while frames are being produced and blocks for input
// once the compositor has nothing new to draw.
func pumpEvents(p eventPump, rendered bool) {
	if rendered {
		p.PollEvents()
		return
	}
	p.WaitEventsTimeout(idleTimeout)
}
