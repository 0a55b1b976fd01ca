// This file is part of VMDisplay.
//
// VMDisplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VMDisplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VMDisplay.  If not, see <https://www.gnu.org/licenses/>.

package sdlwin

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bilelmoussaoui/vmdisplay/display"
	"github.com/bilelmoussaoui/vmdisplay/logger"
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// the main window is created at a fraction of the monitor size
const windowScaleDefault = 0.8

// Platform is the SDL2 realisation of the windowing layer. It owns the main
// window, the rendering context and any windows created for detached
// consoles.
type Platform struct {
	session *display.Session

	window   *sdl.Window
	windowID uint32
	glctx    sdl.GLContext
	mode     sdl.DisplayMode

	rnd  renderer
	ctxp contextProvider

	// windows created for detached consoles, keyed by SDL window ID
	detached map[uint32]*sdl.Window

	// registry index of the console shown in the main window
	current int

	// consoles with a pending redraw
	dirty map[*display.VirtualConsole]bool

	// next refresh tick per graphic console
	ticks map[*display.VirtualConsole]time.Time

	// guest defined cursors. kept so SDL does not free them while in use
	cursors map[*display.VirtualConsole]*sdl.Cursor

	// SDL user event number used by Wake()
	wakeEvent uint32

	quit bool
}

// NewPlatform is the preferred method of initialisation for the Platform
// type. Must be called from the main goroutine, which is locked to the OS
// thread for the lifetime of the process.
func NewPlatform() (*Platform, error) {
	runtime.LockOSThread()

	plt := &Platform{
		detached: make(map[uint32]*sdl.Window),
		dirty:    make(map[*display.VirtualConsole]bool),
		ticks:    make(map[*display.VirtualConsole]time.Time),
		cursors:  make(map[*display.VirtualConsole]*sdl.Cursor),
	}
	plt.rnd.plt = plt
	plt.ctxp.plt = plt

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}

	plt.mode, err = sdl.GetCurrentDisplayMode(0)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}
	logger.Logf("sdl", "refresh rate: %dhz", plt.mode.RefreshRate)

	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	width := int32(float32(plt.mode.W) * windowScaleDefault)
	height := int32(float32(plt.mode.H) * windowScaleDefault)

	plt.window, err = sdl.CreateWindow("VMDisplay",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}

	plt.windowID, err = plt.window.GetID()
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}

	plt.glctx, err = plt.window.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}
	err = plt.window.GLMakeCurrent(plt.glctx)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}
	plt.ctxp.current = nil

	// vsync is not wanted. presentation is paced by the refresh scheduler
	err = sdl.GLSetSwapInterval(0)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}

	err = gl.Init()
	if err != nil {
		return nil, fmt.Errorf("sdlwin: %w", err)
	}

	logger.Logf("sdl", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf("sdl", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf("sdl", "version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	plt.wakeEvent = sdl.RegisterEvents(1)

	return plt, nil
}

// Connect the platform to its session. Must be called before the first
// Service().
func (p *Platform) Connect(session *display.Session) {
	p.session = session
}

// Destroy releases the windows and the rendering context
func (p *Platform) Destroy() {
	for _, w := range p.detached {
		_ = w.Destroy()
	}
	for _, c := range p.cursors {
		sdl.FreeCursor(c)
	}
	if p.glctx != nil {
		sdl.GLDeleteContext(p.glctx)
		p.glctx = nil
	}
	if p.window != nil {
		_ = p.window.Destroy()
		p.window = nil
	}
	sdl.Quit()
}

// CurrentConsole returns the console shown in the main window
func (p *Platform) CurrentConsole() *display.VirtualConsole {
	return p.session.ByIndex(p.current)
}

// SwitchConsole changes which console the main window shows
func (p *Platform) SwitchConsole(index int) {
	vc := p.session.ByIndex(index)
	if vc == nil || vc.Window() != 0 || index == p.current {
		return
	}

	// grabs are tied to the visible console
	p.session.UngrabInput()

	p.current = index
	p.dirty[vc] = true
	logger.Logf("sdl", "showing console %d: %s", index, vc.Label())
}

// DetachConsole moves a console into its own window
func (p *Platform) DetachConsole(vc *display.VirtualConsole) error {
	if vc.Window() != 0 || vc.Index() == p.current {
		return nil
	}

	w, err := sdl.CreateWindow(vc.Label(),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		640, 480,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return fmt.Errorf("sdlwin: detach: %w", err)
	}

	id, err := w.GetID()
	if err != nil {
		_ = w.Destroy()
		return fmt.Errorf("sdlwin: detach: %w", err)
	}

	p.detached[id] = w
	p.session.Detach(vc, display.WindowID(id))
	p.dirty[vc] = true

	if ds := vc.Surface(); ds != nil {
		w.SetSize(int32(ds.Width), int32(ds.Height))
	}

	return nil
}

// AttachConsole returns a detached console to the main window
func (p *Platform) AttachConsole(vc *display.VirtualConsole) {
	id := uint32(vc.Window())
	if id == 0 {
		return
	}

	p.session.Attach(vc)

	if w, ok := p.detached[id]; ok {
		delete(p.detached, id)
		_ = w.Destroy()
	}
}

// windowFor returns the SDL window hosting the console. nil when the console
// is neither detached nor current in the main window
func (p *Platform) windowFor(vc *display.VirtualConsole) *sdl.Window {
	if vc == nil {
		return nil
	}
	if vc.Window() == 0 {
		return p.window
	}
	return p.detached[uint32(vc.Window())]
}

// vcFor returns the console hosted by the SDL window with the specified ID
func (p *Platform) vcFor(windowID uint32) *display.VirtualConsole {
	if windowID == p.windowID {
		return p.session.ByIndex(p.current)
	}
	return p.session.ByWindow(display.WindowID(windowID))
}

// SetFullscreen switches the main window in or out of fullscreen
func (p *Platform) SetFullscreen(set bool) {
	if set {
		_ = p.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	} else {
		_ = p.window.SetFullscreen(0)
	}

	// cursor policy depends on the fullscreen state
	if vc := p.session.ByIndex(p.current); vc != nil {
		p.dirty[vc] = true
	}
}
