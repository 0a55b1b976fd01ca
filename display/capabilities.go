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

package display

import (
	"errors"

	"github.com/bilelmoussaoui/vmdisplay/console"
)

// ErrUnsupported indicates a platform capability that is not available. for
// example, dma-buf import on a platform without EGL
var ErrUnsupported = errors.New("display: not supported")

// WindowID identifies a host window. the zero value means the console is
// hosted in the main window
type WindowID uint32

// Rect is a rectangle in host coordinates
type Rect struct {
	X, Y, W, H int
}

// GLParams is a rendering context version request
type GLParams struct {
	Major int
	Minor int
}

// ShaderState is an opaque handle to the platform's per-console shader
// resources. nil when the console holds no GL resources.
type ShaderState any

// Renderer is the texture side capability of the windowing layer. All
// methods are called on the UI goroutine with the platform's rendering
// context current, except the fence functions which have their own
// documented rules.
type Renderer interface {
	// SupportsDmaBuf returns true if ImportDmaBuf can ever succeed
	SupportsDmaBuf() bool

	// SupportedFormats lists the surface pixel formats the renderer can
	// present
	SupportedFormats() []console.PixelFormat

	// InitShader creates the per-console shader resources for the
	// composited path
	InitShader() (ShaderState, error)

	// FiniShader releases resources created by InitShader
	FiniShader(sh ShaderState)

	// CreateSurfaceTexture creates a texture mirroring the surface and
	// records its name in s.Texture
	CreateSurfaceTexture(sh ShaderState, s *console.Surface) error

	// DestroySurfaceTexture releases the texture mirroring the surface and
	// zeroes s.Texture
	DestroySurfaceTexture(sh ShaderState, s *console.Surface)

	// UpdateSurfaceTexture uploads a region of the surface's pixel data
	// into its texture
	UpdateSurfaceTexture(sh ShaderState, s *console.Surface, x, y, w, h int)

	// ImportDmaBuf imports the guest's buffer and records the resulting
	// texture name in d.Texture. the buffer memory remains owned by the
	// guest
	ImportDmaBuf(d *console.DmaBuf) error

	// ReleaseDmaBuf drops the imported texture. the buffer memory is
	// untouched
	ReleaseDmaBuf(d *console.DmaBuf)

	// WatchFence arranges for done to be called when d.FenceFD signals.
	// done may be called on any goroutine
	WatchFence(d *console.DmaBuf, done func()) error

	// CloseFence closes d.FenceFD without waiting for it
	CloseFence(d *console.DmaBuf)
}

// ContextProvider is the rendering context capability of the windowing layer
type ContextProvider interface {
	// CreateContext creates a context of at least the requested version,
	// shared with the platform's own context
	CreateContext(p GLParams) (console.GLContext, error)

	// DestroyContext destroys a context created by CreateContext
	DestroyContext(ctx console.GLContext)

	// MakeCurrent binds the context to the calling goroutine
	MakeCurrent(ctx console.GLContext) error

	// CurrentContext returns the context bound to the calling goroutine.
	// nil when none is bound
	CurrentContext() console.GLContext

	// ClearCurrent unbinds whatever context is bound to the calling
	// goroutine
	ClearCurrent()
}

// WindowHost is the host window capability of the windowing layer
type WindowHost interface {
	// Wake interrupts the event loop's wait so that posted functions are
	// serviced promptly. safe to call from any goroutine
	Wake()

	// QueueDraw schedules a redraw of the console's window region.
	// multiple calls before the draw happens coalesce into one
	QueueDraw(vc *VirtualConsole)

	// RequestResize asks the host to resize the console's window region to
	// the specified surface dimensions
	RequestResize(vc *VirtualConsole, w, h int)

	// SetMainCaption sets the main window's title
	SetMainCaption(title string)

	// SetWindowCaption sets the title of a detached console's window
	SetWindowCaption(vc *VirtualConsole, title string)

	// WindowSize returns the size of the console's window region and the
	// backing scale factor
	WindowSize(vc *VirtualConsole) (w, h int, scale float64)

	// MonitorWorkArea returns the usable bounds of the monitor showing the
	// console. ok is false when the monitor cannot be determined
	MonitorWorkArea(vc *VirtualConsole) (r Rect, ok bool)

	// MonitorRefreshRate returns the refresh rate of the monitor showing
	// the console, in millihertz. zero when unknown
	MonitorRefreshRate(vc *VirtualConsole) int

	// PointerPosition returns the pointer position in host coordinates. ok
	// is false when the platform cannot report it
	PointerPosition() (x, y float64, ok bool)

	// WarpPointer moves the pointer to the specified host coordinates.
	// returns false on platforms without a native warp primitive
	WarpPointer(x, y float64) bool

	// SetCursor applies a guest defined cursor image to the console's
	// window region. nil restores the host default
	SetCursor(vc *VirtualConsole, c *console.Cursor)

	// HideCursor hides or shows the host cursor over the console's window
	// region
	HideCursor(vc *VirtualConsole, hide bool)

	// IsFullscreen returns true when the console's window is fullscreen
	IsFullscreen(vc *VirtualConsole) bool
}

// TextConsole is the opaque terminal emulation collaborator behind a
// non-graphic console
type TextConsole interface {
	// KeyEvent delivers a key press translated to a guest key code
	KeyEvent(code console.KeyCode, down bool)

	// Copy returns the recent terminal output as text
	Copy() (string, error)
}
