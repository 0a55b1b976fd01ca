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

// Package console models the guest side of the display bridge: the consoles a
// guest machine exposes, the surfaces and dma-bufs it produces, and the input
// events it consumes.
//
// The display layer attaches a DisplayListener to each graphic console. All
// listener callbacks happen on the UI goroutine. Guest emulation running on
// other goroutines must marshal its notifications onto the UI goroutine
// before touching a console.
package console

// UIInfo is the display geometry reported back to the guest so it can adapt
// its output mode
type UIInfo struct {
	Width  int
	Height int

	// RefreshRate is in millihertz. zero means unknown
	RefreshRate int
}

// DisplayListener is the display side of a graphic console. Implementations
// receive guest output notifications and the periodic refresh tick.
type DisplayListener interface {
	// Refresh is the periodic tick that drives the guest's frame production
	Refresh()

	// GfxUpdate reports that a region of the current surface has new pixel
	// data
	GfxUpdate(x, y, w, h int)

	// GfxSwitch reports that the guest has replaced the current surface
	GfxSwitch(s *Surface)

	// CursorDefine reports a new guest pointer image
	CursorDefine(c *Cursor)

	// ScanoutTexture declares a guest owned GL texture as the presentation
	// source. backingW/backingH are the full texture dimensions, x/y/w/h the
	// visible region. a zero texture id or zero region dimensions disable
	// scanout
	ScanoutTexture(id uint32, flipY bool, backingW, backingH, x, y, w, h uint32)

	// ScanoutDisable returns the console to the composited path
	ScanoutDisable()

	// ScanoutDmaBuf declares a guest owned dma-buf as the presentation source
	ScanoutDmaBuf(d *DmaBuf)

	// ScanoutFlush reports that the scanout source has a new frame ready
	ScanoutFlush(x, y, w, h uint32)

	// ReleaseDmaBuf reports that the guest is retiring the dma-buf
	ReleaseDmaBuf(d *DmaBuf)

	// HasDmaBuf returns true if the display can import dma-bufs
	HasDmaBuf() bool

	// CheckFormat returns true if the display can present the pixel format
	CheckFormat(f PixelFormat) bool
}

// GLContext is an opaque handle to a platform rendering context
type GLContext any

// GLProvider gives the guest access to the display's rendering contexts. It
// is attached to a console by the display layer.
type GLProvider interface {
	// IsCompatible returns true if the listener belongs to the same display
	// as this provider
	IsCompatible(l DisplayListener) bool

	// CreateContext creates a rendering context of at least the requested
	// version, shared with the display's own context
	CreateContext(major, minor int) (GLContext, error)

	// DestroyContext destroys a context created by CreateContext
	DestroyContext(ctx GLContext)

	// MakeCurrent binds the context to the calling goroutine
	MakeCurrent(ctx GLContext) error
}

// Callbacks is implemented by the emulation behind a graphic console
type Callbacks interface {
	// GraphicUpdate asks the guest to produce a frame if it has pending
	// changes. called once per refresh tick
	GraphicUpdate()

	// GLBlock throttles the guest's write path for the currently scanned
	// out buffer. blocked while a frame's fence is outstanding
	GLBlock(block bool)
}

// Console is a single guest display head (graphic) or serial channel (text)
type Console struct {
	index   int
	label   string
	graphic bool

	surface *Surface
	info    UIInfo

	listener DisplayListener
	gl       GLProvider
	hooks    Callbacks
	sink     InputSink
}

// NewGraphicConsole creates a graphic console. The sink receives the input
// events routed to this console and the hooks connect the refresh tick and
// scanout back-pressure to the emulation. Both may be nil.
func NewGraphicConsole(label string, surface *Surface, sink InputSink, hooks Callbacks) *Console {
	return &Console{
		label:   label,
		graphic: true,
		surface: surface,
		sink:    sink,
		hooks:   hooks,
	}
}

// NewTextConsole creates a non-graphic console for a guest serial channel
func NewTextConsole(label string) *Console {
	return &Console{
		label:   label,
		graphic: false,
	}
}

// Index of the console in its machine. assigned by Machine.AddConsole
func (c *Console) Index() int {
	return c.index
}

// Label identifies the console to the user
func (c *Console) Label() string {
	return c.label
}

// IsGraphic returns true for display heads and false for serial channels
func (c *Console) IsGraphic() bool {
	return c.graphic
}

// Surface returns the console's current surface. nil if the guest has never
// set one
func (c *Console) Surface() *Surface {
	return c.surface
}

// UIInfo returns the geometry most recently reported by the display
func (c *Console) UIInfo() UIInfo {
	return c.info
}

// SetUIInfo is called by the display to report its geometry
func (c *Console) SetUIInfo(info UIInfo) {
	c.info = info
}

// Sink returns the console's input sink. nil for consoles that accept no
// input
func (c *Console) Sink() InputSink {
	return c.sink
}

// AttachListener connects the display to the console. The listener is
// immediately notified of the current surface, if there is one.
func (c *Console) AttachListener(l DisplayListener) {
	c.listener = l
	if l != nil && c.surface != nil {
		l.GfxSwitch(c.surface)
	}
}

// Listener returns the attached display listener. nil when detached
func (c *Console) Listener() DisplayListener {
	return c.listener
}

// SetGLProvider is called by the display to give the guest access to
// rendering contexts
func (c *Console) SetGLProvider(p GLProvider) {
	c.gl = p
}

// GLProvider returns the attached provider. nil when the display has no GL
// capability
func (c *Console) GLProvider() GLProvider {
	return c.gl
}

// GraphicUpdate forwards the refresh tick to the emulation
func (c *Console) GraphicUpdate() {
	if c.hooks != nil {
		c.hooks.GraphicUpdate()
	}
}

// GLBlock forwards scanout back-pressure to the emulation
func (c *Console) GLBlock(block bool) {
	if c.hooks != nil {
		c.hooks.GLBlock(block)
	}
}

// SetSurface replaces the console's surface and notifies the display. called
// by the guest when its output geometry or format changes
func (c *Console) SetSurface(s *Surface) {
	c.surface = s
	if c.listener != nil {
		c.listener.GfxSwitch(s)
	}
}

// UpdateRegion reports new pixel data in a region of the current surface
func (c *Console) UpdateRegion(x, y, w, h int) {
	if c.listener != nil {
		c.listener.GfxUpdate(x, y, w, h)
	}
}

// DefineCursor reports a new guest pointer image. a nil cursor restores the
// host default
func (c *Console) DefineCursor(cur *Cursor) {
	if c.listener != nil {
		c.listener.CursorDefine(cur)
	}
}

// ScanoutTexture declares a guest owned texture as the presentation source
func (c *Console) ScanoutTexture(id uint32, flipY bool, backingW, backingH, x, y, w, h uint32) {
	if c.listener != nil {
		c.listener.ScanoutTexture(id, flipY, backingW, backingH, x, y, w, h)
	}
}

// ScanoutDisable returns the console to the composited path
func (c *Console) ScanoutDisable() {
	if c.listener != nil {
		c.listener.ScanoutDisable()
	}
}

// ScanoutDmaBuf declares a guest owned dma-buf as the presentation source
func (c *Console) ScanoutDmaBuf(d *DmaBuf) {
	if c.listener != nil {
		c.listener.ScanoutDmaBuf(d)
	}
}

// ScanoutFlush reports that the scanout source has a new frame ready
func (c *Console) ScanoutFlush(x, y, w, h uint32) {
	if c.listener != nil {
		c.listener.ScanoutFlush(x, y, w, h)
	}
}

// ReleaseDmaBuf retires a dma-buf previously passed to ScanoutDmaBuf
func (c *Console) ReleaseDmaBuf(d *DmaBuf) {
	if c.listener != nil {
		c.listener.ReleaseDmaBuf(d)
	}
}
