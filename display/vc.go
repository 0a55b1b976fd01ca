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
	"time"

	"github.com/bilelmoussaoui/vmdisplay/console"
)

// guestFB records the guest owned texture currently declared as the scanout
// source. the texture is borrowed, never owned, so releasing the guestFB
// never deletes it
type guestFB struct {
	valid   bool
	width   uint32
	height  uint32
	texture uint32
	flipY   bool

	// non-nil when the source is a dma-buf that participates in fence
	// based frame pacing
	dmabuf *console.DmaBuf
}

// gfxState is the presentation state of a single graphic console
type gfxState struct {
	// the CPU visible surface mirrored by the composited path
	ds *console.Surface

	// per-console shader resources. nil while the console shows nothing
	// but a placeholder
	shader ShaderState

	// rendering context created on behalf of the guest
	ctx console.GLContext

	guestFB guestFB

	// visible region within the scanout source
	x, y, w, h uint32
	flipY      bool

	// true while the guest's own texture is the presentation source
	scanoutMode bool

	// composited updates since the last refresh tick
	updates int

	// true once the console has shown something other than a placeholder
	everContent bool

	refreshInterval time.Duration

	kbd    *console.KbdState
	cursor *console.Cursor
}

// VirtualConsole is the display side of one guest console. Graphic consoles
// implement console.DisplayListener. Non-graphic consoles delegate to a
// TextConsole collaborator.
type VirtualConsole struct {
	session *Session
	index   int
	label   string
	con     *console.Console

	// non-zero when the console is detached into its own host window
	window WindowID

	text TextConsole

	gfx gfxState

	// user zoom factor applied when presenting the surface
	scale float64
}

// Index of the console in the session's registry
func (vc *VirtualConsole) Index() int {
	return vc.index
}

// Label identifies the console to the user
func (vc *VirtualConsole) Label() string {
	return vc.label
}

// Console returns the guest console this virtual console is attached to
func (vc *VirtualConsole) Console() *console.Console {
	return vc.con
}

// IsGraphic returns true for display heads
func (vc *VirtualConsole) IsGraphic() bool {
	return vc.con.IsGraphic()
}

// Window returns the console's host window. zero when hosted in the main
// window
func (vc *VirtualConsole) Window() WindowID {
	return vc.window
}

// Surface returns the surface currently being presented. nil when the guest
// has never produced one
func (vc *VirtualConsole) Surface() *console.Surface {
	return vc.gfx.ds
}

// ScanoutMode returns true while the guest's own texture is the presentation
// source
func (vc *VirtualConsole) ScanoutMode() bool {
	return vc.gfx.scanoutMode
}

// ScanoutSource returns the borrowed guest texture and its backing
// dimensions. valid is false in composited mode
func (vc *VirtualConsole) ScanoutSource() (texture uint32, w, h uint32, flipY bool, valid bool) {
	fb := &vc.gfx.guestFB
	return fb.texture, fb.width, fb.height, fb.flipY, fb.valid
}

// ScanoutRegion returns the visible region within the scanout source
func (vc *VirtualConsole) ScanoutRegion() (x, y, w, h uint32) {
	return vc.gfx.x, vc.gfx.y, vc.gfx.w, vc.gfx.h
}

// Scale returns the user zoom factor
func (vc *VirtualConsole) Scale() float64 {
	return vc.scale
}

// SetScale changes the user zoom factor
func (vc *VirtualConsole) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1.0
	}
	vc.scale = scale
}

// CursorDefine implements the console.DisplayListener interface
func (vc *VirtualConsole) CursorDefine(c *console.Cursor) {
	vc.gfx.cursor = c
	vc.session.host.SetCursor(vc, c)
}

// HasDmaBuf implements the console.DisplayListener interface
func (vc *VirtualConsole) HasDmaBuf() bool {
	return vc.session.rnd.SupportsDmaBuf()
}

// CheckFormat implements the console.DisplayListener interface
func (vc *VirtualConsole) CheckFormat(f console.PixelFormat) bool {
	for _, s := range vc.session.rnd.SupportedFormats() {
		if s == f {
			return true
		}
	}
	return false
}
