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
	"unsafe"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/display"
	"github.com/bilelmoussaoui/vmdisplay/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// the display.WindowHost implementation. all functions except Wake() run on
// the UI goroutine

// Wake implements the display.WindowHost interface. pushing onto the SDL
// event queue is safe from any goroutine
func (p *Platform) Wake() {
	_, err := sdl.PushEvent(&sdl.UserEvent{Type: p.wakeEvent})
	if err != nil {
		logger.Logf("sdlwin", "wake: %v", err)
	}
}

// QueueDraw implements the display.WindowHost interface
func (p *Platform) QueueDraw(vc *display.VirtualConsole) {
	p.dirty[vc] = true
}

// RequestResize implements the display.WindowHost interface
func (p *Platform) RequestResize(vc *display.VirtualConsole, w, h int) {
	win := p.windowFor(vc)
	if win == nil {
		return
	}
	if win.GetFlags()&(sdl.WINDOW_FULLSCREEN|sdl.WINDOW_MAXIMIZED) != 0 {
		return
	}
	win.SetSize(int32(w), int32(h))
}

// SetMainCaption implements the display.WindowHost interface
func (p *Platform) SetMainCaption(title string) {
	p.window.SetTitle(title)
}

// SetWindowCaption implements the display.WindowHost interface
func (p *Platform) SetWindowCaption(vc *display.VirtualConsole, title string) {
	if vc.Window() == 0 {
		return
	}
	if win := p.windowFor(vc); win != nil {
		win.SetTitle(title)
	}
}

// WindowSize implements the display.WindowHost interface
func (p *Platform) WindowSize(vc *display.VirtualConsole) (int, int, float64) {
	win := p.windowFor(vc)
	if win == nil {
		return 0, 0, 1.0
	}

	w, h := win.GetSize()
	if w == 0 || h == 0 {
		return 0, 0, 1.0
	}

	// on hidpi displays the drawable is larger than the window
	dw, _ := win.GLGetDrawableSize()
	scale := float64(dw) / float64(w)
	if scale <= 0 {
		scale = 1.0
	}

	return int(w), int(h), scale
}

// MonitorWorkArea implements the display.WindowHost interface
func (p *Platform) MonitorWorkArea(vc *display.VirtualConsole) (display.Rect, bool) {
	win := p.windowFor(vc)
	if win == nil {
		return display.Rect{}, false
	}

	idx, err := win.GetDisplayIndex()
	if err != nil {
		return display.Rect{}, false
	}

	r, err := sdl.GetDisplayUsableBounds(idx)
	if err != nil {
		return display.Rect{}, false
	}

	return display.Rect{
		X: int(r.X), Y: int(r.Y),
		W: int(r.W), H: int(r.H),
	}, true
}

// MonitorRefreshRate implements the display.WindowHost interface
func (p *Platform) MonitorRefreshRate(vc *display.VirtualConsole) int {
	win := p.windowFor(vc)
	if win == nil {
		return 0
	}

	idx, err := win.GetDisplayIndex()
	if err != nil {
		return 0
	}

	mode, err := sdl.GetCurrentDisplayMode(idx)
	if err != nil {
		return 0
	}

	// SDL reports whole hertz
	return int(mode.RefreshRate) * 1000
}

// PointerPosition implements the display.WindowHost interface
func (p *Platform) PointerPosition() (float64, float64, bool) {
	x, y, _ := sdl.GetGlobalMouseState()
	return float64(x), float64(y), true
}

// WarpPointer implements the display.WindowHost interface
func (p *Platform) WarpPointer(x, y float64) bool {
	if err := sdl.WarpMouseGlobal(int32(x), int32(y)); err != nil {
		return false
	}
	return true
}

// SetCursor implements the display.WindowHost interface
func (p *Platform) SetCursor(vc *display.VirtualConsole, c *console.Cursor) {
	if old, ok := p.cursors[vc]; ok {
		delete(p.cursors, vc)
		sdl.FreeCursor(old)
	}

	if c == nil || c.Width <= 0 || c.Height <= 0 {
		sdl.SetCursor(sdl.GetDefaultCursor())
		return
	}

	// the cursor image is RGBA bytes, which on a little-endian machine is
	// the ABGR8888 packed format
	surf, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&c.Data[0]),
		int32(c.Width), int32(c.Height), 32, int32(c.Width*4),
		sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		logger.Logf("sdlwin", "cursor: %v", err)
		return
	}
	defer surf.Free()

	cursor := sdl.CreateColorCursor(surf, int32(c.HotX), int32(c.HotY))
	if cursor == nil {
		logger.Logf("sdlwin", "cursor: %v", sdl.GetError())
		return
	}

	p.cursors[vc] = cursor
	sdl.SetCursor(cursor)
}

// HideCursor implements the display.WindowHost interface
func (p *Platform) HideCursor(vc *display.VirtualConsole, hide bool) {
	if hide {
		_, _ = sdl.ShowCursor(sdl.DISABLE)
	} else {
		_, _ = sdl.ShowCursor(sdl.ENABLE)
	}
}

// IsFullscreen implements the display.WindowHost interface
func (p *Platform) IsFullscreen(vc *display.VirtualConsole) bool {
	win := p.windowFor(vc)
	if win == nil {
		return false
	}
	return win.GetFlags()&(sdl.WINDOW_FULLSCREEN|sdl.WINDOW_FULLSCREEN_DESKTOP) != 0
}
