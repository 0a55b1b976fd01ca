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
	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/logger"
)

// GfxSwitch implements the console.DisplayListener interface. The guest has
// replaced its surface.
func (vc *VirtualConsole) GfxSwitch(s *console.Surface) {
	old := vc.gfx.ds
	vc.gfx.ds = s

	if s == nil {
		return
	}

	if s.IsPlaceholder() && !vc.gfx.everContent {
		// a console that has only ever shown a placeholder holds no GL
		// resources at all
		if vc.gfx.shader != nil {
			if old != nil && old.Texture != 0 {
				vc.session.rnd.DestroySurfaceTexture(vc.gfx.shader, old)
			}
			vc.session.rnd.FiniShader(vc.gfx.shader)
			vc.gfx.shader = nil
		}
		return
	}

	if !s.IsPlaceholder() {
		vc.gfx.everContent = true
	}

	resized := old == nil || old.Width != s.Width || old.Height != s.Height

	if vc.gfx.shader == nil {
		sh, err := vc.session.rnd.InitShader()
		if err != nil {
			// degraded state. the console stops presenting but the session
			// carries on
			logger.Logf("display", "%s: shader init: %v", vc.label, err)
			return
		}
		vc.gfx.shader = sh
	} else if old != nil && old.Texture != 0 {
		vc.session.rnd.DestroySurfaceTexture(vc.gfx.shader, old)
	}

	if err := vc.session.rnd.CreateSurfaceTexture(vc.gfx.shader, s); err != nil {
		logger.Logf("display", "%s: surface texture: %v", vc.label, err)
		return
	}

	// the window only follows the surface when the dimensions actually
	// changed
	if resized {
		vc.session.host.RequestResize(vc, s.Width, s.Height)
	}
}

// GfxUpdate implements the console.DisplayListener interface. A region of
// the current surface has new pixel data.
func (vc *VirtualConsole) GfxUpdate(x, y, w, h int) {
	if vc.gfx.ds == nil || vc.gfx.shader == nil {
		return
	}
	vc.session.rnd.UpdateSurfaceTexture(vc.gfx.shader, vc.gfx.ds, x, y, w, h)
	vc.gfx.updates++
}

// setScanoutMode moves the console between the composited path and the
// scanout path. leaving scanout releases the borrowed guest source and
// recreates the surface texture, which is stale after the guest has been
// presenting its own frames
func (vc *VirtualConsole) setScanoutMode(scanout bool) {
	if vc.gfx.scanoutMode == scanout {
		return
	}
	vc.gfx.scanoutMode = scanout

	if !scanout {
		vc.releaseGuestFB()
		if vc.gfx.ds != nil && vc.gfx.shader != nil {
			if vc.gfx.ds.Texture != 0 {
				vc.session.rnd.DestroySurfaceTexture(vc.gfx.shader, vc.gfx.ds)
			}
			if err := vc.session.rnd.CreateSurfaceTexture(vc.gfx.shader, vc.gfx.ds); err != nil {
				logger.Logf("display", "%s: surface texture: %v", vc.label, err)
			}
		}
	}
}

// releaseGuestFB drops the borrowed scanout source. a pending fence is
// forcibly completed first so the guest is never left blocked on a source
// the display has stopped watching
func (vc *VirtualConsole) releaseGuestFB() {
	fb := &vc.gfx.guestFB
	if !fb.valid {
		return
	}
	if fb.dmabuf != nil {
		vc.completeFence(fb.dmabuf)
	}
	*fb = guestFB{}
}

// ScanoutTexture implements the console.DisplayListener interface. The guest
// declares one of its own textures as the presentation source. A zero
// texture id or zero region dimensions return the console to the composited
// path.
func (vc *VirtualConsole) ScanoutTexture(id uint32, flipY bool, backingW, backingH, x, y, w, h uint32) {
	vc.gfx.x = x
	vc.gfx.y = y
	vc.gfx.w = w
	vc.gfx.h = h
	vc.gfx.flipY = flipY

	if id == 0 || w == 0 || h == 0 {
		vc.setScanoutMode(false)
		return
	}

	vc.setScanoutMode(true)

	// an older source must be fully released, including any pending fence,
	// before the newer one is adopted
	vc.releaseGuestFB()

	vc.gfx.guestFB = guestFB{
		valid:   true,
		width:   backingW,
		height:  backingH,
		texture: id,
		flipY:   flipY,
	}
}

// ScanoutDisable implements the console.DisplayListener interface
func (vc *VirtualConsole) ScanoutDisable() {
	vc.setScanoutMode(false)
}

// ScanoutDmaBuf implements the console.DisplayListener interface. The guest
// declares a dma-buf as the presentation source. Import failure is logged
// and the declaration ignored.
func (vc *VirtualConsole) ScanoutDmaBuf(d *console.DmaBuf) {
	if err := vc.session.rnd.ImportDmaBuf(d); err != nil {
		logger.Logf("scanout", "%s: dmabuf import: %v", vc.label, err)
		return
	}

	vc.ScanoutTexture(d.Texture, d.FlipY, d.Width, d.Height, 0, 0, d.Width, d.Height)

	// the dma-buf is only retained for frame pacing when the guest
	// participates in fencing
	if d.AllowFences && vc.gfx.guestFB.valid {
		vc.gfx.guestFB.dmabuf = d
	}
}

// ScanoutFlush implements the console.DisplayListener interface. The scanout
// source has a new frame. The guest is blocked until the frame's fence
// completes, at most once per submitted frame, and a redraw is queued
// regardless.
func (vc *VirtualConsole) ScanoutFlush(x, y, w, h uint32) {
	if d := vc.gfx.guestFB.dmabuf; d != nil && !d.DrawSubmitted && d.FenceFD >= 0 {
		vc.con.GLBlock(true)
		d.DrawSubmitted = true

		if err := vc.session.rnd.WatchFence(d, func() {
			vc.session.Post(func() {
				vc.completeFence(d)
			})
		}); err != nil {
			logger.Logf("scanout", "%s: fence watch: %v", vc.label, err)
			vc.completeFence(d)
		}
	}

	vc.session.host.QueueDraw(vc)
}

// completeFence finishes the frame whose fence has signalled: the fence
// descriptor is closed and the guest unblocked. completion fires exactly
// once. a late fence notification arriving after a forced release finds the
// descriptor already cleared and does nothing
func (vc *VirtualConsole) completeFence(d *console.DmaBuf) {
	if d.FenceFD < 0 {
		return
	}
	vc.session.rnd.CloseFence(d)
	d.FenceFD = -1
	d.DrawSubmitted = false
	vc.con.GLBlock(false)
}

// ReleaseDmaBuf implements the console.DisplayListener interface. The guest
// is retiring the dma-buf.
func (vc *VirtualConsole) ReleaseDmaBuf(d *console.DmaBuf) {
	if vc.gfx.guestFB.dmabuf == d {
		vc.releaseGuestFB()
	}
	vc.session.rnd.ReleaseDmaBuf(d)
}
