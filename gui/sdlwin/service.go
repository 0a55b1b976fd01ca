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
	"time"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/display"
	"github.com/bilelmoussaoui/vmdisplay/logger"
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// Service performs one iteration of the event loop: posted functions are
// drained, SDL events are routed to their console, consoles due a refresh
// tick are ticked, and dirty windows are redrawn. Returns false once the
// user has asked to quit.
//
// Must be called from the same goroutine that created the Platform.
func (p *Platform) Service() bool {
	if p.quit {
		return false
	}

	p.session.Service()

	ev := sdl.WaitEventTimeout(p.waitTimeout())
	for ; ev != nil; ev = sdl.PollEvent() {
		p.serviceEvent(ev)
	}

	// posted functions may have arrived while waiting
	p.session.Service()

	p.refresh()
	p.draw()

	return !p.quit
}

// waitTimeout is the number of milliseconds until the next console is due a
// refresh tick
func (p *Platform) waitTimeout() int {
	timeout := display.RefreshIntervalDefault

	now := time.Now()
	for _, vc := range p.session.Consoles() {
		if !vc.IsGraphic() || !p.visible(vc) {
			continue
		}
		d := p.ticks[vc].Sub(now)
		if d < timeout {
			timeout = d
		}
	}

	if timeout < time.Millisecond {
		return 1
	}
	return int(timeout / time.Millisecond)
}

// visible returns true when the console is presented somewhere: either
// detached into its own window or current in the main window
func (p *Platform) visible(vc *display.VirtualConsole) bool {
	return vc.Window() != 0 || vc.Index() == p.current
}

// refresh ticks every visible graphic console whose interval has elapsed
func (p *Platform) refresh() {
	now := time.Now()
	for _, vc := range p.session.Consoles() {
		if !vc.IsGraphic() || !p.visible(vc) {
			continue
		}
		if now.Before(p.ticks[vc]) {
			continue
		}
		vc.Refresh()
		p.ticks[vc] = now.Add(vc.RefreshInterval())
	}
}

func (p *Platform) serviceEvent(ev sdl.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		p.quit = true

	case *sdl.WindowEvent:
		p.serviceWindowEvent(ev)

	case *sdl.KeyboardEvent:
		p.serviceKeyboardEvent(ev)

	case *sdl.MouseMotionEvent:
		if vc := p.vcFor(ev.WindowID); vc != nil {
			vc.Motion(float64(ev.X), float64(ev.Y))
		}

	case *sdl.MouseButtonEvent:
		p.serviceMouseButtonEvent(ev)

	case *sdl.MouseWheelEvent:
		if vc := p.vcFor(ev.WindowID); vc != nil {
			// SDL reports scrolling away from the user as positive
			vc.Scroll(float64(ev.X), float64(-ev.Y))
		}
	}
}

func (p *Platform) serviceWindowEvent(ev *sdl.WindowEvent) {
	vc := p.vcFor(ev.WindowID)

	switch ev.Event {
	case sdl.WINDOWEVENT_CLOSE:
		if ev.WindowID == p.windowID {
			p.quit = true
		} else if vc != nil {
			// closing a detached console's window returns it to the
			// main window
			p.AttachConsole(vc)
		}

	case sdl.WINDOWEVENT_FOCUS_LOST:
		if vc != nil {
			vc.FocusLost()
		}

	case sdl.WINDOWEVENT_ENTER:
		if vc != nil {
			vc.Enter()
		}

	case sdl.WINDOWEVENT_LEAVE:
		if vc != nil {
			vc.Leave()
		}

	case sdl.WINDOWEVENT_EXPOSED, sdl.WINDOWEVENT_SIZE_CHANGED:
		if vc != nil {
			p.dirty[vc] = true
		}
	}
}

func (p *Platform) serviceKeyboardEvent(ev *sdl.KeyboardEvent) {
	vc := p.vcFor(ev.WindowID)
	if vc == nil {
		return
	}

	// hotkeys are handled on press and never forwarded to the guest
	if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
		mod := sdl.GetModState()
		if mod&sdl.KMOD_CTRL != 0 && mod&sdl.KMOD_ALT != 0 {
			switch {
			case ev.Keysym.Sym == sdl.K_g:
				p.session.ToggleGrabInput(vc)
				return
			case ev.Keysym.Sym == sdl.K_f:
				p.SetFullscreen(!p.IsFullscreen(vc))
				return
			case ev.Keysym.Sym == sdl.K_s:
				if err := p.SaveScreenshot(); err != nil {
					logger.Logf("sdlwin", "screenshot: %v", err)
				}
				return
			case ev.Keysym.Sym >= sdl.K_1 && ev.Keysym.Sym <= sdl.K_9:
				p.SwitchConsole(int(ev.Keysym.Sym - sdl.K_1))
				return
			}
		}
	}

	down := ev.Type == sdl.KEYDOWN
	pause := ev.Keysym.Scancode == sdl.SCANCODE_PAUSE
	vc.Key(int(ev.Keysym.Scancode), pause, down)
}

func (p *Platform) serviceMouseButtonEvent(ev *sdl.MouseButtonEvent) {
	vc := p.vcFor(ev.WindowID)
	if vc == nil {
		return
	}

	var btn console.Button
	switch ev.Button {
	case sdl.BUTTON_LEFT:
		btn = console.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		btn = console.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		btn = console.ButtonRight
	default:
		return
	}

	vc.Button(btn, int(ev.Clicks), ev.Type == sdl.MOUSEBUTTONDOWN)
}

// draw redraws every window with a pending redraw
func (p *Platform) draw() {
	for vc := range p.dirty {
		delete(p.dirty, vc)

		if !vc.IsGraphic() || !p.visible(vc) {
			continue
		}
		win := p.windowFor(vc)
		if win == nil {
			continue
		}
		p.drawConsole(vc, win)
	}
}

// presentationSource selects the texture to present: the guest's own texture
// in scanout mode, the mirror of the surface otherwise. the crop is in
// normalised texture coordinates
func presentationSource(vc *display.VirtualConsole) (texture uint32, w, h int, flipY bool, crop [4]float32) {
	crop = [4]float32{0.0, 0.0, 1.0, 1.0}

	if vc.ScanoutMode() {
		texture, bw, bh, flipY, valid := vc.ScanoutSource()
		if !valid || texture == 0 {
			return 0, 0, 0, false, crop
		}
		x, y, rw, rh := vc.ScanoutRegion()
		if bw > 0 && bh > 0 && rw > 0 && rh > 0 {
			crop = [4]float32{
				float32(x) / float32(bw),
				float32(y) / float32(bh),
				float32(rw) / float32(bw),
				float32(rh) / float32(bh),
			}
		}
		return texture, int(rw), int(rh), flipY, crop
	}

	ds := vc.Surface()
	if ds == nil || ds.Texture == 0 {
		return 0, 0, 0, false, crop
	}
	return ds.Texture, ds.Width, ds.Height, false, crop
}

func (p *Platform) drawConsole(vc *display.VirtualConsole, win *sdl.Window) {
	if err := win.GLMakeCurrent(p.glctx); err != nil {
		logger.Logf("sdlwin", "draw: %v", err)
		return
	}
	p.ctxp.current = nil

	dw, dh := win.GLGetDrawableSize()
	gl.Viewport(0, 0, dw, dh)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	texture, w, h, flipY, crop := presentationSource(vc)
	if texture != 0 && p.rnd.blit != nil && w > 0 && h > 0 {
		_, _, hidpi := p.WindowSize(vc)

		// the scaled console is letterboxed in the window
		fbw := int32(float64(w) * vc.Scale() * hidpi)
		fbh := int32(float64(h) * vc.Scale() * hidpi)

		var vx, vy int32
		if dw > fbw {
			vx = (dw - fbw) / 2
		}
		if dh > fbh {
			vy = (dh - fbh) / 2
		}

		gl.Viewport(vx, vy, fbw, fbh)
		p.rnd.blit.draw(texture, flipY, crop)
	}

	win.GLSwap()
}
