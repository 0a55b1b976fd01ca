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
)

// mapKeycode translates a platform scancode to a guest key code. scancodes
// outside the table translate to the neutral no-op code
func (s *Session) mapKeycode(scancode int) console.KeyCode {
	if scancode < 0 || scancode >= len(s.keymap) {
		return console.KeyUnmapped
	}
	return s.keymap[scancode]
}

// Motion routes a pointer motion event. px/py are window coordinates of the
// console's window region. In absolute mode the position is translated to
// surface coordinates, with events outside the surface dropped. In relative
// mode a delta against the previous position is sent, but only while this
// console owns the pointer.
func (vc *VirtualConsole) Motion(px, py float64) {
	s := vc.session
	ds := vc.gfx.ds
	if ds == nil {
		return
	}
	sink := vc.con.Sink()
	if sink == nil {
		return
	}

	ww, wh, ws := s.host.WindowSize(vc)

	// the surface is letterboxed in the window when the window is larger
	// than the scaled surface
	fbw := float64(ds.Width) * vc.scale
	fbh := float64(ds.Height) * vc.scale

	var mx, my float64
	if float64(ww) > fbw {
		mx = (float64(ww) - fbw) / 2
	}
	if float64(wh) > fbh {
		my = (float64(wh) - fbh) / 2
	}

	x := int((px - mx) / vc.scale * ws)
	y := int((py - my) / vc.scale * ws)

	if s.machine.IsAbsolute() {
		if x < 0 || y < 0 || x >= ds.Width || y >= ds.Height {
			// out of bounds positions would mislead the guest
			return
		}
		sink.QueueAbsolute(console.AxisX, x, 0, ds.Width)
		sink.QueueAbsolute(console.AxisY, y, 0, ds.Height)
		sink.Sync()
	} else if s.lastSet && s.grab.ptrOwner == vc {
		sink.QueueRelative(console.AxisX, x-s.lastX)
		sink.QueueRelative(console.AxisY, y-s.lastY)
		sink.Sync()
	}
	s.lastX = x
	s.lastY = y
	s.lastSet = true

	// in relative mode the pointer must never escape the monitor. when it
	// reaches an edge of the work area it is warped back to the centre and
	// the reference position cleared so the jump does not register as
	// movement
	if !s.machine.IsAbsolute() && s.grab.ptrOwner == vc {
		geom, ok := s.host.MonitorWorkArea(vc)
		if !ok {
			return
		}
		rx, ry, ok := s.host.PointerPosition()
		if !ok {
			return
		}
		if rx <= float64(geom.X) || ry <= float64(geom.Y) ||
			rx-float64(geom.X) >= float64(geom.W-1) ||
			ry-float64(geom.Y) >= float64(geom.H-1) {
			cx := float64(geom.X) + float64(geom.W)/2
			cy := float64(geom.Y) + float64(geom.H)/2
			s.host.WarpPointer(cx, cy)
			s.lastSet = false
		}
	}
}

// Button routes a pointer button event. presses is the click count within a
// gesture. the second and third click of a double or triple click gesture
// are suppressed so the guest sees each physical transition exactly once
func (vc *VirtualConsole) Button(btn console.Button, presses int, down bool) {
	s := vc.session

	// the first click on a relative mode console implicitly takes the grab
	// before the click is forwarded
	if btn == console.ButtonLeft && presses == 1 && down &&
		!s.machine.IsAbsolute() && s.grab.ptrOwner != vc {
		if vc.window == 0 {
			s.GrabInput(vc, "relative-mode click")
		} else {
			s.GrabPointer(vc, "relative-mode click")
		}
	}

	if presses == 2 || presses == 3 {
		return
	}

	sink := vc.con.Sink()
	if sink == nil {
		return
	}
	sink.QueueButton(btn, down)
	sink.Sync()
}

// Scroll routes a scroll event. vertical motion takes priority over
// horizontal. each scroll step is delivered as a wheel button press and
// release
func (vc *VirtualConsole) Scroll(dx, dy float64) {
	var btn console.Button
	if dy > 0 {
		btn = console.ButtonWheelDown
	} else if dy < 0 {
		btn = console.ButtonWheelUp
	} else if dx > 0 {
		btn = console.ButtonWheelRight
	} else if dx < 0 {
		btn = console.ButtonWheelLeft
	} else {
		return
	}

	sink := vc.con.Sink()
	if sink == nil {
		return
	}
	sink.QueueButton(btn, true)
	sink.Sync()
	sink.QueueButton(btn, false)
	sink.Sync()
}

// Key routes a keyboard event. pause is set by the platform when it has
// identified the Pause key, whose scancode is unreliable across platforms
// and bypasses the keymap. text consoles delegate to their terminal
// collaborator
func (vc *VirtualConsole) Key(scancode int, pause bool, down bool) {
	code := vc.session.mapKeycode(scancode)
	if pause {
		code = console.KeyPause
	}

	if !vc.IsGraphic() {
		if vc.text != nil {
			vc.text.KeyEvent(code, down)
		}
		return
	}

	vc.gfx.kbd.KeyEvent(code, down)
}

// FocusLost lifts all held keys so none appear stuck inside the guest while
// the console cannot see the corresponding release events
func (vc *VirtualConsole) FocusLost() {
	if vc.gfx.kbd != nil {
		vc.gfx.kbd.LiftAllKeys()
	}
}

// Enter reports the pointer entering the console's window region
func (vc *VirtualConsole) Enter() {
	if vc.session.grabOnHover && vc.IsGraphic() {
		vc.session.GrabKeyboard(vc, "grab-on-hover")
	}
}

// Leave reports the pointer leaving the console's window region
func (vc *VirtualConsole) Leave() {
	if vc.session.grabOnHover && vc.session.grab.kbdOwner == vc {
		vc.session.UngrabKeyboard()
	}
}
