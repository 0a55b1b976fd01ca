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
	"fmt"

	"github.com/bilelmoussaoui/vmdisplay/logger"
)

// the hint appended to the main window caption while it holds a grab
const grabHint = " - Press Ctrl+Alt+G to release grab"

// PointerOwner returns the console that owns the pointer. nil when no grab
// is active
func (s *Session) PointerOwner() *VirtualConsole {
	return s.grab.ptrOwner
}

// KeyboardOwner returns the console that owns the keyboard. nil when no grab
// is active
func (s *Session) KeyboardOwner() *VirtualConsole {
	return s.grab.kbdOwner
}

// GrabPointer makes the console the pointer owner. An existing grab by
// another console is released first so there is never more than one owner.
func (s *Session) GrabPointer(vc *VirtualConsole, reason string) {
	if s.grab.ptrOwner == vc {
		return
	}
	if s.grab.ptrOwner != nil {
		s.UngrabPointer()
	}

	// remember where the pointer was so it can be put back on ungrab
	if x, y, ok := s.host.PointerPosition(); ok {
		s.grabX = x
		s.grabY = y
	}

	s.grab.ptrOwner = vc
	s.updateCaption()
	s.updateCursor(vc)
	logger.Logf("grab", "%s: pointer grabbed (%s)", vc.label, reason)
}

// UngrabPointer releases the pointer grab, if any
func (s *Session) UngrabPointer() {
	vc := s.grab.ptrOwner
	if vc == nil {
		return
	}
	s.grab.ptrOwner = nil

	// put the pointer back where it was when the grab was taken. on
	// platforms without a warp primitive the pointer stays where it is
	s.host.WarpPointer(s.grabX, s.grabY)

	s.updateCaption()
	s.updateCursor(vc)
	logger.Logf("grab", "%s: pointer ungrabbed", vc.label)
}

// GrabKeyboard makes the console the keyboard owner. An existing grab by
// another console is released first.
func (s *Session) GrabKeyboard(vc *VirtualConsole, reason string) {
	if s.grab.kbdOwner == vc {
		return
	}
	if s.grab.kbdOwner != nil {
		s.UngrabKeyboard()
	}

	s.grab.kbdOwner = vc
	s.updateCaption()
	logger.Logf("grab", "%s: keyboard grabbed (%s)", vc.label, reason)
}

// UngrabKeyboard releases the keyboard grab, if any
func (s *Session) UngrabKeyboard() {
	vc := s.grab.kbdOwner
	if vc == nil {
		return
	}
	s.grab.kbdOwner = nil
	s.updateCaption()
	logger.Logf("grab", "%s: keyboard ungrabbed", vc.label)
}

// GrabInput grabs both pointer and keyboard for a console hosted in the main
// window. this is the grab taken by the grab hotkey
func (s *Session) GrabInput(vc *VirtualConsole, reason string) {
	s.GrabKeyboard(vc, reason)
	s.GrabPointer(vc, reason)
}

// UngrabInput releases both grabs
func (s *Session) UngrabInput() {
	s.UngrabKeyboard()
	s.UngrabPointer()
}

// InputGrabbed returns true while a main window console owns both pointer
// and keyboard
func (s *Session) InputGrabbed() bool {
	return s.grab.ptrOwner != nil && s.grab.kbdOwner != nil &&
		s.grab.ptrOwner == s.grab.kbdOwner && s.grab.ptrOwner.window == 0
}

// ToggleGrabInput is the handler for the grab hotkey
func (s *Session) ToggleGrabInput(vc *VirtualConsole) {
	if s.InputGrabbed() {
		s.UngrabInput()
	} else {
		s.GrabInput(vc, "hotkey")
	}
}

// mouseModeChanged reacts to the guest switching between absolute and
// relative pointer devices. a switch to absolute mode releases the pointer
// grab, but only when the owner is hosted in the main window. a detached
// console keeps its grab
func (s *Session) mouseModeChanged() {
	if s.machine.IsAbsolute() && s.grab.ptrOwner != nil && s.grab.ptrOwner.window == 0 {
		s.UngrabPointer()
	}
	for _, vc := range s.vcs.All() {
		s.updateCursor(vc)
	}
}

// updateCaption rebuilds the main window caption and the captions of all
// detached windows. grab ownership is reflected with "+kbd" and "+ptr"
// suffixes
func (s *Session) updateCaption() {
	prefix := "VMDisplay"
	if name := s.machine.Name(); name != "" {
		prefix = fmt.Sprintf("VMDisplay (%s)", name)
	}

	title := prefix
	if s.grab.ptrOwner != nil && s.grab.ptrOwner.window == 0 {
		title += grabHint
	}
	s.host.SetMainCaption(title)

	for _, vc := range s.vcs.All() {
		if vc.window == 0 {
			continue
		}
		t := fmt.Sprintf("%s: %s", prefix, vc.label)
		if vc == s.grab.kbdOwner {
			t += " +kbd"
		}
		if vc == s.grab.ptrOwner {
			t += " +ptr"
		}
		s.host.SetWindowCaption(vc, t)
	}
}

// updateCursor applies the cursor visibility policy for a graphic console:
// the host cursor is hidden when the console is fullscreen, when the guest
// pointer device is absolute, or while the console owns the pointer grab
func (s *Session) updateCursor(vc *VirtualConsole) {
	if !vc.IsGraphic() {
		return
	}
	hide := s.host.IsFullscreen(vc) ||
		s.machine.IsAbsolute() ||
		s.grab.ptrOwner == vc
	s.host.HideCursor(vc, hide)
}
