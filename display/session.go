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

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/logger"
)

// dimensions of the placeholder surface shown before the guest produces any
// content
const (
	placeholderWidth  = 640
	placeholderHeight = 480
)

// grabState records which console, if any, owns the pointer and keyboard
type grabState struct {
	ptrOwner *VirtualConsole
	kbdOwner *VirtualConsole
}

// Session is the display side of one guest machine. It owns the console
// registry and arbitrates input grabs across all consoles.
type Session struct {
	host     WindowHost
	rnd      Renderer
	provider ContextProvider
	machine  *console.Machine

	vcs Registry

	grab grabState

	// pointer position at the time of the last grab, for restoring on
	// ungrab
	grabX, grabY float64

	// guest coordinates of the last routed motion event. relative deltas
	// are computed against these. lastSet is cleared after a pointer warp
	// so the jump does not register as movement
	lastX, lastY int
	lastSet     bool

	// scancode indexed translation table, loaded once at construction
	keymap []console.KeyCode

	// functions posted from other goroutines, drained by the event loop
	service chan func()

	grabOnHover bool
}

// Option modifies the behaviour of a new Session
type Option func(s *Session)

// WithKeymap supplies the platform's scancode translation table
func WithKeymap(keymap []console.KeyCode) Option {
	return func(s *Session) {
		s.keymap = keymap
	}
}

// WithGrabOnHover makes the keyboard follow the pointer: entering a graphic
// console grabs the keyboard, leaving releases it
func WithGrabOnHover() Option {
	return func(s *Session) {
		s.grabOnHover = true
	}
}

// NewSession creates a Session for the machine's consoles. A virtual console
// is created for each guest console, in enumeration order. The provider may
// be nil on platforms that cannot share rendering contexts with the guest.
func NewSession(host WindowHost, rnd Renderer, provider ContextProvider,
	machine *console.Machine, opts ...Option) (*Session, error) {

	s := &Session{
		host:     host,
		rnd:      rnd,
		provider: provider,
		machine:  machine,
		service:  make(chan func(), 64),
	}

	for _, opt := range opts {
		opt(s)
	}

	for i := 0; ; i++ {
		con := machine.LookupByIndex(i)
		if con == nil {
			break
		}

		vc := &VirtualConsole{
			session: s,
			label:   con.Label(),
			con:     con,
			scale:   1.0,
		}
		if vc.label == "" {
			vc.label = fmt.Sprintf("vc%d", i)
		}

		if err := s.vcs.add(vc); err != nil {
			return nil, fmt.Errorf("display: %s: %w", vc.label, err)
		}

		if con.IsGraphic() {
			vc.gfx.kbd = console.NewKbdState(con.Sink())
			vc.gfx.refreshInterval = RefreshIntervalDefault

			if con.Surface() == nil {
				con.SetSurface(console.NewPlaceholderSurface(placeholderWidth, placeholderHeight))
			}
			if s.provider != nil {
				con.SetGLProvider(&glProvider{vc: vc})
			}
			con.AttachListener(vc)
		}

		logger.Logf("display", "console %d: %s", i, vc.label)
	}

	machine.AddMouseModeNotifier(func() {
		s.Post(s.mouseModeChanged)
	})

	s.updateCaption()

	return s, nil
}

// Machine returns the guest machine this session displays
func (s *Session) Machine() *console.Machine {
	return s.machine
}

// Consoles returns the session's virtual consoles in registry order
func (s *Session) Consoles() []*VirtualConsole {
	return s.vcs.All()
}

// ByIndex returns the console at the specified registry index. nil when out
// of range
func (s *Session) ByIndex(index int) *VirtualConsole {
	return s.vcs.ByIndex(index)
}

// ByLabel returns the first console with the specified label
func (s *Session) ByLabel(label string) *VirtualConsole {
	return s.vcs.ByLabel(label)
}

// ByWindow returns the console detached into the specified window
func (s *Session) ByWindow(window WindowID) *VirtualConsole {
	return s.vcs.ByWindow(window)
}

// Post enqueues a function to be run on the UI goroutine. safe to call from
// any goroutine. blocks if the service queue is full
func (s *Session) Post(f func()) {
	s.service <- f
	s.host.Wake()
}

// Service runs all pending posted functions. must be called from the UI
// goroutine, typically once per event loop iteration
func (s *Session) Service() {
	for {
		select {
		case f := <-s.service:
			f()
		default:
			return
		}
	}
}

// BindTextConsole connects a terminal collaborator to the non-graphic
// console with the specified label
func (s *Session) BindTextConsole(label string, tc TextConsole) error {
	vc := s.vcs.ByLabel(label)
	if vc == nil {
		return fmt.Errorf("display: no console with label %s", label)
	}
	if vc.IsGraphic() {
		return fmt.Errorf("display: %s is not a text console", label)
	}
	vc.text = tc
	return nil
}

// Copy returns the recent terminal output of a text console. it is an error
// to request a copy from a graphic console
func (s *Session) Copy(vc *VirtualConsole) (string, error) {
	if vc.text == nil {
		return "", fmt.Errorf("display: %s: copy requested on a non-text console", vc.label)
	}
	return vc.text.Copy()
}

// Detach moves a console into its own host window. The host creates the
// window first and passes its identity here.
func (s *Session) Detach(vc *VirtualConsole, window WindowID) {
	if vc.window != 0 || window == 0 {
		return
	}
	vc.window = window

	// moving a graphic console out of the main window releases the main
	// window's input grab
	if vc.IsGraphic() {
		s.UngrabInput()
	}

	s.updateCaption()
	s.updateCursor(vc)
}

// Attach returns a detached console to the main window. Its registry index
// is unchanged so it reappears at its original position.
func (s *Session) Attach(vc *VirtualConsole) {
	if vc.window == 0 {
		return
	}

	if s.grab.ptrOwner == vc {
		s.UngrabPointer()
	}
	if s.grab.kbdOwner == vc {
		s.UngrabKeyboard()
	}

	vc.window = 0
	s.updateCaption()
	s.updateCursor(vc)
}
