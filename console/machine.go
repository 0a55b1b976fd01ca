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

package console

import (
	"sync"
)

// Machine is the guest side owner of the console collection. Consoles are
// enumerated by index in the order they were added.
//
// The pointer mode is the one piece of machine state touched from both the
// guest and the UI goroutine: the guest switches it as virtual input devices
// come and go while the display reads it on every routed pointer event. It
// is guarded accordingly. Registered notifiers are expected to enqueue work,
// not act inline.
type Machine struct {
	name     string
	consoles []*Console

	crit struct {
		sync.Mutex

		// whether the guest's pointer device reports absolute coordinates
		absolute bool

		modeNotifiers []func()
	}
}

// NewMachine creates a Machine with no consoles. The name appears in window
// captions.
func NewMachine(name string) *Machine {
	return &Machine{name: name}
}

// Name of the machine
func (m *Machine) Name() string {
	return m.name
}

// AddConsole appends a console to the machine and assigns its index
func (m *Machine) AddConsole(c *Console) {
	c.index = len(m.consoles)
	m.consoles = append(m.consoles, c)
}

// NumConsoles returns the number of consoles in the machine
func (m *Machine) NumConsoles() int {
	return len(m.consoles)
}

// LookupByIndex returns the console with the specified index. returns nil
// when the index is out of range, terminating enumeration
func (m *Machine) LookupByIndex(index int) *Console {
	if index < 0 || index >= len(m.consoles) {
		return nil
	}
	return m.consoles[index]
}

// IsAbsolute returns true while the guest's pointer device reports absolute
// coordinates. safe to call from any goroutine
func (m *Machine) IsAbsolute() bool {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.crit.absolute
}

// SetAbsolute changes the guest's pointer mode and runs the mode change
// notifiers. safe to call from any goroutine. notifiers run outside the
// machine's lock
func (m *Machine) SetAbsolute(absolute bool) {
	m.crit.Lock()
	if m.crit.absolute == absolute {
		m.crit.Unlock()
		return
	}
	m.crit.absolute = absolute
	notifiers := make([]func(), len(m.crit.modeNotifiers))
	copy(notifiers, m.crit.modeNotifiers)
	m.crit.Unlock()

	for _, f := range notifiers {
		f()
	}
}

// AddMouseModeNotifier registers a function to be run whenever the pointer
// mode changes
func (m *Machine) AddMouseModeNotifier(f func()) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.crit.modeNotifiers = append(m.crit.modeNotifiers, f)
}
