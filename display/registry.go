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

import "errors"

// MaxConsoles is the fixed capacity of a session's console registry
const MaxConsoles = 10

// ErrRegistryFull is returned when adding a console to a full registry
var ErrRegistryFull = errors.New("maximum number of consoles reached")

// Registry is the fixed capacity, ordered collection of a session's virtual
// consoles. Indexes are stable for the lifetime of the session so a detached
// console reattaches at its original position.
type Registry struct {
	vcs [MaxConsoles]*VirtualConsole
	n   int
}

func (r *Registry) add(vc *VirtualConsole) error {
	if r.n == MaxConsoles {
		return ErrRegistryFull
	}
	vc.index = r.n
	r.vcs[r.n] = vc
	r.n++
	return nil
}

// Len returns the number of consoles in the registry
func (r *Registry) Len() int {
	return r.n
}

// ByIndex returns the console at the specified index. nil when out of range
func (r *Registry) ByIndex(index int) *VirtualConsole {
	if index < 0 || index >= r.n {
		return nil
	}
	return r.vcs[index]
}

// ByLabel returns the first console with the specified label. nil when no
// console matches
func (r *Registry) ByLabel(label string) *VirtualConsole {
	for i := 0; i < r.n; i++ {
		if r.vcs[i].label == label {
			return r.vcs[i]
		}
	}
	return nil
}

// ByWindow returns the console detached into the specified window. nil when
// no console matches
func (r *Registry) ByWindow(window WindowID) *VirtualConsole {
	if window == 0 {
		return nil
	}
	for i := 0; i < r.n; i++ {
		if r.vcs[i].window == window {
			return r.vcs[i]
		}
	}
	return nil
}

// All returns the consoles in index order
func (r *Registry) All() []*VirtualConsole {
	return r.vcs[:r.n]
}
