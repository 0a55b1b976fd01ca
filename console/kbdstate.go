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

// KbdState tracks which guest keys are currently held down through a
// console's input sink. Keeping the pressed set here means keys can be lifted
// when the host window loses focus, preventing keys from appearing stuck
// inside the guest.
type KbdState struct {
	sink InputSink
	down map[KeyCode]bool
}

// NewKbdState creates a KbdState feeding the specified sink
func NewKbdState(sink InputSink) *KbdState {
	return &KbdState{
		sink: sink,
		down: make(map[KeyCode]bool),
	}
}

// KeyEvent forwards a key transition to the sink. Events that do not change
// the pressed state (host auto-repeat, a release of a key that was never
// pressed) are suppressed. The no-op code KeyUnmapped is ignored.
func (k *KbdState) KeyEvent(code KeyCode, down bool) {
	if code == KeyUnmapped || code >= NumKeyCodes {
		return
	}
	if k.down[code] == down {
		return
	}
	if down {
		k.down[code] = true
	} else {
		delete(k.down, code)
	}
	if k.sink == nil {
		return
	}
	k.sink.KeyEvent(code, down)
	k.sink.Sync()
}

// IsDown returns true if the key is currently held
func (k *KbdState) IsDown(code KeyCode) bool {
	return k.down[code]
}

// NumDown returns the number of keys currently held
func (k *KbdState) NumDown() int {
	return len(k.down)
}

// LiftAllKeys releases every held key. called when the console's window
// loses focus or is unmapped
func (k *KbdState) LiftAllKeys() {
	for code := range k.down {
		k.KeyEvent(code, false)
	}
}
