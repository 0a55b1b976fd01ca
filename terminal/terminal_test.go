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

package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/test"
)

func TestTranslate(t *testing.T) {
	test.ExpectEquality(t, translate(console.KeyA, false, false), "a")
	test.ExpectEquality(t, translate(console.KeyA, true, false), "A")
	test.ExpectEquality(t, translate(console.Key1, true, false), "!")
	test.ExpectEquality(t, translate(console.KeyRet, false, false), "\r")
	test.ExpectEquality(t, translate(console.KeyUp, false, false), "\x1b[A")

	// ctrl-c
	test.ExpectEquality(t, translate(console.KeyC, false, true), "\x03")

	// ctrl only applies to letters
	test.ExpectEquality(t, translate(console.Key1, false, true), "")

	// keys with no terminal meaning
	test.ExpectEquality(t, translate(console.KeyCapsLock, false, false), "")
	test.ExpectEquality(t, translate(console.KeyUnmapped, false, false), "")
}

// waitFor polls the terminal's scrollback until the condition is met or the
// deadline passes
func waitFor(t *testing.T, term *Terminal, cond func(string) bool) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s, err := term.Copy()
		test.DemandSuccess(t, err)
		if cond(s) {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	s, _ := term.Copy()
	t.Fatalf("timeout waiting for scrollback, have %q", s)
	return s
}

func TestTerminalScrollback(t *testing.T) {
	term, err := New("serial0")
	test.DemandSuccess(t, err)
	defer term.Close()

	// guest output appears in the scrollback
	_, err = term.TTY().WriteString("login: ")
	test.DemandSuccess(t, err)

	out := waitFor(t, term, func(s string) bool {
		return strings.Contains(s, "login: ")
	})
	test.ExpectEquality(t, strings.Contains(out, "login: "), true)
}

func TestTerminalKeyEvents(t *testing.T) {
	term, err := New("serial0")
	test.DemandSuccess(t, err)
	defer term.Close()

	// key presses reach the guest side of the pty. the slave echoes by
	// default so the typed characters come back around into the scrollback
	term.KeyEvent(console.KeyShiftLeft, true)
	term.KeyEvent(console.KeyH, true)
	term.KeyEvent(console.KeyH, false)
	term.KeyEvent(console.KeyShiftLeft, false)
	term.KeyEvent(console.KeyI, true)
	term.KeyEvent(console.KeyI, false)

	waitFor(t, term, func(s string) bool {
		return strings.Contains(s, "Hi")
	})
}

func TestTerminalModifierTracking(t *testing.T) {
	term, err := New("serial0")
	test.DemandSuccess(t, err)
	defer term.Close()

	// a released shift no longer applies
	term.KeyEvent(console.KeyShiftLeft, true)
	term.KeyEvent(console.KeyShiftLeft, false)
	term.KeyEvent(console.KeyA, true)

	waitFor(t, term, func(s string) bool {
		return strings.Contains(s, "a")
	})
}
