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

package guest_test

import (
	"testing"
	"time"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/guest"
	"github.com/bilelmoussaoui/vmdisplay/test"
)

// waitForMode polls the machine's pointer mode until it reaches the wanted
// state or the deadline passes. the toggle happens on the demo's input
// goroutine so the test cannot observe it synchronously
func waitForMode(t *testing.T, m *console.Machine, absolute bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.IsAbsolute() == absolute {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timeout waiting for pointer mode %v", absolute)
}

func TestDemoMachine(t *testing.T) {
	d := guest.NewDemo("testvm")
	m := d.Machine()

	test.ExpectEquality(t, m.Name(), "testvm")
	test.DemandEquality(t, m.NumConsoles(), 1)

	con := m.LookupByIndex(0)
	test.ExpectEquality(t, con.Label(), "gfx0")
	test.ExpectEquality(t, con.IsGraphic(), true)
	test.DemandEquality(t, con.Surface() != nil, true)
	test.ExpectEquality(t, con.Surface().IsPlaceholder(), false)
}

func TestDemoPointerModeToggle(t *testing.T) {
	d := guest.NewDemo("testvm")
	m := d.Machine()
	sink := m.LookupByIndex(0).Sink()
	test.DemandEquality(t, sink != nil, true)

	test.ExpectEquality(t, m.IsAbsolute(), false)

	// the M key toggles the machine's pointer mode. the key event is routed
	// from this goroutine, standing in for the UI goroutine, while the mode
	// flag is written by the demo's input goroutine and read back here.
	// meaningful under the race detector
	sink.KeyEvent(console.KeyM, true)
	sink.Sync()
	waitForMode(t, m, true)

	sink.KeyEvent(console.KeyM, false)
	sink.Sync()
	sink.KeyEvent(console.KeyM, true)
	sink.Sync()
	waitForMode(t, m, false)

	// reads from this side interleave with the demo's writes
	for i := 0; i < 100; i++ {
		_ = m.IsAbsolute()
	}
}
