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

package display_test

import (
	"strings"
	"testing"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/display"
	"github.com/bilelmoussaoui/vmdisplay/test"
)

// twoConsoleFixture is a fixture with a second graphic console added
func twoConsoleFixture(t *testing.T) (*fixture, *display.VirtualConsole) {
	t.Helper()

	f := &fixture{
		host:     newMockHost(),
		rnd:      newMockRenderer(),
		provider: &mockProvider{},
		machine:  console.NewMachine("testvm"),
		hooks:    &mockHooks{},
		queue:    console.NewQueue(64),
	}
	f.con = console.NewGraphicConsole("gfx0", nil, f.queue, f.hooks)
	f.machine.AddConsole(f.con)
	f.machine.AddConsole(console.NewGraphicConsole("gfx1", nil, console.NewQueue(64), nil))

	var err error
	f.session, err = display.NewSession(f.host, f.rnd, f.provider, f.machine)
	test.DemandSuccess(t, err)
	f.vc = f.session.ByIndex(0)

	return f, f.session.ByIndex(1)
}

func TestGrabHandoff(t *testing.T) {
	f, vcB := twoConsoleFixture(t)
	vcA := f.vc

	// detach B so its caption can be observed
	f.session.Detach(vcB, 1)

	f.session.GrabPointer(vcA, "test")
	test.ExpectEquality(t, f.session.PointerOwner(), vcA)

	// a later grab wins. the earlier owner is released as part of the
	// handoff and the caption follows the new owner
	f.session.GrabPointer(vcB, "test")
	test.ExpectEquality(t, f.session.PointerOwner(), vcB)
	test.ExpectEquality(t, strings.HasSuffix(f.host.captions[vcB], "+ptr"), true)

	// grabbing the console that already owns the pointer changes nothing
	f.session.GrabPointer(vcB, "test")
	test.ExpectEquality(t, f.session.PointerOwner(), vcB)
}

func TestGrabCaptionHint(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.host.mainCaption, "VMDisplay (testvm)")

	// a main window grab advertises the release hotkey in the caption
	f.session.GrabInput(f.vc, "test")
	test.ExpectEquality(t, strings.Contains(f.host.mainCaption, "release grab"), true)

	f.session.UngrabInput()
	test.ExpectEquality(t, f.host.mainCaption, "VMDisplay (testvm)")
}

func TestDetachedCaptionReflectsGrabs(t *testing.T) {
	f, vcB := twoConsoleFixture(t)

	f.session.Detach(vcB, 1)
	test.ExpectEquality(t, f.host.captions[vcB], "VMDisplay (testvm): gfx1")

	f.session.GrabKeyboard(vcB, "test")
	f.session.GrabPointer(vcB, "test")
	test.ExpectEquality(t, f.host.captions[vcB], "VMDisplay (testvm): gfx1 +kbd +ptr")

	// a detached window grab leaves the main caption alone
	test.ExpectEquality(t, f.host.mainCaption, "VMDisplay (testvm)")
}

func TestMouseModeChangeReleasesMainWindowGrab(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.session.GrabPointer(f.vc, "test")
	test.DemandEquality(t, f.session.PointerOwner(), f.vc)

	// the guest switching to an absolute pointer device makes the grab
	// pointless for a main window console
	f.machine.SetAbsolute(true)
	f.session.Service()
	test.ExpectEquality(t, f.session.PointerOwner(), (*display.VirtualConsole)(nil))
}

func TestMouseModeChangeKeepsDetachedGrab(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.session.Detach(f.vc, 1)
	f.session.GrabPointer(f.vc, "test")

	// a detached console retains its grab across the mode change
	f.machine.SetAbsolute(true)
	f.session.Service()
	test.ExpectEquality(t, f.session.PointerOwner(), f.vc)
}

func TestUngrabRestoresPointerPosition(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.host.ptrX = 100
	f.host.ptrY = 200
	f.session.GrabPointer(f.vc, "test")

	f.host.ptrX = 500
	f.host.ptrY = 500
	f.session.UngrabPointer()

	test.DemandEquality(t, len(f.host.warps), 1)
	test.ExpectEquality(t, f.host.warps[0].x, 100.0)
	test.ExpectEquality(t, f.host.warps[0].y, 200.0)
}

func TestUngrabWithoutWarpPrimitive(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.host.warpSupported = false
	f.session.GrabPointer(f.vc, "test")
	f.session.UngrabPointer()

	// no warp happened but the grab is still released
	test.ExpectEquality(t, len(f.host.warps), 0)
	test.ExpectEquality(t, f.session.PointerOwner(), (*display.VirtualConsole)(nil))
}

func TestToggleGrabInput(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.session.ToggleGrabInput(f.vc)
	test.ExpectEquality(t, f.session.InputGrabbed(), true)
	test.ExpectEquality(t, f.session.PointerOwner(), f.vc)
	test.ExpectEquality(t, f.session.KeyboardOwner(), f.vc)

	f.session.ToggleGrabInput(f.vc)
	test.ExpectEquality(t, f.session.InputGrabbed(), false)
	test.ExpectEquality(t, f.session.PointerOwner(), (*display.VirtualConsole)(nil))
}

func TestCursorVisibilityPolicy(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	// pointer grab hides the host cursor over the console
	f.session.GrabPointer(f.vc, "test")
	test.ExpectEquality(t, f.host.hidden[f.vc], true)
	f.session.UngrabPointer()
	test.ExpectEquality(t, f.host.hidden[f.vc], false)

	// absolute mode hides it too. the guest draws its own cursor
	f.machine.SetAbsolute(true)
	f.session.Service()
	test.ExpectEquality(t, f.host.hidden[f.vc], true)
}

func TestDetachReleasesMainWindowGrab(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.session.GrabInput(f.vc, "test")
	test.DemandEquality(t, f.session.InputGrabbed(), true)

	f.session.Detach(f.vc, 1)
	test.ExpectEquality(t, f.session.PointerOwner(), (*display.VirtualConsole)(nil))
	test.ExpectEquality(t, f.session.KeyboardOwner(), (*display.VirtualConsole)(nil))
	test.ExpectEquality(t, f.vc.Window(), display.WindowID(1))
}

func TestAttachReleasesOwnWindowGrab(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.session.Detach(f.vc, 1)
	f.session.GrabPointer(f.vc, "test")
	f.session.GrabKeyboard(f.vc, "test")

	f.session.Attach(f.vc)
	test.ExpectEquality(t, f.vc.Window(), display.WindowID(0))
	test.ExpectEquality(t, f.session.PointerOwner(), (*display.VirtualConsole)(nil))
	test.ExpectEquality(t, f.session.KeyboardOwner(), (*display.VirtualConsole)(nil))
}

func TestGrabOnHover(t *testing.T) {
	f, err := newFixture(display.WithGrabOnHover())
	test.DemandSuccess(t, err)

	f.vc.Enter()
	test.ExpectEquality(t, f.session.KeyboardOwner(), f.vc)

	f.vc.Leave()
	test.ExpectEquality(t, f.session.KeyboardOwner(), (*display.VirtualConsole)(nil))
}
