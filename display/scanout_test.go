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
	"testing"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/test"
)

func TestPlaceholderHoldsNoGLResources(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	// the console starts with a placeholder surface and must not have
	// acquired any GL resources for it
	test.DemandEquality(t, f.vc.Surface().IsPlaceholder(), true)
	test.ExpectEquality(t, f.rnd.liveShaders, 0)
	test.ExpectEquality(t, f.rnd.surfaceCreates, 0)

	// the first real surface brings the GL resources up
	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))
	test.ExpectEquality(t, f.rnd.liveShaders, 1)
	test.ExpectEquality(t, f.rnd.surfaceCreates, 1)
}

func TestGfxSwitchResizeOnDimensionChangeOnly(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	// placeholder is 640x480 so a real surface of the same size changes
	// nothing about the window
	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))
	test.ExpectEquality(t, len(f.host.resizes), 0)

	// new dimensions follow through to the window
	f.con.SetSurface(console.NewSurface(800, 600, console.FormatRGBA))
	test.DemandEquality(t, len(f.host.resizes), 1)
	test.ExpectEquality(t, f.host.resizes[0].W, 800)
	test.ExpectEquality(t, f.host.resizes[0].H, 600)

	// same dimensions again: no resize
	f.con.SetSurface(console.NewSurface(800, 600, console.FormatRGBA))
	test.ExpectEquality(t, len(f.host.resizes), 1)
}

func TestGfxSwitchReplacesTexture(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))
	f.con.SetSurface(console.NewSurface(800, 600, console.FormatRGBA))

	// the old surface texture was destroyed, exactly one texture is live
	test.ExpectEquality(t, f.rnd.surfaceDestroys, 1)
	test.ExpectEquality(t, len(f.rnd.liveTextures), 1)
	test.ExpectEquality(t, f.rnd.liveShaders, 1)
}

func TestGfxUpdateCoalescing(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	// several updates between refresh ticks coalesce into one redraw
	f.con.UpdateRegion(0, 0, 10, 10)
	f.con.UpdateRegion(10, 10, 20, 20)
	f.con.UpdateRegion(0, 0, 640, 480)
	test.ExpectEquality(t, f.rnd.surfaceUpdates, 3)
	test.ExpectEquality(t, f.host.draws[f.vc], 0)

	f.vc.Refresh()
	test.ExpectEquality(t, f.host.draws[f.vc], 1)

	// a tick with no pending updates queues nothing
	f.vc.Refresh()
	test.ExpectEquality(t, f.host.draws[f.vc], 1)
}

func TestScanoutTextureAdoption(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	f.con.ScanoutTexture(7, false, 1024, 768, 0, 0, 1024, 768)
	test.ExpectEquality(t, f.vc.ScanoutMode(), true)

	texture, w, h, _, valid := f.vc.ScanoutSource()
	test.DemandEquality(t, valid, true)
	test.ExpectEquality(t, texture, uint32(7))
	test.ExpectEquality(t, w, uint32(1024))
	test.ExpectEquality(t, h, uint32(768))
}

func TestScanoutZeroTextureReturnsToComposited(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))
	creates := f.rnd.surfaceCreates

	f.con.ScanoutTexture(7, false, 1024, 768, 0, 0, 1024, 768)
	test.DemandEquality(t, f.vc.ScanoutMode(), true)

	// a zero texture id ends scanout. the guest source is released and the
	// stale surface texture recreated
	f.con.ScanoutTexture(0, false, 0, 0, 0, 0, 1024, 768)
	test.ExpectEquality(t, f.vc.ScanoutMode(), false)

	_, _, _, _, valid := f.vc.ScanoutSource()
	test.ExpectEquality(t, valid, false)
	test.ExpectEquality(t, f.rnd.surfaceDestroys, 1)
	test.ExpectEquality(t, f.rnd.surfaceCreates, creates+1)
	test.ExpectEquality(t, len(f.rnd.liveTextures), 1)
}

func TestScanoutZeroDimensionsReturnToComposited(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))
	f.con.ScanoutTexture(7, false, 1024, 768, 0, 0, 1024, 768)
	test.DemandEquality(t, f.vc.ScanoutMode(), true)

	f.con.ScanoutTexture(7, false, 1024, 768, 0, 0, 0, 0)
	test.ExpectEquality(t, f.vc.ScanoutMode(), false)
}

func TestScanoutDmaBufImportFailure(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))
	f.rnd.importFail = true

	// a failed import is logged and ignored. the console stays composited
	d := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 10)
	f.con.ScanoutDmaBuf(d)
	test.ExpectEquality(t, f.vc.ScanoutMode(), false)
	test.ExpectEquality(t, d.Texture, uint32(0))
}

func TestScanoutFenceLifecycle(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	d := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 10)
	d.AllowFences = true
	d.FenceFD = 5

	f.con.ScanoutDmaBuf(d)
	test.DemandEquality(t, f.vc.ScanoutMode(), true)
	test.ExpectEquality(t, f.rnd.imports, 1)

	// first flush blocks the guest and submits the frame
	f.con.ScanoutFlush(0, 0, 1024, 768)
	test.ExpectEquality(t, f.hooks.blocked, true)
	test.ExpectEquality(t, d.DrawSubmitted, true)
	test.ExpectEquality(t, f.host.draws[f.vc], 1)

	// a second flush before the fence completes must not block again but
	// still queues a redraw
	f.con.ScanoutFlush(0, 0, 1024, 768)
	test.ExpectEquality(t, len(f.hooks.blocks), 1)
	test.ExpectEquality(t, f.host.draws[f.vc], 2)

	// fence completion closes the descriptor and unblocks the guest
	f.rnd.fire(d)
	f.session.Service()
	test.ExpectEquality(t, f.hooks.blocked, false)
	test.ExpectEquality(t, d.FenceFD, -1)
	test.ExpectEquality(t, d.DrawSubmitted, false)
	test.DemandEquality(t, len(f.rnd.closedFences), 1)
	test.ExpectEquality(t, f.rnd.closedFences[0], 5)
}

func TestFenceSingleFire(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	d := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 10)
	d.AllowFences = true
	d.FenceFD = 5

	f.con.ScanoutDmaBuf(d)
	f.con.ScanoutFlush(0, 0, 1024, 768)
	test.DemandEquality(t, f.hooks.blocked, true)

	// tearing scanout down while the fence is pending forcibly completes
	// it so the guest is not left blocked
	f.con.ScanoutDisable()
	test.ExpectEquality(t, f.hooks.blocked, false)
	test.ExpectEquality(t, d.FenceFD, -1)
	test.DemandEquality(t, len(f.rnd.closedFences), 1)

	// the late fence notification finds the fence already completed and
	// does nothing
	f.rnd.fire(d)
	f.session.Service()
	test.ExpectEquality(t, len(f.rnd.closedFences), 1)
	test.ExpectEquality(t, len(f.hooks.blocks), 2)
}

func TestFlushWithoutFences(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	// a guest that does not participate in fencing is never blocked
	d := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 10)
	f.con.ScanoutDmaBuf(d)
	f.con.ScanoutFlush(0, 0, 1024, 768)
	test.ExpectEquality(t, f.hooks.blocked, false)
	test.ExpectEquality(t, d.DrawSubmitted, false)
	test.ExpectEquality(t, f.host.draws[f.vc], 1)
}

func TestScanoutReplacementReleasesOlderFence(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	d1 := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 10)
	d1.AllowFences = true
	d1.FenceFD = 5
	f.con.ScanoutDmaBuf(d1)
	f.con.ScanoutFlush(0, 0, 1024, 768)
	test.DemandEquality(t, f.hooks.blocked, true)

	// adopting a newer source completes the older fence first
	d2 := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 11)
	d2.AllowFences = true
	d2.FenceFD = 6
	f.con.ScanoutDmaBuf(d2)
	test.ExpectEquality(t, f.hooks.blocked, false)
	test.ExpectEquality(t, d1.FenceFD, -1)

	texture, _, _, _, valid := f.vc.ScanoutSource()
	test.DemandEquality(t, valid, true)
	test.ExpectEquality(t, texture, d2.Texture)
}

func TestReleaseDmaBuf(t *testing.T) {
	f, err := newFixture()
	test.DemandSuccess(t, err)

	f.con.SetSurface(console.NewSurface(640, 480, console.FormatRGBA))

	d := console.NewDmaBuf(1024, 768, 4096, console.FormatRGBA, 10)
	d.AllowFences = true
	d.FenceFD = 5
	f.con.ScanoutDmaBuf(d)
	f.con.ScanoutFlush(0, 0, 1024, 768)

	f.con.ReleaseDmaBuf(d)
	test.ExpectEquality(t, f.hooks.blocked, false)
	test.ExpectEquality(t, f.rnd.releases, 1)

	_, _, _, _, valid := f.vc.ScanoutSource()
	test.ExpectEquality(t, valid, false)
}
