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
	"time"

	"github.com/bilelmoussaoui/vmdisplay/console"
)

// RefreshIntervalDefault is the refresh interval used when the monitor's
// refresh rate is unknown. it is also the ceiling: a monitor slower than
// this does not slow the guest down further
const RefreshIntervalDefault = 30 * time.Millisecond

// RefreshInterval returns the interval at which the host should tick this
// console
func (vc *VirtualConsole) RefreshInterval() time.Duration {
	return vc.gfx.refreshInterval
}

// Refresh implements the console.DisplayListener interface. It is the
// periodic tick: the refresh interval is brought in line with the monitor,
// the guest is asked to produce a frame, and any composited updates that
// accumulated since the last tick are coalesced into a single redraw.
func (vc *VirtualConsole) Refresh() {
	vc.updateRefreshInterval()

	vc.con.GraphicUpdate()

	if vc.gfx.updates > 0 {
		vc.gfx.updates = 0
		vc.session.host.QueueDraw(vc)
	}
}

// updateRefreshInterval derives the tick interval from the monitor's
// refresh rate and reports the current display geometry back to the guest
func (vc *VirtualConsole) updateRefreshInterval() {
	s := vc.session

	rate := s.host.MonitorRefreshRate(vc)
	w, h, _ := s.host.WindowSize(vc)

	info := console.UIInfo{
		Width:       w,
		Height:      h,
		RefreshRate: rate,
	}
	if info != vc.con.UIInfo() {
		vc.con.SetUIInfo(info)
	}

	if rate <= 0 {
		vc.gfx.refreshInterval = RefreshIntervalDefault
		return
	}

	// rate is in millihertz so the interval in milliseconds is 1e6/rate.
	// clamped so a slow monitor never drops below the default cadence
	interval := time.Duration(1000*1000/rate) * time.Millisecond
	if interval > RefreshIntervalDefault {
		interval = RefreshIntervalDefault
	}
	vc.gfx.refreshInterval = interval
}
