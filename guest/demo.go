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

// Package guest contains a demonstration guest. It stands in for a real
// hypervisor connection: a machine with one graphic console producing an
// animated test pattern through the composited path, consuming the input
// events routed to it.
//
// The demo reacts to input. The pointer draws a crosshair, clicking flashes
// the frame border and pressing M toggles the machine between absolute and
// relative pointer mode.
package guest

import (
	"sync"

	"github.com/bilelmoussaoui/vmdisplay/console"
)

const (
	demoWidth  = 640
	demoHeight = 480
)

// Demo is a fake guest machine. it implements the console.Callbacks
// interface
type Demo struct {
	machine *console.Machine
	con     *console.Console
	queue   *console.Queue

	crit struct {
		sync.Mutex

		surface *console.Surface
		frame   int

		// pointer position in surface coordinates
		ptrX, ptrY int

		// countdown of frames left of the click flash
		flash int
	}
}

// NewDemo creates the demo guest and its machine
func NewDemo(name string) *Demo {
	d := &Demo{
		machine: console.NewMachine(name),
		queue:   console.NewQueue(256),
	}
	d.crit.surface = console.NewSurface(demoWidth, demoHeight, console.FormatRGBA)
	d.crit.ptrX = demoWidth / 2
	d.crit.ptrY = demoHeight / 2

	d.con = console.NewGraphicConsole("gfx0", d.crit.surface, d.queue, d)
	d.machine.AddConsole(d.con)

	go d.inputLoop()

	return d
}

// Machine returns the demo's guest machine
func (d *Demo) Machine() *console.Machine {
	return d.machine
}

// GraphicUpdate implements the console.Callbacks interface. called on the UI
// goroutine once per refresh tick
func (d *Demo) GraphicUpdate() {
	d.crit.Lock()
	defer d.crit.Unlock()

	d.render()
	d.crit.frame++

	d.con.UpdateRegion(0, 0, demoWidth, demoHeight)
}

// GLBlock implements the console.Callbacks interface. the demo only uses the
// composited path so there is nothing to throttle
func (d *Demo) GLBlock(block bool) {
}

// inputLoop consumes the event batches routed to the demo's console
func (d *Demo) inputLoop() {
	for batch := range d.queue.Batches() {
		for _, ev := range batch {
			d.event(ev)
		}
	}
}

func (d *Demo) event(ev console.Event) {
	switch ev.Kind {
	case console.EventAbsolute:
		d.crit.Lock()
		if ev.Axis == console.AxisX {
			d.crit.ptrX = ev.Value
		} else {
			d.crit.ptrY = ev.Value
		}
		d.crit.Unlock()

	case console.EventRelative:
		d.crit.Lock()
		if ev.Axis == console.AxisX {
			d.crit.ptrX = clamp(d.crit.ptrX+ev.Delta, 0, demoWidth-1)
		} else {
			d.crit.ptrY = clamp(d.crit.ptrY+ev.Delta, 0, demoHeight-1)
		}
		d.crit.Unlock()

	case console.EventButton:
		if ev.Down {
			d.crit.Lock()
			d.crit.flash = 10
			d.crit.Unlock()
		}

	case console.EventKey:
		if ev.Code == console.KeyM && ev.Down {
			d.machine.SetAbsolute(!d.machine.IsAbsolute())
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// render draws the test pattern into the surface. must be called with the
// crit lock held
func (d *Demo) render() {
	s := d.crit.surface
	frame := d.crit.frame

	// background gradient
	for y := 0; y < demoHeight; y++ {
		for x := 0; x < demoWidth; x++ {
			o := (y*demoWidth + x) * 4
			s.Data[o] = uint8(x * 255 / demoWidth)
			s.Data[o+1] = uint8(y * 255 / demoHeight)
			s.Data[o+2] = 64
			s.Data[o+3] = 255
		}
	}

	// moving vertical bar
	bar := (frame * 4) % demoWidth
	for y := 0; y < demoHeight; y++ {
		for x := bar; x < bar+8 && x < demoWidth; x++ {
			o := (y*demoWidth + x) * 4
			s.Data[o] = 255
			s.Data[o+1] = 255
			s.Data[o+2] = 255
		}
	}

	// pointer crosshair
	px := clamp(d.crit.ptrX, 0, demoWidth-1)
	py := clamp(d.crit.ptrY, 0, demoHeight-1)
	for x := clamp(px-10, 0, demoWidth-1); x <= clamp(px+10, 0, demoWidth-1); x++ {
		o := (py*demoWidth + x) * 4
		s.Data[o] = 255
		s.Data[o+1] = 0
		s.Data[o+2] = 0
	}
	for y := clamp(py-10, 0, demoHeight-1); y <= clamp(py+10, 0, demoHeight-1); y++ {
		o := (y*demoWidth + px) * 4
		s.Data[o] = 255
		s.Data[o+1] = 0
		s.Data[o+2] = 0
	}

	// click flash border
	if d.crit.flash > 0 {
		d.crit.flash--
		for x := 0; x < demoWidth; x++ {
			for _, y := range []int{0, 1, demoHeight - 2, demoHeight - 1} {
				o := (y*demoWidth + x) * 4
				s.Data[o] = 255
				s.Data[o+1] = 255
				s.Data[o+2] = 0
			}
		}
		for y := 0; y < demoHeight; y++ {
			for _, x := range []int{0, 1, demoWidth - 2, demoWidth - 1} {
				o := (y*demoWidth + x) * 4
				s.Data[o] = 255
				s.Data[o+1] = 255
				s.Data[o+2] = 0
			}
		}
	}
}
