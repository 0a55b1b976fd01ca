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

// Package display is the core of the VM display bridge. A Session owns a
// fixed capacity collection of virtual consoles, each of which attaches to
// one guest console and implements the display side of the scanout pipeline,
// the input router and the refresh scheduler. The session also arbitrates
// pointer and keyboard grab ownership across all of its consoles.
//
// The session has no direct dependency on any windowing system or GL
// binding. All platform work goes through the capability interfaces in
// capabilities.go which the gui/sdlwin package implements. Tests substitute
// fakes.
//
// Everything in this package must be called from the single goroutine that
// owns the platform state. Notifications arriving on other goroutines are
// marshaled with Session.Post and drained by the platform's event loop with
// Session.Service.
package display
