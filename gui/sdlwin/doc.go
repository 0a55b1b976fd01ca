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

// Package sdlwin is the SDL2 and OpenGL implementation of the windowing
// capabilities required by the display package.
//
// The Platform type fulfils the display.WindowHost, display.Renderer and
// display.ContextProvider roles. It must be created and serviced from the
// main goroutine. The Service() function implements one iteration of the
// event loop and is intended to be called in a tight loop:
//
//	plt, _ := sdlwin.NewPlatform(machine)
//	sess, _ := display.NewSession(plt, plt.Renderer(), plt.ContextProvider(), machine,
//		display.WithKeymap(sdlwin.Keymap()))
//	plt.Connect(sess)
//	for plt.Service() {
//	}
//
// Guest notifications arriving on other goroutines are marshalled through
// Session.Post(). The Wake() implementation pushes a user event onto the SDL
// queue so a blocked Service() call returns promptly.
//
// Dma-buf import is not supported. SDL2 with a desktop GL context offers no
// route from a dma-buf file descriptor to a texture, so SupportsDmaBuf()
// returns false and guests fall back to the composited path. Fence watching
// is supported regardless because it only needs poll(2).
package sdlwin
