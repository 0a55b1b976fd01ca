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

// Package framebuffer provides a convenient way of working with OpenGL
// framebuffers. The Single type wraps one framebuffer object with one colour
// texture attachment.
//
// The Setup() function must be called at least once after NewSingle() and
// called as often as necessary to ensure the dimensions (width and height)
// are correct.
//
//	hasChanged := fb.Setup(800, 600)
//
// Setup() returns true if the texture data has been recreated in accordance
// with new dimensions.
//
// The Process() function assigns the framebuffer object and, for
// convenience, runs the supplied draw() function. The texture ID is returned
// and can be used for presentation.
package framebuffer
