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

// DmaBuf is a handle to GPU buffer memory shared by the guest. The buffer is
// owned by the guest for its entire lifetime. The display imports it into a
// texture for presentation and must never treat the backing memory as its
// own.
type DmaBuf struct {
	Width  uint32
	Height uint32
	Stride uint32
	Format PixelFormat

	// FD is the file descriptor referring to the buffer memory
	FD int

	// Texture is the GL texture name assigned by the display's importer.
	// zero until import succeeds
	Texture uint32

	// FlipY is true when the buffer's scanline order is bottom-up
	FlipY bool

	// FenceFD signals when GPU work touching the buffer has completed. -1
	// when no fence is pending
	FenceFD int

	// AllowFences is true when the guest participates in fence-based frame
	// pacing. without it the display presents the buffer without blocking
	// the guest
	AllowFences bool

	// DrawSubmitted is true from the moment a draw of this buffer has been
	// submitted until the corresponding fence completes. it prevents
	// duplicate fence waits for the same frame
	DrawSubmitted bool
}

// NewDmaBuf creates a DmaBuf handle with no pending fence
func NewDmaBuf(width, height, stride uint32, format PixelFormat, fd int) *DmaBuf {
	return &DmaBuf{
		Width:   width,
		Height:  height,
		Stride:  stride,
		Format:  format,
		FD:      fd,
		FenceFD: -1,
	}
}
