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

// PixelFormat describes the layout of pixel data in a Surface
type PixelFormat int

// List of valid PixelFormat values
const (
	FormatRGBA PixelFormat = iota
	FormatBGRA
	FormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatBGRA:
		return "BGRA"
	case FormatRGB565:
		return "RGB565"
	}
	return "unknown"
}

// BytesPerPixel returns the storage size of a single pixel in the format
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatRGB565 {
		return 2
	}
	return 4
}

// Surface is a CPU visible frame produced by the guest (or by the display
// itself in the case of a placeholder). The display layer mirrors the surface
// into a GPU texture for presentation.
type Surface struct {
	Width  int
	Height int
	Format PixelFormat

	// Data is the pixel storage. length is Width*Height*BytesPerPixel
	Data []byte

	// Texture is the GL texture name mirroring this surface. it is assigned
	// and owned by the display layer. zero when no texture exists
	Texture uint32

	// a placeholder surface is created by the display core as a stand-in
	// before the guest has produced any real content
	placeholder bool
}

// NewSurface creates a Surface of the specified dimensions. Pixel data is
// allocated but not initialised.
func NewSurface(width, height int, format PixelFormat) *Surface {
	return &Surface{
		Width:  width,
		Height: height,
		Format: format,
		Data:   make([]byte, width*height*format.BytesPerPixel()),
	}
}

// NewPlaceholderSurface creates a Surface that stands in for a console that
// has not yet produced any content
func NewPlaceholderSurface(width, height int) *Surface {
	s := NewSurface(width, height, FormatRGBA)
	s.placeholder = true
	return s
}

// IsPlaceholder returns true if the surface is a display-created stand-in
// rather than real guest content
func (s *Surface) IsPlaceholder() bool {
	return s.placeholder
}

// Cursor is a guest supplied pointer image with a hotspot
type Cursor struct {
	Width  int
	Height int
	HotX   int
	HotY   int

	// Data is RGBA pixel data of length Width*Height*4
	Data []byte
}
