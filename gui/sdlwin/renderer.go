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

package sdlwin

import (
	"fmt"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/display"
	"github.com/go-gl/gl/v3.2-core/gl"
)

// renderer implements the display.Renderer interface on top of desktop
// OpenGL. all methods except the fence functions run on the UI goroutine with
// the platform's context current
type renderer struct {
	plt *Platform

	// the blit program is shared between consoles. created on the first
	// InitShader() and released when the last console lets go of it
	blit *blitShader
	refs int
}

// shaderToken is the per-console display.ShaderState. the interesting GL
// state lives in the shared blit program so the token carries nothing
type shaderToken struct{}

// Renderer returns the platform's display.Renderer capability
func (p *Platform) Renderer() display.Renderer {
	return &p.rnd
}

// SupportsDmaBuf implements the display.Renderer interface. always false, see
// the package documentation
func (r *renderer) SupportsDmaBuf() bool {
	return false
}

// SupportedFormats implements the display.Renderer interface
func (r *renderer) SupportedFormats() []console.PixelFormat {
	return []console.PixelFormat{
		console.FormatRGBA,
		console.FormatBGRA,
		console.FormatRGB565,
	}
}

// InitShader implements the display.Renderer interface
func (r *renderer) InitShader() (display.ShaderState, error) {
	if r.blit == nil {
		blit, err := newBlitShader()
		if err != nil {
			return nil, err
		}
		r.blit = blit
	}
	r.refs++
	return &shaderToken{}, nil
}

// FiniShader implements the display.Renderer interface
func (r *renderer) FiniShader(_ display.ShaderState) {
	r.refs--
	if r.refs <= 0 && r.blit != nil {
		r.blit.destroy()
		r.blit = nil
		r.refs = 0
	}
}

// translate a surface pixel format to a GL upload format
func glUploadFormat(f console.PixelFormat) (internal int32, format uint32, xtype uint32) {
	switch f {
	case console.FormatBGRA:
		return gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE
	case console.FormatRGB565:
		return gl.RGB, gl.RGB, gl.UNSIGNED_SHORT_5_6_5
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}

// CreateSurfaceTexture implements the display.Renderer interface
func (r *renderer) CreateSurfaceTexture(_ display.ShaderState, s *console.Surface) error {
	internal, format, xtype := glUploadFormat(s.Format)

	gl.GenTextures(1, &s.Texture)
	gl.BindTexture(gl.TEXTURE_2D, s.Texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0,
		internal, int32(s.Width), int32(s.Height), 0,
		format, xtype,
		gl.Ptr(s.Data))

	return nil
}

// DestroySurfaceTexture implements the display.Renderer interface
func (r *renderer) DestroySurfaceTexture(_ display.ShaderState, s *console.Surface) {
	if s.Texture == 0 {
		return
	}
	gl.DeleteTextures(1, &s.Texture)
	s.Texture = 0
}

// UpdateSurfaceTexture implements the display.Renderer interface
func (r *renderer) UpdateSurfaceTexture(_ display.ShaderState, s *console.Surface, x, y, w, h int) {
	_, format, xtype := glUploadFormat(s.Format)

	offset := (y*s.Width + x) * s.Format.BytesPerPixel()

	gl.BindTexture(gl.TEXTURE_2D, s.Texture)

	// the row stride of the surface data is the full surface width, not the
	// update width
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(s.Width))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		int32(x), int32(y), int32(w), int32(h),
		format, xtype,
		gl.Ptr(s.Data[offset:]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

// ImportDmaBuf implements the display.Renderer interface
func (r *renderer) ImportDmaBuf(d *console.DmaBuf) error {
	return fmt.Errorf("sdlwin: dma-buf import: %w", display.ErrUnsupported)
}

// ReleaseDmaBuf implements the display.Renderer interface
func (r *renderer) ReleaseDmaBuf(d *console.DmaBuf) {
	// import never succeeds so there is no texture to release
	d.Texture = 0
}

// CloseFence implements the display.Renderer interface
func (r *renderer) CloseFence(d *console.DmaBuf) {
	closeFence(d.FenceFD)
}

// WatchFence implements the display.Renderer interface
func (r *renderer) WatchFence(d *console.DmaBuf, done func()) error {
	return watchFence(d.FenceFD, done)
}
