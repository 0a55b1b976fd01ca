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
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
)

const blitVertexShader = `
#version 150

in vec2 Position;
in vec2 UV;
uniform float FlipY;
uniform vec4 Crop;
out vec2 Frag_UV;

void main()
{
	vec2 uv = vec2(UV.x, mix(UV.y, 1.0 - UV.y, FlipY));
	Frag_UV = Crop.xy + uv * Crop.zw;
	gl_Position = vec4(Position, 0.0, 1.0);
}
`

const blitFragmentShader = `
#version 150

uniform sampler2D Texture;
in vec2 Frag_UV;
out vec4 Out_Color;

void main()
{
	Out_Color = texture(Texture, Frag_UV.st);
}
`

// a fullscreen quad as a triangle strip. interleaved position and UV
var blitQuad = []float32{
	-1.0, -1.0, 0.0, 1.0,
	1.0, -1.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0,
	1.0, 1.0, 1.0, 0.0,
}

// blitShader presents a single texture into the current viewport
type blitShader struct {
	handle uint32

	vao uint32
	vbo uint32

	// "uniform" variables to pass to shader
	texture int32
	flipY   int32
	crop    int32

	attribPosition int32
	attribUV       int32
}

func newBlitShader() (*blitShader, error) {
	sh := &blitShader{}

	if err := sh.createProgram(blitVertexShader, blitFragmentShader); err != nil {
		return nil, err
	}

	sh.texture = gl.GetUniformLocation(sh.handle, gl.Str("Texture"+"\x00"))
	sh.flipY = gl.GetUniformLocation(sh.handle, gl.Str("FlipY"+"\x00"))
	sh.crop = gl.GetUniformLocation(sh.handle, gl.Str("Crop"+"\x00"))
	sh.attribPosition = gl.GetAttribLocation(sh.handle, gl.Str("Position"+"\x00"))
	sh.attribUV = gl.GetAttribLocation(sh.handle, gl.Str("UV"+"\x00"))

	gl.GenVertexArrays(1, &sh.vao)
	gl.BindVertexArray(sh.vao)
	gl.GenBuffers(1, &sh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, sh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(blitQuad)*4, gl.Ptr(blitQuad), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(uint32(sh.attribPosition))
	gl.EnableVertexAttribArray(uint32(sh.attribUV))
	gl.VertexAttribPointerWithOffset(uint32(sh.attribPosition), 2, gl.FLOAT, false, 16, 0)
	gl.VertexAttribPointerWithOffset(uint32(sh.attribUV), 2, gl.FLOAT, false, 16, 8)

	gl.BindVertexArray(0)

	return sh, nil
}

func (sh *blitShader) destroy() {
	if sh.vbo != 0 {
		gl.DeleteBuffers(1, &sh.vbo)
		sh.vbo = 0
	}
	if sh.vao != 0 {
		gl.DeleteVertexArrays(1, &sh.vao)
		sh.vao = 0
	}
	if sh.handle != 0 {
		gl.DeleteProgram(sh.handle)
		sh.handle = 0
	}
}

// draw a region of the texture into the current viewport. crop coordinates
// are normalised. the region is stretched to fill the viewport so
// letterboxing is the caller's responsibility
func (sh *blitShader) draw(texture uint32, flipY bool, crop [4]float32) {
	gl.UseProgram(sh.handle)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(sh.texture, 0)
	if flipY {
		gl.Uniform1f(sh.flipY, 1.0)
	} else {
		gl.Uniform1f(sh.flipY, 0.0)
	}
	gl.Uniform4f(sh.crop, crop[0], crop[1], crop[2], crop[3])
	gl.BindVertexArray(sh.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// compile and link the shader program
func (sh *blitShader) createProgram(vertProgram string, fragProgram string) error {
	sh.handle = gl.CreateProgram()

	vertHandle := gl.CreateShader(gl.VERTEX_SHADER)
	fragHandle := gl.CreateShader(gl.FRAGMENT_SHADER)

	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
	}

	glShaderSource(vertHandle, vertProgram)
	glShaderSource(fragHandle, fragProgram)

	gl.CompileShader(vertHandle)
	if log := getShaderCompileError(vertHandle); log != "" {
		return fmt.Errorf("sdlwin: vertex shader: %s", log)
	}

	gl.CompileShader(fragHandle)
	if log := getShaderCompileError(fragHandle); log != "" {
		return fmt.Errorf("sdlwin: fragment shader: %s", log)
	}

	gl.AttachShader(sh.handle, vertHandle)
	gl.AttachShader(sh.handle, fragHandle)
	gl.LinkProgram(sh.handle)

	// "delete" shaders now that they've been linked
	gl.DeleteShader(vertHandle)
	gl.DeleteShader(fragHandle)

	return nil
}

// getShaderCompileError returns the most recent error generated
// by the shader compiler
func getShaderCompileError(shader uint32) string {
	var isCompiled int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &isCompiled)
	if isCompiled == 0 {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		if logLength > 0 {
			// enough space for shader log
			log := strings.Repeat("\x00", int(logLength+1))
			gl.GetShaderInfoLog(shader, logLength, &logLength, gl.Str(log))
			return log
		}
	}
	return ""
}
