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
	"image"
	"image/png"
	"os"
	"time"

	"github.com/bilelmoussaoui/vmdisplay/gui/sdlwin/framebuffer"
	"github.com/bilelmoussaoui/vmdisplay/logger"
	"github.com/go-gl/gl/v3.2-core/gl"
)

// SaveScreenshot writes the current console's frame to a PNG file in the
// working directory. The frame is rendered at the console's own resolution,
// not the window's, so the letterbox and any user zoom are not included.
func (p *Platform) SaveScreenshot() error {
	vc := p.session.ByIndex(p.current)
	if vc == nil || !vc.IsGraphic() {
		return fmt.Errorf("sdlwin: screenshot: no graphic console to capture")
	}

	if err := p.window.GLMakeCurrent(p.glctx); err != nil {
		return fmt.Errorf("sdlwin: screenshot: %w", err)
	}
	p.ctxp.current = nil

	texture, w, h, flipY, crop := presentationSource(vc)
	if texture == 0 || w <= 0 || h <= 0 || p.rnd.blit == nil {
		return fmt.Errorf("sdlwin: screenshot: console has no content")
	}

	fb := framebuffer.NewSingle(true)
	defer fb.Destroy()
	fb.Setup(int32(w), int32(h))

	gl.Viewport(0, 0, int32(w), int32(h))
	fb.Process(func() {
		// rendering into the framebuffer inverts once more so the flip
		// request is reversed
		p.rnd.blit.draw(texture, !flipY, crop)
	})

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	name := fmt.Sprintf("vmdisplay_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("sdlwin: screenshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("sdlwin: screenshot: %w", err)
	}

	logger.Logf("sdlwin", "screenshot: %s", name)
	return nil
}
