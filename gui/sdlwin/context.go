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
	"github.com/veandco/go-sdl2/sdl"
)

// contextProvider implements the display.ContextProvider interface. contexts
// created here are shared with the platform's own context so guest textures
// are visible to the presentation path.
//
// SDL has no query for the current context that survives all platforms so
// the binding is shadowed in the current field.
type contextProvider struct {
	plt     *Platform
	current console.GLContext
}

// ContextProvider returns the platform's display.ContextProvider capability
func (p *Platform) ContextProvider() display.ContextProvider {
	return &p.ctxp
}

// CreateContext implements the display.ContextProvider interface
func (c *contextProvider) CreateContext(params display.GLParams) (console.GLContext, error) {
	// sharing requires the platform's context to be current at creation
	if err := c.plt.window.GLMakeCurrent(c.plt.glctx); err != nil {
		return nil, fmt.Errorf("sdlwin: create context: %w", err)
	}
	c.current = nil

	_ = sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, 1)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, params.Major)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, params.Minor)

	ctx, err := c.plt.window.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("sdlwin: create context: %w", err)
	}

	// context creation leaves the new context current. put the platform's
	// context back
	if err := c.plt.window.GLMakeCurrent(c.plt.glctx); err != nil {
		return nil, fmt.Errorf("sdlwin: create context: %w", err)
	}

	return ctx, nil
}

// DestroyContext implements the display.ContextProvider interface
func (c *contextProvider) DestroyContext(ctx console.GLContext) {
	glctx, ok := ctx.(sdl.GLContext)
	if !ok {
		return
	}
	sdl.GLDeleteContext(glctx)
}

// MakeCurrent implements the display.ContextProvider interface
func (c *contextProvider) MakeCurrent(ctx console.GLContext) error {
	glctx, ok := ctx.(sdl.GLContext)
	if !ok {
		return fmt.Errorf("sdlwin: make current: not an SDL context")
	}
	if err := c.plt.window.GLMakeCurrent(glctx); err != nil {
		return fmt.Errorf("sdlwin: make current: %w", err)
	}
	c.current = ctx
	return nil
}

// CurrentContext implements the display.ContextProvider interface
func (c *contextProvider) CurrentContext() console.GLContext {
	return c.current
}

// ClearCurrent implements the display.ContextProvider interface
func (c *contextProvider) ClearCurrent() {
	_ = c.plt.window.GLMakeCurrent(nil)
	c.current = nil
}
