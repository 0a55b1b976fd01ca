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

package display

import (
	"fmt"

	"github.com/bilelmoussaoui/vmdisplay/console"
)

// glProvider is the console.GLProvider attached to each graphic console. it
// forwards to the session's ContextProvider while tracking the context the
// guest holds for this console
type glProvider struct {
	vc *VirtualConsole
}

// IsCompatible implements the console.GLProvider interface
func (p *glProvider) IsCompatible(l console.DisplayListener) bool {
	other, ok := l.(*VirtualConsole)
	return ok && other.session == p.vc.session
}

// CreateContext implements the console.GLProvider interface
func (p *glProvider) CreateContext(major, minor int) (console.GLContext, error) {
	ctx, err := p.vc.session.provider.CreateContext(GLParams{Major: major, Minor: minor})
	if err != nil {
		return nil, fmt.Errorf("display: %s: %w", p.vc.label, err)
	}
	p.vc.gfx.ctx = ctx
	return ctx, nil
}

// DestroyContext implements the console.GLProvider interface. destroying the
// context that is current on the calling goroutine first unbinds it, so the
// platform never destroys a bound context
func (p *glProvider) DestroyContext(ctx console.GLContext) {
	provider := p.vc.session.provider
	if provider.CurrentContext() == ctx {
		provider.ClearCurrent()
	}
	if p.vc.gfx.ctx == ctx {
		p.vc.gfx.ctx = nil
	}
	provider.DestroyContext(ctx)
}

// MakeCurrent implements the console.GLProvider interface
func (p *glProvider) MakeCurrent(ctx console.GLContext) error {
	return p.vc.session.provider.MakeCurrent(ctx)
}
