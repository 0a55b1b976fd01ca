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

package display_test

import (
	"errors"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/display"
)

type warp struct {
	x, y float64
}

// mockHost implements the display.WindowHost interface
type mockHost struct {
	draws       map[*display.VirtualConsole]int
	resizes     []display.Rect
	mainCaption string
	captions    map[*display.VirtualConsole]string

	winW, winH int
	winScale   float64

	workArea   display.Rect
	workAreaOK bool

	refreshRate int

	ptrX, ptrY float64
	ptrOK      bool

	warpSupported bool
	warps         []warp

	cursors    map[*display.VirtualConsole]*console.Cursor
	hidden     map[*display.VirtualConsole]bool
	fullscreen bool
}

func newMockHost() *mockHost {
	return &mockHost{
		draws:         make(map[*display.VirtualConsole]int),
		captions:      make(map[*display.VirtualConsole]string),
		cursors:       make(map[*display.VirtualConsole]*console.Cursor),
		hidden:        make(map[*display.VirtualConsole]bool),
		winW:          1280,
		winH:          960,
		winScale:      1.0,
		workArea:      display.Rect{X: 0, Y: 0, W: 1920, H: 1080},
		workAreaOK:    true,
		ptrOK:         true,
		warpSupported: true,
	}
}

func (h *mockHost) Wake() {}

func (h *mockHost) QueueDraw(vc *display.VirtualConsole) {
	h.draws[vc]++
}

func (h *mockHost) RequestResize(vc *display.VirtualConsole, w, hh int) {
	h.resizes = append(h.resizes, display.Rect{W: w, H: hh})
}

func (h *mockHost) SetMainCaption(title string) {
	h.mainCaption = title
}

func (h *mockHost) SetWindowCaption(vc *display.VirtualConsole, title string) {
	h.captions[vc] = title
}

func (h *mockHost) WindowSize(vc *display.VirtualConsole) (int, int, float64) {
	return h.winW, h.winH, h.winScale
}

func (h *mockHost) MonitorWorkArea(vc *display.VirtualConsole) (display.Rect, bool) {
	return h.workArea, h.workAreaOK
}

func (h *mockHost) MonitorRefreshRate(vc *display.VirtualConsole) int {
	return h.refreshRate
}

func (h *mockHost) PointerPosition() (float64, float64, bool) {
	return h.ptrX, h.ptrY, h.ptrOK
}

func (h *mockHost) WarpPointer(x, y float64) bool {
	if !h.warpSupported {
		return false
	}
	h.warps = append(h.warps, warp{x: x, y: y})
	return true
}

func (h *mockHost) SetCursor(vc *display.VirtualConsole, c *console.Cursor) {
	h.cursors[vc] = c
}

func (h *mockHost) HideCursor(vc *display.VirtualConsole, hide bool) {
	h.hidden[vc] = hide
}

func (h *mockHost) IsFullscreen(vc *display.VirtualConsole) bool {
	return h.fullscreen
}

// mockRenderer implements the display.Renderer interface
type mockRenderer struct {
	dmabufSupport bool
	importFail    bool
	shaderFail    bool

	nextTexture uint32

	liveShaders  int
	liveTextures map[uint32]bool

	surfaceCreates  int
	surfaceDestroys int
	surfaceUpdates  int

	imports  int
	releases int

	fences       map[*console.DmaBuf]func()
	closedFences []int
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{
		dmabufSupport: true,
		liveTextures:  make(map[uint32]bool),
		fences:        make(map[*console.DmaBuf]func()),
	}
}

type mockShader struct{}

func (r *mockRenderer) SupportsDmaBuf() bool {
	return r.dmabufSupport
}

func (r *mockRenderer) SupportedFormats() []console.PixelFormat {
	return []console.PixelFormat{console.FormatRGBA, console.FormatBGRA}
}

func (r *mockRenderer) InitShader() (display.ShaderState, error) {
	if r.shaderFail {
		return nil, errors.New("shader compilation failed")
	}
	r.liveShaders++
	return &mockShader{}, nil
}

func (r *mockRenderer) FiniShader(sh display.ShaderState) {
	r.liveShaders--
}

func (r *mockRenderer) CreateSurfaceTexture(sh display.ShaderState, s *console.Surface) error {
	r.nextTexture++
	s.Texture = r.nextTexture
	r.liveTextures[s.Texture] = true
	r.surfaceCreates++
	return nil
}

func (r *mockRenderer) DestroySurfaceTexture(sh display.ShaderState, s *console.Surface) {
	delete(r.liveTextures, s.Texture)
	s.Texture = 0
	r.surfaceDestroys++
}

func (r *mockRenderer) UpdateSurfaceTexture(sh display.ShaderState, s *console.Surface, x, y, w, h int) {
	r.surfaceUpdates++
}

func (r *mockRenderer) ImportDmaBuf(d *console.DmaBuf) error {
	if r.importFail {
		return errors.New("no EGL display")
	}
	r.nextTexture++
	d.Texture = r.nextTexture
	r.imports++
	return nil
}

func (r *mockRenderer) ReleaseDmaBuf(d *console.DmaBuf) {
	d.Texture = 0
	r.releases++
}

func (r *mockRenderer) WatchFence(d *console.DmaBuf, done func()) error {
	r.fences[d] = done
	return nil
}

func (r *mockRenderer) CloseFence(d *console.DmaBuf) {
	r.closedFences = append(r.closedFences, d.FenceFD)
}

// fire simulates the platform's fence-ready notification
func (r *mockRenderer) fire(d *console.DmaBuf) {
	if done, ok := r.fences[d]; ok {
		done()
	}
}

// mockProvider implements the display.ContextProvider interface
type mockProvider struct {
	created   int
	destroyed int
	current   console.GLContext
}

type mockContext struct {
	id int
}

func (p *mockProvider) CreateContext(params display.GLParams) (console.GLContext, error) {
	p.created++
	return &mockContext{id: p.created}, nil
}

func (p *mockProvider) DestroyContext(ctx console.GLContext) {
	p.destroyed++
}

func (p *mockProvider) MakeCurrent(ctx console.GLContext) error {
	p.current = ctx
	return nil
}

func (p *mockProvider) CurrentContext() console.GLContext {
	return p.current
}

func (p *mockProvider) ClearCurrent() {
	p.current = nil
}

// mockHooks implements the console.Callbacks interface
type mockHooks struct {
	updates int
	blocked bool
	blocks  []bool
}

func (m *mockHooks) GraphicUpdate() {
	m.updates++
}

func (m *mockHooks) GLBlock(block bool) {
	m.blocked = block
	m.blocks = append(m.blocks, block)
}

// fixture bundles everything needed by most tests: a session over a machine
// with a single graphic console
type fixture struct {
	host     *mockHost
	rnd      *mockRenderer
	provider *mockProvider
	machine  *console.Machine
	session  *display.Session
	hooks    *mockHooks
	queue    *console.Queue
	con      *console.Console
	vc       *display.VirtualConsole
}

func newFixture(opts ...display.Option) (*fixture, error) {
	f := &fixture{
		host:     newMockHost(),
		rnd:      newMockRenderer(),
		provider: &mockProvider{},
		machine:  console.NewMachine("testvm"),
		hooks:    &mockHooks{},
		queue:    console.NewQueue(64),
	}

	f.con = console.NewGraphicConsole("gfx0", nil, f.queue, f.hooks)
	f.machine.AddConsole(f.con)

	var err error
	f.session, err = display.NewSession(f.host, f.rnd, f.provider, f.machine, opts...)
	if err != nil {
		return nil, err
	}
	f.vc = f.session.ByIndex(0)

	return f, nil
}

// drain empties the console's input queue, returning all events
func (f *fixture) drain() []console.Event {
	var events []console.Event
	for {
		select {
		case batch := <-f.queue.Batches():
			events = append(events, batch...)
			continue
		default:
		}
		return events
	}
}
