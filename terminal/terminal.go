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

// Package terminal is the text console collaborator for non-graphic
// consoles. The guest side of the console is a pseudo terminal: whatever the
// guest runs on the slave end appears in the scrollback and key events
// routed to the console are written to the master end.
//
// The host's own terminal can be bridged to the console with Attach(), which
// puts it into raw mode for the duration.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/logger"
	"github.com/creack/pty"
	"github.com/pkg/term"
)

// size of the scrollback buffer in bytes
const scrollbackSize = 64 * 1024

// Terminal is a pty backed text console. it implements the
// display.TextConsole interface
type Terminal struct {
	label string

	// master and slave ends of the pty
	ptmx *os.File
	tty  *os.File

	// whether key events are echoed into the scrollback. useful when the
	// guest program does not echo for itself
	echo bool

	crit struct {
		sync.Mutex

		scrollback *ring

		// non-nil while a host terminal is attached
		attached *term.Term

		// modifier state for key translation
		shift int
		ctrl  int
	}
}

// Option modifies a new Terminal
type Option func(t *Terminal)

// WithEcho makes the terminal echo key events into its own scrollback
func WithEcho() Option {
	return func(t *Terminal) {
		t.echo = true
	}
}

// New creates a Terminal with a fresh pty pair. The guest attaches to the
// slave end, the name of which is available through TTYName().
func New(label string, opts ...Option) (*Terminal, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("terminal: %s: %w", label, err)
	}

	t := &Terminal{
		label: label,
		ptmx:  ptmx,
		tty:   tty,
	}
	t.crit.scrollback = newRing(scrollbackSize)

	for _, opt := range opts {
		opt(t)
	}

	go t.reader()

	logger.Logf("terminal", "%s: pty %s", label, tty.Name())

	return t, nil
}

// reader drains the master end of the pty into the scrollback and, when a
// host terminal is attached, into that terminal
func (t *Terminal) reader() {
	buf := make([]byte, 4096)
	for {
		n, err := t.ptmx.Read(buf)
		if n > 0 {
			t.crit.Lock()
			_, _ = t.crit.scrollback.Write(buf[:n])
			if t.crit.attached != nil {
				_, _ = t.crit.attached.Write(buf[:n])
			}
			t.crit.Unlock()
		}
		if err != nil {
			if err != io.EOF {
				logger.Logf("terminal", "%s: %v", t.label, err)
			}
			return
		}
	}
}

// Label identifies the terminal
func (t *Terminal) Label() string {
	return t.label
}

// TTYName returns the filesystem name of the slave end of the pty
func (t *Terminal) TTYName() string {
	return t.tty.Name()
}

// TTY returns the slave end of the pty. the guest reads and writes this file
func (t *Terminal) TTY() *os.File {
	return t.tty
}

// Close releases the pty. any attached host terminal is detached first
func (t *Terminal) Close() error {
	t.Detach()
	_ = t.tty.Close()
	return t.ptmx.Close()
}

// KeyEvent implements the display.TextConsole interface. key presses are
// translated to bytes on the guest's terminal. releases only affect modifier
// tracking
func (t *Terminal) KeyEvent(code console.KeyCode, down bool) {
	t.crit.Lock()
	defer t.crit.Unlock()

	d := 1
	if !down {
		d = -1
	}

	switch code {
	case console.KeyShiftLeft, console.KeyShiftRight:
		t.crit.shift += d
		if t.crit.shift < 0 {
			t.crit.shift = 0
		}
		return
	case console.KeyCtrlLeft, console.KeyCtrlRight:
		t.crit.ctrl += d
		if t.crit.ctrl < 0 {
			t.crit.ctrl = 0
		}
		return
	}

	if !down {
		return
	}

	s := translate(code, t.crit.shift > 0, t.crit.ctrl > 0)
	if s == "" {
		return
	}

	if _, err := t.ptmx.WriteString(s); err != nil {
		logger.Logf("terminal", "%s: %v", t.label, err)
		return
	}

	if t.echo {
		_, _ = t.crit.scrollback.Write([]byte(s))
	}
}

// Copy implements the display.TextConsole interface. it returns the
// scrollback contents, oldest bytes first
func (t *Terminal) Copy() (string, error) {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.crit.scrollback.String(), nil
}

// Attach bridges the named host terminal, typically /dev/tty, to the guest's
// terminal. the host terminal is put into raw mode so control sequences pass
// through unharmed. Detach() restores it.
func (t *Terminal) Attach(name string) error {
	hostTerm, err := term.Open(name)
	if err != nil {
		return fmt.Errorf("terminal: %s: %w", t.label, err)
	}

	if err := term.RawMode(hostTerm); err != nil {
		_ = hostTerm.Close()
		return fmt.Errorf("terminal: %s: %w", t.label, err)
	}

	t.crit.Lock()
	if t.crit.attached != nil {
		t.crit.Unlock()
		_ = hostTerm.Restore()
		_ = hostTerm.Close()
		return fmt.Errorf("terminal: %s: already attached", t.label)
	}
	t.crit.attached = hostTerm
	t.crit.Unlock()

	// host input runs on its own goroutine until the terminal is detached
	go func() {
		_, _ = io.Copy(t.ptmx, hostTerm)
	}()

	logger.Logf("terminal", "%s: attached to %s", t.label, name)

	return nil
}

// Detach restores and releases the attached host terminal, if any
func (t *Terminal) Detach() {
	t.crit.Lock()
	hostTerm := t.crit.attached
	t.crit.attached = nil
	t.crit.Unlock()

	if hostTerm == nil {
		return
	}

	_ = hostTerm.Restore()
	_ = hostTerm.Close()
	logger.Logf("terminal", "%s: detached", t.label)
}
