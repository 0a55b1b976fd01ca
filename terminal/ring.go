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

package terminal

// ring is a fixed size byte buffer. once full, new bytes overwrite the
// oldest. not safe for concurrent use
type ring struct {
	buf  []byte
	head int
	full bool
}

func newRing(size int) *ring {
	return &ring{
		buf: make([]byte, size),
	}
}

// Write implements the io.Writer interface. it never fails
func (r *ring) Write(p []byte) (int, error) {
	n := len(p)

	// only the last len(buf) bytes can survive
	if len(p) > len(r.buf) {
		p = p[len(p)-len(r.buf):]
	}

	c := copy(r.buf[r.head:], p)
	if c < len(p) {
		copy(r.buf, p[c:])
		r.full = true
	}

	r.head = (r.head + len(p)) % len(r.buf)
	if r.head == 0 && len(p) > 0 && c == len(p) {
		r.full = true
	}

	return n, nil
}

// String returns the buffered bytes, oldest first
func (r *ring) String() string {
	if !r.full {
		return string(r.buf[:r.head])
	}
	return string(r.buf[r.head:]) + string(r.buf[:r.head])
}

// Reset empties the buffer
func (r *ring) Reset() {
	r.head = 0
	r.full = false
}
