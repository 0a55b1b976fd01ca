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

import (
	"testing"

	"github.com/bilelmoussaoui/vmdisplay/test"
)

func TestRing(t *testing.T) {
	r := newRing(8)
	test.ExpectEquality(t, r.String(), "")

	_, _ = r.Write([]byte("abc"))
	test.ExpectEquality(t, r.String(), "abc")

	_, _ = r.Write([]byte("de"))
	test.ExpectEquality(t, r.String(), "abcde")

	// filling the buffer exactly
	_, _ = r.Write([]byte("fgh"))
	test.ExpectEquality(t, r.String(), "abcdefgh")

	// overwriting the oldest bytes
	_, _ = r.Write([]byte("ij"))
	test.ExpectEquality(t, r.String(), "cdefghij")
}

func TestRingOversizedWrite(t *testing.T) {
	r := newRing(4)

	// only the tail of a write larger than the buffer survives
	n, err := r.Write([]byte("abcdefgh"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 8)
	test.ExpectEquality(t, r.String(), "efgh")
}

func TestRingReset(t *testing.T) {
	r := newRing(4)
	_, _ = r.Write([]byte("abcd"))
	r.Reset()
	test.ExpectEquality(t, r.String(), "")

	_, _ = r.Write([]byte("xy"))
	test.ExpectEquality(t, r.String(), "xy")
}
