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

package logger

import (
	"strings"
	"testing"

	"github.com/bilelmoussaoui/vmdisplay/test"
)

func TestLogger(t *testing.T) {
	l := newLogger(100)

	tw := &test.CompareWriter{}

	l.write(tw)
	test.ExpectEquality(t, tw.Compare(""), true)

	l.log("test", "this is a test")
	l.write(tw)
	test.ExpectEquality(t, tw.Compare("test: this is a test\n"), true)

	tw.Clear()
	l.log("test2", "this is another test")
	l.write(tw)
	test.ExpectEquality(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)
}

func TestLoggerRepeatFolding(t *testing.T) {
	l := newLogger(100)

	l.log("tag", "same detail")
	l.log("tag", "same detail")
	l.log("tag", "same detail")

	tw := &test.CompareWriter{}
	l.write(tw)
	test.ExpectEquality(t, tw.Compare("tag: same detail (repeat x3)\n"), true)

	// a different detail breaks the fold
	tw.Clear()
	l.log("tag", "new detail")
	l.write(tw)
	test.ExpectEquality(t, tw.Compare("tag: same detail (repeat x3)\ntag: new detail\n"), true)
}

func TestLoggerMaxEntries(t *testing.T) {
	l := newLogger(2)

	l.log("tag", "a")
	l.log("tag", "b")
	l.log("tag", "c")

	test.ExpectEquality(t, len(l.entries), 2)

	tw := &test.CompareWriter{}
	l.write(tw)
	test.ExpectEquality(t, tw.Compare("tag: b\ntag: c\n"), true)
}

func TestLoggerTail(t *testing.T) {
	l := newLogger(100)

	l.log("tag", "a")
	l.log("tag", "b")
	l.log("tag", "c")

	tw := &test.CompareWriter{}
	l.tail(tw, 2)
	test.ExpectEquality(t, tw.Compare("tag: b\ntag: c\n"), true)

	// tail larger than the number of entries is capped
	tw.Clear()
	l.tail(tw, 100)
	test.ExpectEquality(t, tw.Compare("tag: a\ntag: b\ntag: c\n"), true)
}

func TestLoggerNewlineStripping(t *testing.T) {
	l := newLogger(100)

	l.log("tag", "multi\nline\ndetail")

	tw := &test.CompareWriter{}
	l.write(tw)
	test.ExpectEquality(t, strings.Count(tw.String(), "\n"), 1)
}

func TestLoggerEcho(t *testing.T) {
	l := newLogger(100)

	tw := &test.CompareWriter{}
	l.setEcho(tw)

	l.log("tag", "echoed")
	test.ExpectEquality(t, tw.Compare("tag: echoed\n"), true)

	l.setEcho(nil)
	l.log("tag", "not echoed")
	test.ExpectEquality(t, tw.Compare("tag: echoed\n"), true)
}
