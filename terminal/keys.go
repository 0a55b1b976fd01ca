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
	"github.com/bilelmoussaoui/vmdisplay/console"
)

// plain is the unmodified translation of a guest key code to the byte
// sequence written to the guest terminal
var plain = map[console.KeyCode]string{
	console.KeyA: "a", console.KeyB: "b", console.KeyC: "c", console.KeyD: "d",
	console.KeyE: "e", console.KeyF: "f", console.KeyG: "g", console.KeyH: "h",
	console.KeyI: "i", console.KeyJ: "j", console.KeyK: "k", console.KeyL: "l",
	console.KeyM: "m", console.KeyN: "n", console.KeyO: "o", console.KeyP: "p",
	console.KeyQ: "q", console.KeyR: "r", console.KeyS: "s", console.KeyT: "t",
	console.KeyU: "u", console.KeyV: "v", console.KeyW: "w", console.KeyX: "x",
	console.KeyY: "y", console.KeyZ: "z",

	console.Key1: "1", console.Key2: "2", console.Key3: "3", console.Key4: "4",
	console.Key5: "5", console.Key6: "6", console.Key7: "7", console.Key8: "8",
	console.Key9: "9", console.Key0: "0",

	console.KeyMinus:        "-",
	console.KeyEqual:        "=",
	console.KeyBracketLeft:  "[",
	console.KeyBracketRight: "]",
	console.KeyBackslash:    "\\",
	console.KeySemicolon:    ";",
	console.KeyApostrophe:   "'",
	console.KeyGraveAccent:  "`",
	console.KeyComma:        ",",
	console.KeyDot:          ".",
	console.KeySlash:        "/",

	console.KeyRet:       "\r",
	console.KeyEsc:       "\x1b",
	console.KeyBackspace: "\x7f",
	console.KeyTab:       "\t",
	console.KeySpc:       " ",

	console.KeyUp:     "\x1b[A",
	console.KeyDown:   "\x1b[B",
	console.KeyRight:  "\x1b[C",
	console.KeyLeft:   "\x1b[D",
	console.KeyHome:   "\x1b[H",
	console.KeyEnd:    "\x1b[F",
	console.KeyPgUp:   "\x1b[5~",
	console.KeyPgDn:   "\x1b[6~",
	console.KeyInsert: "\x1b[2~",
	console.KeyDelete: "\x1b[3~",

	console.KeyF1:  "\x1bOP",
	console.KeyF2:  "\x1bOQ",
	console.KeyF3:  "\x1bOR",
	console.KeyF4:  "\x1bOS",
	console.KeyF5:  "\x1b[15~",
	console.KeyF6:  "\x1b[17~",
	console.KeyF7:  "\x1b[18~",
	console.KeyF8:  "\x1b[19~",
	console.KeyF9:  "\x1b[20~",
	console.KeyF10: "\x1b[21~",
	console.KeyF11: "\x1b[23~",
	console.KeyF12: "\x1b[24~",
}

// shifted overrides plain while a shift key is held
var shifted = map[console.KeyCode]string{
	console.KeyA: "A", console.KeyB: "B", console.KeyC: "C", console.KeyD: "D",
	console.KeyE: "E", console.KeyF: "F", console.KeyG: "G", console.KeyH: "H",
	console.KeyI: "I", console.KeyJ: "J", console.KeyK: "K", console.KeyL: "L",
	console.KeyM: "M", console.KeyN: "N", console.KeyO: "O", console.KeyP: "P",
	console.KeyQ: "Q", console.KeyR: "R", console.KeyS: "S", console.KeyT: "T",
	console.KeyU: "U", console.KeyV: "V", console.KeyW: "W", console.KeyX: "X",
	console.KeyY: "Y", console.KeyZ: "Z",

	console.Key1: "!", console.Key2: "@", console.Key3: "#", console.Key4: "$",
	console.Key5: "%", console.Key6: "^", console.Key7: "&", console.Key8: "*",
	console.Key9: "(", console.Key0: ")",

	console.KeyMinus:        "_",
	console.KeyEqual:        "+",
	console.KeyBracketLeft:  "{",
	console.KeyBracketRight: "}",
	console.KeyBackslash:    "|",
	console.KeySemicolon:    ":",
	console.KeyApostrophe:   "\"",
	console.KeyGraveAccent:  "~",
	console.KeyComma:        "<",
	console.KeyDot:          ">",
	console.KeySlash:        "?",
}

// translate a guest key code to the bytes sent to the guest terminal. empty
// when the key has no terminal meaning
func translate(code console.KeyCode, shift bool, ctrl bool) string {
	if ctrl {
		// control characters only exist for the letter keys
		if s, ok := plain[code]; ok && len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
			return string(s[0] & 0x1f)
		}
		return ""
	}
	if shift {
		if s, ok := shifted[code]; ok {
			return s
		}
	}
	return plain[code]
}
