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
	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/veandco/go-sdl2/sdl"
)

// Keymap returns the SDL scancode to guest key code translation table, for
// use with display.WithKeymap(). Scancodes without an entry translate to the
// neutral code and are absorbed before reaching the guest.
func Keymap() []console.KeyCode {
	m := make([]console.KeyCode, sdl.NUM_SCANCODES)

	set := func(scancode sdl.Scancode, code console.KeyCode) {
		m[scancode] = code
	}

	set(sdl.SCANCODE_A, console.KeyA)
	set(sdl.SCANCODE_B, console.KeyB)
	set(sdl.SCANCODE_C, console.KeyC)
	set(sdl.SCANCODE_D, console.KeyD)
	set(sdl.SCANCODE_E, console.KeyE)
	set(sdl.SCANCODE_F, console.KeyF)
	set(sdl.SCANCODE_G, console.KeyG)
	set(sdl.SCANCODE_H, console.KeyH)
	set(sdl.SCANCODE_I, console.KeyI)
	set(sdl.SCANCODE_J, console.KeyJ)
	set(sdl.SCANCODE_K, console.KeyK)
	set(sdl.SCANCODE_L, console.KeyL)
	set(sdl.SCANCODE_M, console.KeyM)
	set(sdl.SCANCODE_N, console.KeyN)
	set(sdl.SCANCODE_O, console.KeyO)
	set(sdl.SCANCODE_P, console.KeyP)
	set(sdl.SCANCODE_Q, console.KeyQ)
	set(sdl.SCANCODE_R, console.KeyR)
	set(sdl.SCANCODE_S, console.KeyS)
	set(sdl.SCANCODE_T, console.KeyT)
	set(sdl.SCANCODE_U, console.KeyU)
	set(sdl.SCANCODE_V, console.KeyV)
	set(sdl.SCANCODE_W, console.KeyW)
	set(sdl.SCANCODE_X, console.KeyX)
	set(sdl.SCANCODE_Y, console.KeyY)
	set(sdl.SCANCODE_Z, console.KeyZ)

	set(sdl.SCANCODE_1, console.Key1)
	set(sdl.SCANCODE_2, console.Key2)
	set(sdl.SCANCODE_3, console.Key3)
	set(sdl.SCANCODE_4, console.Key4)
	set(sdl.SCANCODE_5, console.Key5)
	set(sdl.SCANCODE_6, console.Key6)
	set(sdl.SCANCODE_7, console.Key7)
	set(sdl.SCANCODE_8, console.Key8)
	set(sdl.SCANCODE_9, console.Key9)
	set(sdl.SCANCODE_0, console.Key0)

	set(sdl.SCANCODE_RETURN, console.KeyRet)
	set(sdl.SCANCODE_ESCAPE, console.KeyEsc)
	set(sdl.SCANCODE_BACKSPACE, console.KeyBackspace)
	set(sdl.SCANCODE_TAB, console.KeyTab)
	set(sdl.SCANCODE_SPACE, console.KeySpc)

	set(sdl.SCANCODE_MINUS, console.KeyMinus)
	set(sdl.SCANCODE_EQUALS, console.KeyEqual)
	set(sdl.SCANCODE_LEFTBRACKET, console.KeyBracketLeft)
	set(sdl.SCANCODE_RIGHTBRACKET, console.KeyBracketRight)
	set(sdl.SCANCODE_BACKSLASH, console.KeyBackslash)
	set(sdl.SCANCODE_SEMICOLON, console.KeySemicolon)
	set(sdl.SCANCODE_APOSTROPHE, console.KeyApostrophe)
	set(sdl.SCANCODE_GRAVE, console.KeyGraveAccent)
	set(sdl.SCANCODE_COMMA, console.KeyComma)
	set(sdl.SCANCODE_PERIOD, console.KeyDot)
	set(sdl.SCANCODE_SLASH, console.KeySlash)

	set(sdl.SCANCODE_CAPSLOCK, console.KeyCapsLock)

	set(sdl.SCANCODE_F1, console.KeyF1)
	set(sdl.SCANCODE_F2, console.KeyF2)
	set(sdl.SCANCODE_F3, console.KeyF3)
	set(sdl.SCANCODE_F4, console.KeyF4)
	set(sdl.SCANCODE_F5, console.KeyF5)
	set(sdl.SCANCODE_F6, console.KeyF6)
	set(sdl.SCANCODE_F7, console.KeyF7)
	set(sdl.SCANCODE_F8, console.KeyF8)
	set(sdl.SCANCODE_F9, console.KeyF9)
	set(sdl.SCANCODE_F10, console.KeyF10)
	set(sdl.SCANCODE_F11, console.KeyF11)
	set(sdl.SCANCODE_F12, console.KeyF12)

	set(sdl.SCANCODE_PRINTSCREEN, console.KeyPrint)
	set(sdl.SCANCODE_SCROLLLOCK, console.KeyScrollLock)
	set(sdl.SCANCODE_PAUSE, console.KeyPause)

	set(sdl.SCANCODE_INSERT, console.KeyInsert)
	set(sdl.SCANCODE_HOME, console.KeyHome)
	set(sdl.SCANCODE_PAGEUP, console.KeyPgUp)
	set(sdl.SCANCODE_DELETE, console.KeyDelete)
	set(sdl.SCANCODE_END, console.KeyEnd)
	set(sdl.SCANCODE_PAGEDOWN, console.KeyPgDn)

	set(sdl.SCANCODE_RIGHT, console.KeyRight)
	set(sdl.SCANCODE_LEFT, console.KeyLeft)
	set(sdl.SCANCODE_DOWN, console.KeyDown)
	set(sdl.SCANCODE_UP, console.KeyUp)

	set(sdl.SCANCODE_NUMLOCKCLEAR, console.KeyNumLock)

	set(sdl.SCANCODE_LCTRL, console.KeyCtrlLeft)
	set(sdl.SCANCODE_LSHIFT, console.KeyShiftLeft)
	set(sdl.SCANCODE_LALT, console.KeyAltLeft)
	set(sdl.SCANCODE_LGUI, console.KeyMetaLeft)
	set(sdl.SCANCODE_RCTRL, console.KeyCtrlRight)
	set(sdl.SCANCODE_RSHIFT, console.KeyShiftRight)
	set(sdl.SCANCODE_RALT, console.KeyAltRight)
	set(sdl.SCANCODE_RGUI, console.KeyMetaRight)
	set(sdl.SCANCODE_APPLICATION, console.KeyMenu)

	return m
}
