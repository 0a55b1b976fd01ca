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

package console

// KeyCode is a guest keyboard code, independent of any host scancode space.
// KeyUnmapped is the zero value and is a neutral no-op code.
type KeyCode int

// List of valid KeyCode values
const (
	KeyUnmapped KeyCode = iota
	KeyEsc
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyBackspace
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyBracketLeft
	KeyBracketRight
	KeyRet
	KeyCtrlLeft
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyApostrophe
	KeyGraveAccent
	KeyShiftLeft
	KeyBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash
	KeyShiftRight
	KeyAltLeft
	KeySpc
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyNumLock
	KeyScrollLock
	KeyCtrlRight
	KeyAltRight
	KeyHome
	KeyUp
	KeyPgUp
	KeyLeft
	KeyRight
	KeyEnd
	KeyDown
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyMetaLeft
	KeyMetaRight
	KeyMenu
	KeyPause
	KeyPrint
	KeySysRq

	// NumKeyCodes is not a valid code. it bounds the KeyCode space
	NumKeyCodes
)
