package input

import "strconv"

// Key identifies a logical keyboard key, independent of the scan code set
// that produced it. The zero value is KeyNone so "no mapping" can never be
// confused with a real key.
type Key uint16

const (
	KeyNone Key = iota

	KeyEsc

	// Number row
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

	// Letters
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
	KeyLeftBrace
	KeyRightBrace
	KeyEnter
	KeyLeftCtrl
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
	KeyGrave
	KeyLeftShift
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
	KeyRightShift
	KeyKpAsterisk
	KeyLeftAlt
	KeySpace
	KeyCapsLock

	// Function keys
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
)

// KeyName maps logical keys to human-readable names. Used by the API event
// feed and the watch viewer.
var KeyName = map[Key]string{
	KeyEsc: "Esc",

	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",
	KeyMinus:     "Minus",
	KeyEqual:     "Equal",
	KeyBackspace: "Backspace",

	KeyTab: "Tab",

	KeyQ: "Q", KeyW: "W", KeyE: "E", KeyR: "R", KeyT: "T", KeyY: "Y",
	KeyU: "U", KeyI: "I", KeyO: "O", KeyP: "P",
	KeyLeftBrace:  "LeftBrace",
	KeyRightBrace: "RightBrace",
	KeyEnter:      "Enter",
	KeyLeftCtrl:   "LeftCtrl",
	KeyA: "A", KeyS: "S", KeyD: "D", KeyF: "F", KeyG: "G", KeyH: "H",
	KeyJ: "J", KeyK: "K", KeyL: "L",
	KeySemicolon:  "Semicolon",
	KeyApostrophe: "Apostrophe",
	KeyGrave:      "Grave",
	KeyLeftShift:  "LeftShift",
	KeyBackslash:  "Backslash",
	KeyZ: "Z", KeyX: "X", KeyC: "C", KeyV: "V", KeyB: "B", KeyN: "N", KeyM: "M",
	KeyComma:      "Comma",
	KeyDot:        "Dot",
	KeySlash:      "Slash",
	KeyRightShift: "RightShift",
	KeyKpAsterisk: "KpAsterisk",
	KeyLeftAlt:    "LeftAlt",
	KeySpace:      "Space",
	KeyCapsLock:   "CapsLock",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",
}

// String returns the key name, or "Key(n)" for keys without a name entry.
func (k Key) String() string {
	if n, ok := KeyName[k]; ok {
		return n
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}
