package keyboard

import "github.com/virtual-input/ps2d/input"

// scanToKey is the PS/2 set 1 translation table. It deliberately covers only
// the classic main block (0x01 through 0x44, Esc through F10); scan codes
// outside the map are ignored by the decoder. Absence from the map is the
// only "no mapping" signal, so a key can never be conflated with a zero
// sentinel.
var scanToKey = map[byte]input.Key{
	0x01: input.KeyEsc,
	0x02: input.Key1,
	0x03: input.Key2,
	0x04: input.Key3,
	0x05: input.Key4,
	0x06: input.Key5,
	0x07: input.Key6,
	0x08: input.Key7,
	0x09: input.Key8,
	0x0A: input.Key9,
	0x0B: input.Key0,
	0x0C: input.KeyMinus,
	0x0D: input.KeyEqual,
	0x0E: input.KeyBackspace,
	0x0F: input.KeyTab,
	0x10: input.KeyQ,
	0x11: input.KeyW,
	0x12: input.KeyE,
	0x13: input.KeyR,
	0x14: input.KeyT,
	0x15: input.KeyY,
	0x16: input.KeyU,
	0x17: input.KeyI,
	0x18: input.KeyO,
	0x19: input.KeyP,
	0x1A: input.KeyLeftBrace,
	0x1B: input.KeyRightBrace,
	0x1C: input.KeyEnter,
	0x1D: input.KeyLeftCtrl,
	0x1E: input.KeyA,
	0x1F: input.KeyS,
	0x20: input.KeyD,
	0x21: input.KeyF,
	0x22: input.KeyG,
	0x23: input.KeyH,
	0x24: input.KeyJ,
	0x25: input.KeyK,
	0x26: input.KeyL,
	0x27: input.KeySemicolon,
	0x28: input.KeyApostrophe,
	0x29: input.KeyGrave,
	0x2A: input.KeyLeftShift,
	0x2B: input.KeyBackslash,
	0x2C: input.KeyZ,
	0x2D: input.KeyX,
	0x2E: input.KeyC,
	0x2F: input.KeyV,
	0x30: input.KeyB,
	0x31: input.KeyN,
	0x32: input.KeyM,
	0x33: input.KeyComma,
	0x34: input.KeyDot,
	0x35: input.KeySlash,
	0x36: input.KeyRightShift,
	0x37: input.KeyKpAsterisk,
	0x38: input.KeyLeftAlt,
	0x39: input.KeySpace,
	0x3A: input.KeyCapsLock,
	0x3B: input.KeyF1,
	0x3C: input.KeyF2,
	0x3D: input.KeyF3,
	0x3E: input.KeyF4,
	0x3F: input.KeyF5,
	0x40: input.KeyF6,
	0x41: input.KeyF7,
	0x42: input.KeyF8,
	0x43: input.KeyF9,
	0x44: input.KeyF10,
}
