package inputcapture

import (
	"unicode"

	"github.com/captureforge/engine/internal/model"
)

// keyFor classifies a raw hook event into the closed KeyboardActionKey
// enumeration. Printable keys (letters, digits, symbols) are recognized
// through the event's Keychar rune, which gohook reports consistently
// across platforms; everything else (modifiers, function, navigation, and
// special keys) is recognized through a Keycode table. Anything neither
// table recognizes becomes Unknown(code).
func keyFor(keychar rune, keycode uint16) model.KeyboardActionKey {
	if k, ok := keyFromChar(keychar); ok {
		return k
	}
	if k, ok := keyFromCode(keycode); ok {
		return k
	}
	return model.UnknownKey(uint32(keycode))
}

func keyFromChar(r rune) (model.KeyboardActionKey, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return lowerAlphaKeys[r-'a'], true
	case r >= 'A' && r <= 'Z':
		return lowerAlphaKeys[unicode.ToLower(r)-'a'], true
	case r >= '0' && r <= '9':
		return digitKeys[r-'0'], true
	}

	switch r {
	case '`':
		return model.KeyGrave, true
	case '-':
		return model.KeyMinus, true
	case '=':
		return model.KeyEqual, true
	case '[':
		return model.KeyBracketLeft, true
	case ']':
		return model.KeyBracketRight, true
	case ';':
		return model.KeySemicolon, true
	case '\'':
		return model.KeyQuote, true
	case ',':
		return model.KeyComma, true
	case '.':
		return model.KeyPeriod, true
	case '/':
		return model.KeySlash, true
	case '\\':
		return model.KeyBackslash, true
	case ' ':
		return model.KeySpace, true
	}

	return model.KeyboardActionKey{}, false
}

var lowerAlphaKeys = [26]model.KeyboardActionKey{
	model.KeyA, model.KeyB, model.KeyC, model.KeyD, model.KeyE, model.KeyF, model.KeyG,
	model.KeyH, model.KeyI, model.KeyJ, model.KeyK, model.KeyL, model.KeyM, model.KeyN,
	model.KeyO, model.KeyP, model.KeyQ, model.KeyR, model.KeyS, model.KeyT, model.KeyU,
	model.KeyV, model.KeyW, model.KeyX, model.KeyY, model.KeyZ,
}

var digitKeys = [10]model.KeyboardActionKey{
	model.KeyNum0, model.KeyNum1, model.KeyNum2, model.KeyNum3, model.KeyNum4,
	model.KeyNum5, model.KeyNum6, model.KeyNum7, model.KeyNum8, model.KeyNum9,
}

// keycodeTable maps gohook's raw (X11-derived) keycodes for non-printable
// keys to the closed enumeration. gohook reports X11 keycodes on all
// platforms (translated internally on macOS/Windows), so one table covers
// the common non-printable keys; anything absent falls through to Unknown.
var keycodeTable = map[uint16]model.KeyboardActionKey{
	66:  model.KeyCapsLock,
	50:  model.KeyShift,
	62:  model.KeyShift,
	37:  model.KeyControl,
	105: model.KeyControl,
	64:  model.KeyAlt,
	108: model.KeyAlt,
	133: model.KeyMeta,
	134: model.KeyMeta,

	67: model.KeyF1, 68: model.KeyF2, 69: model.KeyF3, 70: model.KeyF4,
	71: model.KeyF5, 72: model.KeyF6, 73: model.KeyF7, 74: model.KeyF8,
	75: model.KeyF9, 76: model.KeyF10, 95: model.KeyF11, 96: model.KeyF12,

	111: model.KeyArrowUp,
	116: model.KeyArrowDown,
	113: model.KeyArrowLeft,
	114: model.KeyArrowRight,
	110: model.KeyHome,
	115: model.KeyEnd,
	112: model.KeyPageUp,
	117: model.KeyPageDown,

	9:   model.KeyEscape,
	36:  model.KeyEnter,
	23:  model.KeyTab,
	22:  model.KeyBackspace,
	118: model.KeyInsert,
	119: model.KeyDelete,
	77:  model.KeyNumLock,
	78:  model.KeyScrollLock,
	127: model.KeyPause,
	107: model.KeyPrintScreen,
}

func keyFromCode(code uint16) (model.KeyboardActionKey, bool) {
	k, ok := keycodeTable[code]
	return k, ok
}
