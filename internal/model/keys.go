package model

import (
	"encoding/json"
	"fmt"
)

// KeyboardActionKey is the closed set of symbolic keys the engine reports:
// a fixed vocabulary of named keys plus an Unknown(code) escape hatch for
// anything unmapped.
type KeyboardActionKey struct {
	name string
	code uint32
}

// Named keyboard keys. These match the JSON value names used on the wire.
var (
	KeyCapsLock = KeyboardActionKey{name: "caps_lock"}
	KeyShift    = KeyboardActionKey{name: "shift"}
	KeyControl  = KeyboardActionKey{name: "control"}
	KeyFn       = KeyboardActionKey{name: "fn"}
	KeyAlt      = KeyboardActionKey{name: "alt"}
	KeyMeta     = KeyboardActionKey{name: "meta"}

	KeyF1  = KeyboardActionKey{name: "f1"}
	KeyF2  = KeyboardActionKey{name: "f2"}
	KeyF3  = KeyboardActionKey{name: "f3"}
	KeyF4  = KeyboardActionKey{name: "f4"}
	KeyF5  = KeyboardActionKey{name: "f5"}
	KeyF6  = KeyboardActionKey{name: "f6"}
	KeyF7  = KeyboardActionKey{name: "f7"}
	KeyF8  = KeyboardActionKey{name: "f8"}
	KeyF9  = KeyboardActionKey{name: "f9"}
	KeyF10 = KeyboardActionKey{name: "f10"}
	KeyF11 = KeyboardActionKey{name: "f11"}
	KeyF12 = KeyboardActionKey{name: "f12"}

	KeyA = KeyboardActionKey{name: "a"}
	KeyB = KeyboardActionKey{name: "b"}
	KeyC = KeyboardActionKey{name: "c"}
	KeyD = KeyboardActionKey{name: "d"}
	KeyE = KeyboardActionKey{name: "e"}
	KeyF = KeyboardActionKey{name: "f"}
	KeyG = KeyboardActionKey{name: "g"}
	KeyH = KeyboardActionKey{name: "h"}
	KeyI = KeyboardActionKey{name: "i"}
	KeyJ = KeyboardActionKey{name: "j"}
	KeyK = KeyboardActionKey{name: "k"}
	KeyL = KeyboardActionKey{name: "l"}
	KeyM = KeyboardActionKey{name: "m"}
	KeyN = KeyboardActionKey{name: "n"}
	KeyO = KeyboardActionKey{name: "o"}
	KeyP = KeyboardActionKey{name: "p"}
	KeyQ = KeyboardActionKey{name: "q"}
	KeyR = KeyboardActionKey{name: "r"}
	KeyS = KeyboardActionKey{name: "s"}
	KeyT = KeyboardActionKey{name: "t"}
	KeyU = KeyboardActionKey{name: "u"}
	KeyV = KeyboardActionKey{name: "v"}
	KeyW = KeyboardActionKey{name: "w"}
	KeyX = KeyboardActionKey{name: "x"}
	KeyY = KeyboardActionKey{name: "y"}
	KeyZ = KeyboardActionKey{name: "z"}

	KeyNum0 = KeyboardActionKey{name: "0"}
	KeyNum1 = KeyboardActionKey{name: "1"}
	KeyNum2 = KeyboardActionKey{name: "2"}
	KeyNum3 = KeyboardActionKey{name: "3"}
	KeyNum4 = KeyboardActionKey{name: "4"}
	KeyNum5 = KeyboardActionKey{name: "5"}
	KeyNum6 = KeyboardActionKey{name: "6"}
	KeyNum7 = KeyboardActionKey{name: "7"}
	KeyNum8 = KeyboardActionKey{name: "8"}
	KeyNum9 = KeyboardActionKey{name: "9"}

	KeyArrowUp    = KeyboardActionKey{name: "arrow_up"}
	KeyArrowDown  = KeyboardActionKey{name: "arrow_down"}
	KeyArrowLeft  = KeyboardActionKey{name: "arrow_left"}
	KeyArrowRight = KeyboardActionKey{name: "arrow_right"}
	KeyHome       = KeyboardActionKey{name: "home"}
	KeyEnd        = KeyboardActionKey{name: "end"}
	KeyPageUp     = KeyboardActionKey{name: "page_up"}
	KeyPageDown   = KeyboardActionKey{name: "page_down"}

	KeyEscape      = KeyboardActionKey{name: "escape"}
	KeyEnter       = KeyboardActionKey{name: "enter"}
	KeyTab         = KeyboardActionKey{name: "tab"}
	KeySpace       = KeyboardActionKey{name: "space"}
	KeyBackspace   = KeyboardActionKey{name: "backspace"}
	KeyInsert      = KeyboardActionKey{name: "insert"}
	KeyDelete      = KeyboardActionKey{name: "delete"}
	KeyNumLock     = KeyboardActionKey{name: "num_lock"}
	KeyScrollLock  = KeyboardActionKey{name: "scroll_lock"}
	KeyPause       = KeyboardActionKey{name: "pause"}
	KeyPrintScreen = KeyboardActionKey{name: "print_screen"}

	KeyGrave        = KeyboardActionKey{name: "grave"}
	KeyMinus        = KeyboardActionKey{name: "minus"}
	KeyEqual        = KeyboardActionKey{name: "equal"}
	KeyBracketLeft  = KeyboardActionKey{name: "bracket_left"}
	KeyBracketRight = KeyboardActionKey{name: "bracket_right"}
	KeySemicolon    = KeyboardActionKey{name: "semicolon"}
	KeyQuote        = KeyboardActionKey{name: "quote"}
	KeyComma        = KeyboardActionKey{name: "comma"}
	KeyPeriod       = KeyboardActionKey{name: "period"}
	KeySlash        = KeyboardActionKey{name: "slash"}
	KeyBackslash    = KeyboardActionKey{name: "backslash"}
)

// UnknownKey returns the escape-hatch variant for an unrecognized raw code.
func UnknownKey(code uint32) KeyboardActionKey {
	return KeyboardActionKey{name: "unknown", code: code}
}

// String returns the wire name for named keys, or "unknown" for unmapped codes.
func (k KeyboardActionKey) String() string {
	return k.name
}

// Code returns the raw platform code carried by Unknown keys. Zero for named keys.
func (k KeyboardActionKey) Code() uint32 {
	return k.code
}

// IsUnknown reports whether this key fell through the closed enum.
func (k KeyboardActionKey) IsUnknown() bool {
	return k.name == "unknown"
}

// MarshalJSON renders named keys as their lowercase string and Unknown keys
// as {"unknown": <code>}.
func (k KeyboardActionKey) MarshalJSON() ([]byte, error) {
	if k.IsUnknown() {
		return []byte(fmt.Sprintf(`{"unknown":%d}`, k.code)), nil
	}
	return []byte(fmt.Sprintf("%q", k.name)), nil
}

// UnmarshalJSON accepts either a bare string for named keys or
// {"unknown": <code>} for the escape-hatch variant.
func (k *KeyboardActionKey) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var wrapper struct {
			Unknown uint32 `json:"unknown"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return err
		}
		*k = UnknownKey(wrapper.Unknown)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if found, ok := keysByName[name]; ok {
		*k = found
		return nil
	}
	*k = UnknownKey(0)
	return nil
}

var keysByName = buildKeysByName()

func buildKeysByName() map[string]KeyboardActionKey {
	all := []KeyboardActionKey{
		KeyCapsLock, KeyShift, KeyControl, KeyFn, KeyAlt, KeyMeta,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyNum0, KeyNum1, KeyNum2, KeyNum3, KeyNum4, KeyNum5, KeyNum6, KeyNum7, KeyNum8, KeyNum9,
		KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight, KeyHome, KeyEnd, KeyPageUp, KeyPageDown,
		KeyEscape, KeyEnter, KeyTab, KeySpace, KeyBackspace, KeyInsert, KeyDelete,
		KeyNumLock, KeyScrollLock, KeyPause, KeyPrintScreen,
		KeyGrave, KeyMinus, KeyEqual, KeyBracketLeft, KeyBracketRight,
		KeySemicolon, KeyQuote, KeyComma, KeyPeriod, KeySlash, KeyBackslash,
	}
	m := make(map[string]KeyboardActionKey, len(all))
	for _, k := range all {
		m[k.name] = k
	}
	return m
}
