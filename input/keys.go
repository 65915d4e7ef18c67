package input

import (
	"fmt"
	"strings"
)

// Key is a symbolic key identity, independent of any platform keycode
type Key string

const (
	KeyNone   Key = ""
	Key0      Key = "0"
	Key1      Key = "1"
	Key2      Key = "2"
	Key3      Key = "3"
	Key4      Key = "4"
	Key5      Key = "5"
	Key6      Key = "6"
	Key7      Key = "7"
	Key8      Key = "8"
	Key9      Key = "9"
	KeySpace  Key = "space"
	KeyDown   Key = "down"
	KeyUp     Key = "up"
	KeyEnter  Key = "enter"
	KeyEscape Key = "escape"
	KeyP      Key = "p"
	KeyR      Key = "r"
	KeyQ      Key = "q"
)

// specialNames are accepted aliases for non-rune keys
var specialNames = map[string]Key{
	"space":  KeySpace,
	" ":      KeySpace,
	"down":   KeyDown,
	"up":     KeyUp,
	"enter":  KeyEnter,
	"return": KeyEnter,
	"esc":    KeyEscape,
	"escape": KeyEscape,
}

// KeyFromRune maps a printable rune to its key identity
func KeyFromRune(r rune) Key {
	if r == ' ' {
		return KeySpace
	}
	return Key(strings.ToLower(string(r)))
}

// ParseKey resolves a key name from configuration
func ParseKey(name string) (Key, error) {
	lower := strings.ToLower(name)
	if k, ok := specialNames[lower]; ok {
		return k, nil
	}
	if len([]rune(lower)) == 1 {
		return KeyFromRune([]rune(lower)[0]), nil
	}
	return KeyNone, fmt.Errorf("input: unknown key %q", name)
}
