package keybindings

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptyChord   = errors.New("empty key chord")
	ErrInvalidChord = errors.New("invalid key chord")
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key.
	ModAlt

	// ModShift indicates the Shift key.
	ModShift

	// ModWin indicates the Windows/Super/Command key.
	ModWin
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the modifiers joined in canonical order, e.g. "ctrl+shift".
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModWin) {
		parts = append(parts, "win")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"shift":   ModShift,
	"win":     ModWin,
	"super":   ModWin,
	"cmd":     ModWin,
	"meta":    ModWin,
}

// keyNameMap maps accepted key names (lowercase) to their canonical name.
var keyNameMap = map[string]string{
	"enter":        "enter",
	"return":       "enter",
	"tab":          "tab",
	"esc":          "esc",
	"escape":       "esc",
	"space":        "space",
	"backspace":    "backspace",
	"delete":       "delete",
	"del":          "delete",
	"insert":       "insert",
	"ins":          "insert",
	"home":         "home",
	"end":          "end",
	"pgup":         "pgup",
	"pageup":       "pgup",
	"pgdn":         "pgdn",
	"pagedown":     "pgdn",
	"up":           "up",
	"down":         "down",
	"left":         "left",
	"right":        "right",
	"plus":         "plus",
	"app":          "app",
	"menu":         "app",
	"numpad_plus":  "numpad_plus",
	"numpad_minus": "numpad_minus",
}

// Chord is a single key combination such as ctrl+shift+t.
type Chord struct {
	Mods Modifier
	Key  string
}

// String returns the normalized form used as the binding table key.
func (c Chord) String() string {
	if c.Mods == ModNone {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// ParseChord parses a chord like "ctrl+shift+t", "alt+f4" or "enter".
// Names are case-insensitive; the last "+"-separated part is the key.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptyChord
	}

	parts := strings.Split(strings.ToLower(spec), "+")
	// A trailing "+" means the plus key itself: "ctrl++".
	if len(parts) >= 2 && parts[len(parts)-1] == "" && parts[len(parts)-2] == "" {
		parts = append(parts[:len(parts)-2], "plus")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod, ok := modifierNameMap[p]
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidChord, p)
		}
		mods |= mod
	}

	key, err := parseKey(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return Chord{}, err
	}
	return Chord{Mods: mods, Key: key}, nil
}

func parseKey(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidChord
	}
	if canonical, ok := keyNameMap[name]; ok {
		return canonical, nil
	}
	if isFunctionKey(name) || isNumpadDigit(name) {
		return name, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		return name, nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidChord, name)
}

// isFunctionKey matches f1 through f24.
func isFunctionKey(name string) bool {
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err != nil {
		return false
	}
	return n >= 1 && n <= 24 && name == fmt.Sprintf("f%d", n)
}

// isNumpadDigit matches numpad_0 through numpad_9.
func isNumpadDigit(name string) bool {
	return len(name) == len("numpad_0") && strings.HasPrefix(name, "numpad_") &&
		name[len(name)-1] >= '0' && name[len(name)-1] <= '9'
}
