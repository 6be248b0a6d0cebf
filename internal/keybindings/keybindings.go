// Package keybindings holds the key binding table layered from settings.
//
// Each settings layer may carry a "keybindings" array. Entries bind one
// key chord to one action; a later layer binding the same chord replaces
// the earlier binding, and binding a chord to null or "unbound" removes it.
// Malformed entries are skipped, and the ones worth telling the user about
// are reported as warnings.
package keybindings

import (
	"sort"

	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/config/warning"
)

// Unbound is the command literal that removes a binding.
const Unbound = "unbound"

// actionSpec describes an action and the argument it cannot do without.
type actionSpec struct {
	required string
}

var actions = map[string]actionSpec{
	"adjustFontSize":   {required: "delta"},
	"closePane":        {},
	"closeTab":         {},
	"closeWindow":      {},
	"copy":             {},
	"duplicateTab":     {},
	"find":             {},
	"moveFocus":        {required: "direction"},
	"newTab":           {},
	"nextTab":          {},
	"openSettings":     {},
	"paste":            {},
	"prevTab":          {},
	"resetFontSize":    {},
	"resizePane":       {required: "direction"},
	"scrollDown":       {},
	"scrollUp":         {},
	"splitPane":        {required: "split"},
	"switchToTab":      {required: "index"},
	"toggleFullscreen": {},
}

// Binding is one chord-to-action entry.
type Binding struct {
	Chord  Chord
	Action string
	// Args is the command object the action was read from, or Null for
	// actions given as a bare string.
	Args document.Document
}

// AppKeyBindings is the layered key binding table.
type AppKeyBindings struct {
	bindings map[string]Binding
}

// New returns an empty table.
func New() *AppKeyBindings {
	return &AppKeyBindings{bindings: make(map[string]Binding)}
}

// LayerJSON applies one layer's "keybindings" array. Entries that cannot be
// used are skipped; the returned warnings describe the ones the user should
// fix. Layering never fails.
func (b *AppKeyBindings) LayerJSON(doc document.Document) []warning.Warning {
	if doc.Kind() != document.KindArray {
		return nil
	}

	var warnings []warning.Warning
	for _, entry := range doc.Items() {
		if entry.Kind() != document.KindObject {
			continue
		}

		chordText, w, ok := chordFromEntry(entry)
		if w != nil {
			warnings = append(warnings, *w)
		}
		if !ok {
			continue
		}
		chord, err := ParseChord(chordText)
		if err != nil {
			continue
		}

		cmd, _ := entry.Lookup("command")
		action, args := parseCommand(cmd)
		spec, known := actions[action]
		if !known {
			delete(b.bindings, chord.String())
			continue
		}
		if spec.required != "" {
			if _, ok := args.Lookup(spec.required); !ok {
				warnings = append(warnings, warning.MissingRequiredParameter)
				continue
			}
		}

		b.bindings[chord.String()] = Binding{Chord: chord, Action: action, Args: args}
	}
	return warnings
}

// chordFromEntry extracts the single chord string of an entry.
func chordFromEntry(entry document.Document) (string, *warning.Warning, bool) {
	keys, ok := entry.Lookup("keys")
	if !ok {
		return "", nil, false
	}
	switch keys.Kind() {
	case document.KindString:
		return keys.String(), nil, true
	case document.KindArray:
		if keys.Len() > 1 {
			w := warning.TooManyKeysForChord
			return "", &w, false
		}
		first := keys.Index(0)
		if first.Kind() != document.KindString {
			return "", nil, false
		}
		return first.String(), nil, true
	default:
		return "", nil, false
	}
}

// parseCommand accepts "action" or {"action": "name", ...args}. Anything
// else, including null, yields the unbound action.
func parseCommand(cmd document.Document) (string, document.Document) {
	switch cmd.Kind() {
	case document.KindString:
		return cmd.String(), document.Null()
	case document.KindObject:
		name, ok := cmd.Lookup("action")
		if !ok || name.Kind() != document.KindString {
			return Unbound, document.Null()
		}
		return name.String(), cmd
	default:
		return Unbound, document.Null()
	}
}

// Lookup returns the binding for a chord given in any accepted spelling.
func (b *AppKeyBindings) Lookup(chord string) (Binding, bool) {
	c, err := ParseChord(chord)
	if err != nil {
		return Binding{}, false
	}
	binding, ok := b.bindings[c.String()]
	return binding, ok
}

// Len returns the number of bound chords.
func (b *AppKeyBindings) Len() int {
	return len(b.bindings)
}

// Bindings returns all bindings sorted by chord.
func (b *AppKeyBindings) Bindings() []Binding {
	out := make([]Binding, 0, len(b.bindings))
	for _, binding := range b.bindings {
		out = append(out, binding)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}

// Clone returns an independent copy of the table.
func (b *AppKeyBindings) Clone() *AppKeyBindings {
	c := New()
	for k, v := range b.bindings {
		c.bindings[k] = v
	}
	return c
}
