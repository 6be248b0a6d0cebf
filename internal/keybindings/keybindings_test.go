package keybindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/config/warning"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"ctrl+shift+t", "ctrl+shift+t"},
		{"Shift+Ctrl+T", "ctrl+shift+t"},
		{"alt+f4", "alt+f4"},
		{"enter", "enter"},
		{"ctrl+Return", "ctrl+enter"},
		{"win+pageup", "win+pgup"},
		{"ctrl++", "ctrl+plus"},
		{"ctrl+numpad_5", "ctrl+numpad_5"},
		{" ctrl + c ", "ctrl+c"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := ParseChord(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestParseChord_Errors(t *testing.T) {
	_, err := ParseChord("")
	assert.ErrorIs(t, err, ErrEmptyChord)

	for _, spec := range []string{"hyper+a", "ctrl+", "ctrl+notakey", "f25", "f01"} {
		_, err := ParseChord(spec)
		assert.ErrorIs(t, err, ErrInvalidChord, spec)
	}
}

func TestLayerJSON(t *testing.T) {
	b := New()
	warnings := b.LayerJSON(document.MustParse(`[
		{"command": "copy", "keys": "ctrl+c"},
		{"command": {"action": "switchToTab", "index": 0}, "keys": ["ctrl+alt+1"]},
		{"command": "paste", "keys": "ctrl+v"}
	]`))
	assert.Empty(t, warnings)
	assert.Equal(t, 3, b.Len())

	copyBinding, ok := b.Lookup("Ctrl+C")
	require.True(t, ok)
	assert.Equal(t, "copy", copyBinding.Action)

	tab, ok := b.Lookup("ctrl+alt+1")
	require.True(t, ok)
	assert.Equal(t, "switchToTab", tab.Action)
	index, ok := tab.Args.Lookup("index")
	require.True(t, ok)
	assert.Equal(t, int64(0), index.Int())
}

func TestLayerJSON_Warnings(t *testing.T) {
	b := New()
	warnings := b.LayerJSON(document.MustParse(`[
		{"command": "copy", "keys": ["ctrl+c", "ctrl+insert"]},
		{"command": {"action": "moveFocus"}, "keys": "alt+left"},
		{"command": "paste", "keys": "ctrl+v"}
	]`))

	assert.Equal(t, []warning.Warning{
		warning.TooManyKeysForChord,
		warning.MissingRequiredParameter,
	}, warnings)
	assert.Equal(t, 1, b.Len())
	_, ok := b.Lookup("alt+left")
	assert.False(t, ok)
}

func TestLayerJSON_SkipsMalformed(t *testing.T) {
	b := New()
	warnings := b.LayerJSON(document.MustParse(`[
		"copy",
		{"command": "copy"},
		{"command": "copy", "keys": 5},
		{"command": "copy", "keys": "hyper+c"},
		{"command": "copy", "keys": []}
	]`))
	assert.Empty(t, warnings)
	assert.Equal(t, 0, b.Len())

	assert.Nil(t, b.LayerJSON(document.MustParse(`{"copy": "ctrl+c"}`)))
}

func TestLayerJSON_LaterLayerOverrides(t *testing.T) {
	b := New()
	b.LayerJSON(document.MustParse(`[
		{"command": "copy", "keys": "ctrl+c"},
		{"command": "paste", "keys": "ctrl+v"},
		{"command": "find", "keys": "ctrl+f"}
	]`))
	b.LayerJSON(document.MustParse(`[
		{"command": "closeTab", "keys": "ctrl+c"},
		{"command": null, "keys": "ctrl+v"},
		{"command": "unbound", "keys": "ctrl+f"},
		{"command": "notARealAction", "keys": "ctrl+n"}
	]`))

	assert.Equal(t, 1, b.Len())
	c, ok := b.Lookup("ctrl+c")
	require.True(t, ok)
	assert.Equal(t, "closeTab", c.Action)
}

func TestBindings_Sorted(t *testing.T) {
	b := New()
	b.LayerJSON(document.MustParse(`[
		{"command": "paste", "keys": "ctrl+v"},
		{"command": "copy", "keys": "ctrl+c"}
	]`))

	all := b.Bindings()
	require.Len(t, all, 2)
	assert.Equal(t, "ctrl+c", all[0].Chord.String())
	assert.Equal(t, "ctrl+v", all[1].Chord.String())

	clone := b.Clone()
	b.LayerJSON(document.MustParse(`[{"command": null, "keys": "ctrl+c"}]`))
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, 1, b.Len())
}
