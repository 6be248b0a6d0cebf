package settings

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/termconf/internal/config/convert"
	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/config/warning"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, uuid.Nil, s.DefaultProfile)
	assert.True(t, s.AlwaysShowTabs)
	assert.True(t, s.ConfirmCloseAllTabs)
	assert.Equal(t, 30, s.InitialRows)
	assert.Equal(t, 120, s.InitialCols)
	assert.Equal(t, 0, s.RowsToScroll)
	assert.False(t, s.InitialPosition.X.IsSet())
	assert.False(t, s.InitialPosition.Y.IsSet())
	assert.True(t, s.ShowTitleInTitlebar)
	assert.True(t, s.ShowTabsInTitlebar)
	assert.Equal(t, DefaultWordDelimiters, s.WordDelimiters)
	assert.False(t, s.CopyOnSelect)
	assert.False(t, s.CopyFormatting)
	assert.Equal(t, LaunchModeDefault, s.LaunchMode)
	assert.Equal(t, ThemeDefault, s.Theme)
	assert.Equal(t, TabWidthEqual, s.TabWidthMode)
	assert.True(t, s.SnapToGridOnResize)
	assert.False(t, s.DebugFeatures)
	assert.Equal(t, 0, s.Keybindings().Len())
	assert.Empty(t, s.KeybindingsWarnings())
}

func TestLayerJSON_Scalars(t *testing.T) {
	s := New()
	err := s.LayerJSON(document.MustParse(`{
		"initialRows": 40,
		"copyOnSelect": true,
		"theme": "dark",
		"launchMode": "maximized",
		"tabWidthMode": "titleLength",
		"defaultProfile": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
		"someFutureSetting": [1, 2, 3]
	}`))
	require.NoError(t, err)

	assert.Equal(t, 40, s.InitialRows)
	assert.Equal(t, 120, s.InitialCols)
	assert.True(t, s.CopyOnSelect)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Equal(t, LaunchModeMaximized, s.LaunchMode)
	assert.Equal(t, TabWidthSizeToContent, s.TabWidthMode)
	assert.Equal(t, uuid.MustParse("61c54bbd-c2c6-5271-96e7-009a87ff44bf"), s.DefaultProfile)
}

func TestLayerJSON_Layers(t *testing.T) {
	s := New()
	require.NoError(t, s.LayerJSON(document.MustParse(`{"initialRows": 40, "theme": "light"}`)))
	require.NoError(t, s.LayerJSON(document.MustParse(`{"initialCols": 100, "theme": null}`)))

	assert.Equal(t, 40, s.InitialRows)
	assert.Equal(t, 100, s.InitialCols)
	assert.Equal(t, ThemeLight, s.Theme, "null leaves the previous layer's value")
}

func TestLayerJSON_TypeMismatch(t *testing.T) {
	s := New()
	err := s.LayerJSON(document.MustParse(`{"initialRows": "oops", "initialCols": 90}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrTypeMismatch)

	var keyed *convert.KeyedError
	require.True(t, errors.As(err, &keyed))
	assert.Equal(t, InitialRowsKey, keyed.Key)

	assert.Equal(t, 30, s.InitialRows, "failed field keeps its value")
	assert.Equal(t, 90, s.InitialCols, "other fields still layer")

	_, err = FromJSON(document.MustParse(`{"alwaysShowTabs": 1}`))
	assert.ErrorIs(t, err, convert.ErrTypeMismatch)
}

func TestLayerJSON_UnknownEnumFallsBack(t *testing.T) {
	s := New()
	require.NoError(t, s.LayerJSON(document.MustParse(`{"theme": "dark"}`)))
	require.NoError(t, s.LayerJSON(document.MustParse(`{"theme": "blue"}`)))
	assert.Equal(t, ThemeDefault, s.Theme)
}

func TestLayerJSON_RowsToScroll(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"int", `{"rowsToScroll": 5}`, 5},
		{"system", `{"rowsToScroll": "system"}`, 0},
		{"fraction", `{"rowsToScroll": 2.5}`, 0},
		{"object", `{"rowsToScroll": {}}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.RowsToScroll = 9
			require.NoError(t, s.LayerJSON(document.MustParse(tt.json)))
			assert.Equal(t, tt.want, s.RowsToScroll)
		})
	}
}

func TestParseLaunchPosition(t *testing.T) {
	some := convert.Some[int]
	none := convert.None[int]()

	tests := []struct {
		in   string
		x, y convert.Optional[int]
	}{
		{"100,200", some(100), some(200)},
		{",100", none, some(100)},
		{"100,", some(100), none},
		{",", none, none},
		{"", none, none},
		{"abc,100", none, some(100)},
		{"1,2,3", some(1), some(2)},
		{" -5, 7px", some(-5), some(7)},
		{"99999999999,1", none, some(1)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			pos := ParseLaunchPosition(tt.in)
			assert.Equal(t, tt.x, pos.X)
			assert.Equal(t, tt.y, pos.Y)
		})
	}
}

func TestLayerJSON_InitialPosition(t *testing.T) {
	s := New()
	require.NoError(t, s.LayerJSON(document.MustParse(`{"initialPosition": "100,"}`)))
	x, ok := s.InitialPosition.X.Get()
	require.True(t, ok)
	assert.Equal(t, 100, x)
	assert.False(t, s.InitialPosition.Y.IsSet())

	err := s.LayerJSON(document.MustParse(`{"initialPosition": [1, 2]}`))
	assert.ErrorIs(t, err, convert.ErrTypeMismatch)
}

func TestLaunchPosition_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var pos LaunchPosition
		if rapid.Bool().Draw(t, "hasX") {
			pos.X = convert.Some(rapid.IntRange(-1<<31, 1<<31-1).Draw(t, "x"))
		}
		if rapid.Bool().Draw(t, "hasY") {
			pos.Y = convert.Some(rapid.IntRange(-1<<31, 1<<31-1).Draw(t, "y"))
		}
		if got := ParseLaunchPosition(pos.String()); got != pos {
			t.Fatalf("round trip of %q gave %+v, want %+v", pos.String(), got, pos)
		}
	})
}

func TestLayerJSON_Keybindings(t *testing.T) {
	s := New()
	require.NoError(t, s.LayerJSON(document.MustParse(`{
		"keybindings": [
			{"command": "copy", "keys": ["ctrl+c", "ctrl+insert"]},
			{"command": "paste", "keys": "ctrl+v"}
		]
	}`)))
	require.NoError(t, s.LayerJSON(document.MustParse(`{
		"keybindings": [
			{"command": {"action": "switchToTab"}, "keys": "ctrl+1"}
		]
	}`)))

	assert.Equal(t, []warning.Warning{
		warning.TooManyKeysForChord,
		warning.MissingRequiredParameter,
	}, s.KeybindingsWarnings())
	assert.Equal(t, 1, s.Keybindings().Len())
}

func TestApplyTo(t *testing.T) {
	s, err := FromJSON(document.MustParse(`{
		"initialRows": 50,
		"rowsToScroll": 3,
		"copyOnSelect": true,
		"wordDelimiters": " ",
		"keybindings": [{"command": "copy", "keys": "ctrl+c"}]
	}`))
	require.NoError(t, err)

	var ts TerminalSettings
	s.ApplyTo(&ts)
	assert.Equal(t, 50, ts.InitialRows)
	assert.Equal(t, 120, ts.InitialCols)
	assert.Equal(t, 3, ts.RowsToScroll)
	assert.Equal(t, " ", ts.WordDelimiters)
	assert.True(t, ts.CopyOnSelect)
	require.NotNil(t, ts.KeyBindings)
	assert.Equal(t, 1, ts.KeyBindings.Len())
}

func TestToJSON_RoundTrip(t *testing.T) {
	s, err := FromJSON(document.MustParse(`{
		"defaultProfile": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
		"initialRows": 44,
		"initialPosition": ",12",
		"theme": "light",
		"tabWidthMode": "titleLength",
		"debugFeatures": true,
		"keybindings": [
			{"command": "copy", "keys": "ctrl+c"},
			{"command": {"action": "switchToTab", "index": 2}, "keys": "ctrl+alt+3"}
		]
	}`))
	require.NoError(t, err)

	out, err := s.ToJSON()
	require.NoError(t, err)

	doc, err := document.Parse(out)
	require.NoError(t, err)
	back, err := FromJSON(doc)
	require.NoError(t, err)

	assert.Equal(t, s.DefaultProfile, back.DefaultProfile)
	assert.Equal(t, s.InitialRows, back.InitialRows)
	assert.Equal(t, s.InitialPosition, back.InitialPosition)
	assert.Equal(t, s.Theme, back.Theme)
	assert.Equal(t, s.TabWidthMode, back.TabWidthMode)
	assert.Equal(t, s.WordDelimiters, back.WordDelimiters)
	assert.Equal(t, s.DebugFeatures, back.DebugFeatures)
	assert.Equal(t, s.Keybindings().Bindings(), back.Keybindings().Bindings())
}

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()
	assert.Len(t, keys, 18)
	assert.Contains(t, keys, InitialPositionKey)
	assert.Equal(t, KeybindingsKey, keys[len(keys)-1])
}

func TestClone(t *testing.T) {
	s, err := FromJSON(document.MustParse(`{"keybindings": [{"command": "copy", "keys": "ctrl+c"}]}`))
	require.NoError(t, err)

	c := s.Clone()
	require.NoError(t, s.LayerJSON(document.MustParse(`{
		"initialRows": 1,
		"keybindings": [{"command": null, "keys": "ctrl+c"}]
	}`)))

	assert.Equal(t, 30, c.InitialRows)
	assert.Equal(t, 1, c.Keybindings().Len())
	assert.Equal(t, 0, s.Keybindings().Len())
}
