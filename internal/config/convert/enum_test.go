package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termconf/internal/config/document"
)

type shade int

const (
	shadeSystem shade = iota
	shadeLight
	shadeDark
)

var shadeMapping = NewEnumMapping(
	Pair("system", shadeSystem),
	Pair("light", shadeLight),
	Pair("dark", shadeDark),
)

func TestEnumMapping(t *testing.T) {
	tests := []struct {
		in   string
		want shade
	}{
		{"system", shadeSystem},
		{"light", shadeLight},
		{"dark", shadeDark},
		{"blue", shadeSystem},
		{"Dark", shadeSystem},
		{"", shadeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := shadeDark
			if tt.want == shadeDark {
				got = shadeLight
			}
			ok, err := GetValue(document.NewString(tt.in), &got, Rule[shade](shadeMapping))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumMapping_RejectsNonString(t *testing.T) {
	got := shadeDark
	_, err := GetValue(document.NewInt(1), &got, Rule[shade](shadeMapping))
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, shadeDark, got)
}

func TestEnumMapping_FirstMatchWins(t *testing.T) {
	m := NewEnumMapping(Pair("a", 1), Pair("b", 2), Pair("b", 3))
	v, ok := m.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestEnumMapping_Reverse(t *testing.T) {
	name, ok := shadeMapping.Name(shadeLight)
	assert.True(t, ok)
	assert.Equal(t, "light", name)

	_, ok = shadeMapping.Name(shade(42))
	assert.False(t, ok)

	assert.Equal(t, []string{"system", "light", "dark"}, shadeMapping.Names())
	assert.Equal(t, shadeSystem, shadeMapping.Default())

	_, ok = shadeMapping.Lookup("blue")
	assert.False(t, ok)
}
