package loader

import (
	"testing"

	"github.com/dshills/termconf/internal/config/document"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("TERMCONF_INITIAL_ROWS", "1")
	t.Setenv("TERMCONF_THEME", "light")
	t.Setenv("TERMCONF_SHOW_TABS_IN_TITLEBAR", "false")
	t.Setenv("OTHER_INITIAL_COLS", "10")

	doc, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := doc.Lookup("initialRows"); v.Kind() != document.KindInt || v.Int() != 1 {
		t.Errorf("initialRows = %#v, want int 1", v)
	}
	if v, _ := doc.Lookup("theme"); v.String() != "light" {
		t.Errorf("theme = %q, want 'light'", v.String())
	}
	if v, ok := doc.Lookup("showTabsInTitlebar"); !ok || v.Kind() != document.KindBool || v.Bool() {
		t.Errorf("showTabsInTitlebar = %#v, want false", v)
	}
	if _, ok := doc.Lookup("initialCols"); ok {
		t.Error("variables without the prefix should be ignored")
	}
}

func TestEnvLoader_Mapping(t *testing.T) {
	t.Setenv("MY_ROWS", "25")

	l := NewEnvLoaderWithMapping(DefaultEnvPrefix, map[string]string{"MY_ROWS": "initialRows"})
	doc, _ := l.Load()
	if v, _ := doc.Lookup("initialRows"); v.Int() != 25 {
		t.Errorf("initialRows = %d, want 25", v.Int())
	}

	l.RemoveMapping("MY_ROWS")
	doc, _ = l.Load()
	if _, ok := doc.Lookup("initialRows"); ok {
		t.Error("removed mapping should not be loaded")
	}

	l.AddMapping("MY_ROWS", "initialCols")
	doc, _ = l.Load()
	if v, _ := doc.Lookup("initialCols"); v.Int() != 25 {
		t.Errorf("initialCols = %d, want 25", v.Int())
	}
}

func TestEnvLoader_envToKey(t *testing.T) {
	l := NewEnvLoader("TERMCONF_")
	tests := map[string]string{
		"TERMCONF_THEME":                  "theme",
		"TERMCONF_INITIAL_ROWS":           "initialRows",
		"TERMCONF_COPY_ON_SELECT":         "copyOnSelect",
		"TERMCONF_SNAP_TO_GRID_ON_RESIZE": "snapToGridOnResize",
		"TERMCONF__DOUBLE__UNDERSCORE":    "doubleUnderscore",
		"TERMCONF_":                       "",
	}
	for env, want := range tests {
		if got := l.envToKey(env); got != want {
			t.Errorf("envToKey(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		kind document.Kind
	}{
		{"", document.KindString},
		{"true", document.KindBool},
		{"Off", document.KindBool},
		{"null", document.KindNull},
		{"0", document.KindInt},
		{"-42", document.KindInt},
		{"1.5", document.KindFloat},
		{"1.2.3", document.KindString},
		{`[{"command": "copy", "keys": "ctrl+c"}]`, document.KindArray},
		{"{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", document.KindString},
		{"100,200", document.KindString},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in).Kind(); got != tt.kind {
			t.Errorf("ParseValue(%q).Kind() = %v, want %v", tt.in, got, tt.kind)
		}
	}
}
