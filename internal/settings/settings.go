// Package settings holds the application-wide terminal settings, i.e. the
// settings that do not belong to any particular profile.
//
// GlobalAppSettings is built by layering settings documents on top of the
// built-in defaults. Each LayerJSON call only touches the fields whose keys
// are present in the document, so layering a user file over the defaults
// keeps every default the user did not mention.
package settings

import (
	"github.com/google/uuid"

	"github.com/dshills/termconf/internal/config/convert"
	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/config/warning"
	"github.com/dshills/termconf/internal/keybindings"
)

// Settings keys.
const (
	KeybindingsKey         = "keybindings"
	DefaultProfileKey      = "defaultProfile"
	AlwaysShowTabsKey      = "alwaysShowTabs"
	InitialRowsKey         = "initialRows"
	InitialColsKey         = "initialCols"
	RowsToScrollKey        = "rowsToScroll"
	InitialPositionKey     = "initialPosition"
	ShowTitleInTitlebarKey = "showTerminalTitleInTitlebar"
	ThemeKey               = "theme"
	TabWidthModeKey        = "tabWidthMode"
	ShowTabsInTitlebarKey  = "showTabsInTitlebar"
	WordDelimitersKey      = "wordDelimiters"
	CopyOnSelectKey        = "copyOnSelect"
	CopyFormattingKey      = "copyFormatting"
	LaunchModeKey          = "launchMode"
	ConfirmCloseAllKey     = "confirmCloseAllTabs"
	SnapToGridOnResizeKey  = "snapToGridOnResize"
	DebugFeaturesKey       = "debugFeatures"
)

// Defaults for fields that are not simply the zero value.
const (
	DefaultRows           = 30
	DefaultCols           = 120
	DefaultRowsToScroll   = 0
	DefaultWordDelimiters = " ./\\()\"'-:,.;<>~!@#$%^&*|+=[]{}~?│"
)

// GlobalAppSettings is the set of settings global to the application.
// It is not safe for concurrent use; layer it from one goroutine and
// publish it once complete.
type GlobalAppSettings struct {
	DefaultProfile      uuid.UUID
	InitialRows         int
	InitialCols         int
	AlwaysShowTabs      bool
	ShowTitleInTitlebar bool
	ConfirmCloseAllTabs bool
	Theme               Theme
	TabWidthMode        TabWidthMode
	RowsToScroll        int
	ShowTabsInTitlebar  bool
	WordDelimiters      string
	CopyOnSelect        bool
	CopyFormatting      bool
	InitialPosition     LaunchPosition
	LaunchMode          LaunchMode
	SnapToGridOnResize  bool
	DebugFeatures       bool

	keybindings         *keybindings.AppKeyBindings
	keybindingsWarnings []warning.Warning
}

// New returns settings holding the built-in defaults.
func New() *GlobalAppSettings {
	return &GlobalAppSettings{
		InitialRows:         DefaultRows,
		InitialCols:         DefaultCols,
		AlwaysShowTabs:      true,
		ShowTitleInTitlebar: true,
		ConfirmCloseAllTabs: true,
		Theme:               ThemeDefault,
		TabWidthMode:        TabWidthEqual,
		RowsToScroll:        DefaultRowsToScroll,
		ShowTabsInTitlebar:  true,
		WordDelimiters:      DefaultWordDelimiters,
		LaunchMode:          LaunchModeDefault,
		SnapToGridOnResize:  true,
		keybindings:         keybindings.New(),
	}
}

// FromJSON returns the defaults with doc layered on top.
func FromJSON(doc document.Document) (*GlobalAppSettings, error) {
	s := New()
	if err := s.LayerJSON(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// fields binds every known key to its destination, in layering order.
func (s *GlobalAppSettings) fields() []convert.Field {
	return []convert.Field{
		convert.Bind(DefaultProfileKey, &s.DefaultProfile, convert.GUID),
		convert.Bind(AlwaysShowTabsKey, &s.AlwaysShowTabs, convert.Bool),
		convert.Bind(ConfirmCloseAllKey, &s.ConfirmCloseAllTabs, convert.Bool),
		convert.Bind(InitialRowsKey, &s.InitialRows, convert.Int),
		convert.Bind(InitialColsKey, &s.InitialCols, convert.Int),
		convert.Bind(RowsToScrollKey, &s.RowsToScroll, rowsToScrollRule),
		convert.Bind(InitialPositionKey, &s.InitialPosition, LaunchPositionRule),
		convert.Bind(ShowTitleInTitlebarKey, &s.ShowTitleInTitlebar, convert.Bool),
		convert.Bind(ShowTabsInTitlebarKey, &s.ShowTabsInTitlebar, convert.Bool),
		convert.Bind(WordDelimitersKey, &s.WordDelimiters, convert.String),
		convert.Bind(CopyOnSelectKey, &s.CopyOnSelect, convert.Bool),
		convert.Bind(CopyFormattingKey, &s.CopyFormatting, convert.Bool),
		convert.Bind(LaunchModeKey, &s.LaunchMode, LaunchModeRule),
		convert.Bind(ThemeKey, &s.Theme, ThemeRule),
		convert.Bind(TabWidthModeKey, &s.TabWidthMode, TabWidthModeRule),
		convert.Bind(SnapToGridOnResizeKey, &s.SnapToGridOnResize, convert.Bool),
		convert.Bind(DebugFeaturesKey, &s.DebugFeatures, convert.Bool),
	}
}

// LayerJSON applies the keys present in doc on top of the current values.
// Unknown keys are ignored. A value that cannot be converted leaves its
// field unchanged and is reported as a *convert.KeyedError; every other
// field is still applied. Key binding problems are not errors: they are
// collected and available from KeybindingsWarnings.
func (s *GlobalAppSettings) LayerJSON(doc document.Document) error {
	if s.keybindings == nil {
		s.keybindings = keybindings.New()
	}

	err := convert.GetValuesForKeys(doc, s.fields()...)

	if bindings, ok := doc.Lookup(KeybindingsKey); ok && !bindings.IsNull() {
		warnings := s.keybindings.LayerJSON(bindings)
		s.keybindingsWarnings = append(s.keybindingsWarnings, warnings...)
	}

	return err
}

// Keybindings returns the layered key binding table.
func (s *GlobalAppSettings) Keybindings() *keybindings.AppKeyBindings {
	return s.keybindings
}

// KeybindingsWarnings returns the warnings collected while layering key
// bindings, across every LayerJSON call so far.
func (s *GlobalAppSettings) KeybindingsWarnings() []warning.Warning {
	out := make([]warning.Warning, len(s.keybindingsWarnings))
	copy(out, s.keybindingsWarnings)
	return out
}

// Clone returns an independent copy.
func (s *GlobalAppSettings) Clone() *GlobalAppSettings {
	c := *s
	if s.keybindings != nil {
		c.keybindings = s.keybindings.Clone()
	}
	c.keybindingsWarnings = s.KeybindingsWarnings()
	return &c
}

// KnownKeys returns every key LayerJSON reads, in layering order.
func KnownKeys() []string {
	fields := New().fields()
	keys := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		keys = append(keys, f.Key())
	}
	return append(keys, KeybindingsKey)
}

// TerminalSettings is the subset of settings a terminal control consumes.
type TerminalSettings struct {
	KeyBindings    *keybindings.AppKeyBindings
	InitialRows    int
	InitialCols    int
	RowsToScroll   int
	WordDelimiters string
	CopyOnSelect   bool
}

// ApplyTo copies the global values a terminal control needs into ts.
func (s *GlobalAppSettings) ApplyTo(ts *TerminalSettings) {
	ts.KeyBindings = s.keybindings
	ts.InitialRows = s.InitialRows
	ts.InitialCols = s.InitialCols
	ts.RowsToScroll = s.RowsToScroll
	ts.WordDelimiters = s.WordDelimiters
	ts.CopyOnSelect = s.CopyOnSelect
}
