// Package registry describes every global setting termconf understands:
// its key, value type, default and a one-line description.
//
// The registry does not take part in layering; GlobalAppSettings converts
// values on its own. It exists for documentation output and for spotting
// keys a settings file sets that nothing reads.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/termconf/internal/config/document"
	"github.com/dshills/termconf/internal/settings"
)

// SettingType is the JSON shape a setting expects.
type SettingType uint8

const (
	TypeString SettingType = iota
	TypeInt
	TypeBool
	TypeEnum
	TypeGUID
	TypePosition
	TypeKeybindings
)

// String returns the type name.
func (t SettingType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeEnum:
		return "enum"
	case TypeGUID:
		return "guid"
	case TypePosition:
		return "position"
	case TypeKeybindings:
		return "keybindings"
	default:
		return "unknown"
	}
}

// Setting describes one setting.
type Setting struct {
	Key         string
	Type        SettingType
	Description string

	// Enum lists the accepted names for TypeEnum settings. Other names
	// fall back to the first one.
	Enum []string

	// Default is the built-in value as it appears in a settings file.
	Default document.Document
}

// Registry holds setting descriptions by key.
type Registry struct {
	mu       sync.RWMutex
	settings map[string]*Setting
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{settings: make(map[string]*Setting)}
}

// NewWithDefaults creates a registry holding every global setting.
func NewWithDefaults() *Registry {
	r := New()
	r.RegisterDefaults()
	return r
}

// Register adds a setting. Registering a key twice is an error.
func (r *Registry) Register(s Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidSetting)
	}
	if _, exists := r.settings[s.Key]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, s.Key)
	}
	r.settings[s.Key] = &s
	return nil
}

// MustRegister registers a setting and panics on error.
func (r *Registry) MustRegister(s Setting) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get returns the setting for key, or nil.
func (r *Registry) Get(key string) *Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings[key]
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	return r.Get(key) != nil
}

// Len returns the number of registered settings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.settings)
}

// All returns every setting sorted by key.
func (r *Registry) All() []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Setting, 0, len(r.settings))
	for _, s := range r.settings {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// Search returns the settings whose key or description contains query,
// ignoring case.
func (r *Registry) Search(query string) []*Setting {
	query = strings.ToLower(query)
	var result []*Setting
	for _, s := range r.All() {
		if strings.Contains(strings.ToLower(s.Key), query) ||
			strings.Contains(strings.ToLower(s.Description), query) {
			result = append(result, s)
		}
	}
	return result
}

// Unknown returns the top-level keys of doc that are not registered,
// sorted. Layering ignores such keys, so they are usually typos.
func (r *Registry) Unknown(doc document.Document) []string {
	var unknown []string
	for _, key := range doc.Keys() {
		if !r.Has(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// RegisterDefaults registers every global setting with its built-in
// default.
func (r *Registry) RegisterDefaults() {
	defaults := builtinDefaults()
	for _, s := range globalSettings {
		if v, ok := defaults.Lookup(s.Key); ok {
			s.Default = v
		}
		r.MustRegister(s)
	}
}

func builtinDefaults() document.Document {
	data, err := settings.New().ToJSON()
	if err != nil {
		return document.Null()
	}
	doc, err := document.Parse(data)
	if err != nil {
		return document.Null()
	}
	return doc
}

var globalSettings = []Setting{
	{Key: settings.DefaultProfileKey, Type: TypeGUID, Description: "GUID of the profile opened in new tabs"},
	{Key: settings.AlwaysShowTabsKey, Type: TypeBool, Description: "Show the tab row even with a single tab"},
	{Key: settings.ConfirmCloseAllKey, Type: TypeBool, Description: "Ask before closing a window with several tabs"},
	{Key: settings.InitialRowsKey, Type: TypeInt, Description: "Rows of a new window"},
	{Key: settings.InitialColsKey, Type: TypeInt, Description: "Columns of a new window"},
	{Key: settings.RowsToScrollKey, Type: TypeInt, Description: `Rows scrolled per wheel step, or "system"`},
	{Key: settings.InitialPositionKey, Type: TypePosition, Description: `Window position as "x,y"; either part may be omitted`},
	{Key: settings.ShowTitleInTitlebarKey, Type: TypeBool, Description: "Use the active terminal's title as the window title"},
	{Key: settings.ShowTabsInTitlebarKey, Type: TypeBool, Description: "Draw tabs in the title bar"},
	{Key: settings.WordDelimitersKey, Type: TypeString, Description: "Characters that end a word on double-click selection"},
	{Key: settings.CopyOnSelectKey, Type: TypeBool, Description: "Copy to the clipboard as soon as text is selected"},
	{Key: settings.CopyFormattingKey, Type: TypeBool, Description: "Copy text with its colors and font"},
	{Key: settings.LaunchModeKey, Type: TypeEnum, Enum: []string{"default", "maximized"}, Description: "Window state at launch"},
	{Key: settings.ThemeKey, Type: TypeEnum, Enum: []string{"system", "light", "dark"}, Description: "Application theme"},
	{Key: settings.TabWidthModeKey, Type: TypeEnum, Enum: []string{"equal", "titleLength"}, Description: "How tab widths are computed"},
	{Key: settings.SnapToGridOnResizeKey, Type: TypeBool, Description: "Resize the window in whole character cells"},
	{Key: settings.DebugFeaturesKey, Type: TypeBool, Description: "Enable debugging aids"},
	{Key: settings.KeybindingsKey, Type: TypeKeybindings, Description: "Key chord to action bindings, layered entry by entry"},
}
