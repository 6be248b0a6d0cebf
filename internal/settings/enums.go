package settings

import "github.com/dshills/termconf/internal/config/convert"

// Theme selects the application's light/dark appearance.
type Theme uint8

const (
	// ThemeDefault follows the operating system.
	ThemeDefault Theme = iota
	// ThemeLight forces the light theme.
	ThemeLight
	// ThemeDark forces the dark theme.
	ThemeDark
)

// LaunchMode selects the initial window state.
type LaunchMode uint8

const (
	// LaunchModeDefault opens a normal window.
	LaunchModeDefault LaunchMode = iota
	// LaunchModeMaximized opens a maximized window.
	LaunchModeMaximized
)

// TabWidthMode selects how tab widths are computed.
type TabWidthMode uint8

const (
	// TabWidthEqual gives every tab the same width.
	TabWidthEqual TabWidthMode = iota
	// TabWidthSizeToContent sizes each tab to its title.
	TabWidthSizeToContent
)

// Literal mappings. The first pair of each is the fallback for unknown
// literals.
var (
	themeMapping = convert.NewEnumMapping(
		convert.Pair("system", ThemeDefault),
		convert.Pair("light", ThemeLight),
		convert.Pair("dark", ThemeDark),
	)

	launchModeMapping = convert.NewEnumMapping(
		convert.Pair("default", LaunchModeDefault),
		convert.Pair("maximized", LaunchModeMaximized),
	)

	tabWidthModeMapping = convert.NewEnumMapping(
		convert.Pair("equal", TabWidthEqual),
		convert.Pair("titleLength", TabWidthSizeToContent),
	)
)

// Rules used by LayerJSON.
var (
	ThemeRule        convert.Rule[Theme]        = themeMapping
	LaunchModeRule   convert.Rule[LaunchMode]   = launchModeMapping
	TabWidthModeRule convert.Rule[TabWidthMode] = tabWidthModeMapping
)

// String returns the configuration literal for the theme.
func (t Theme) String() string {
	name, _ := themeMapping.Name(t)
	return name
}

// String returns the configuration literal for the launch mode.
func (m LaunchMode) String() string {
	name, _ := launchModeMapping.Name(m)
	return name
}

// String returns the configuration literal for the tab width mode.
func (m TabWidthMode) String() string {
	name, _ := tabWidthModeMapping.Name(m)
	return name
}
