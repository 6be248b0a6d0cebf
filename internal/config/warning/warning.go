// Package warning defines recoverable settings problems.
//
// Warnings describe user configuration that was understood well enough to
// keep loading but that the user should hear about. They are collected,
// never returned as errors.
package warning

// Warning identifies a recoverable settings load problem.
type Warning uint8

const (
	// MissingDefaultProfile: the configured default profile does not exist.
	MissingDefaultProfile Warning = iota
	// DuplicateProfile: two profiles share a GUID.
	DuplicateProfile
	// UnknownColorScheme: a profile names a scheme that is not defined.
	UnknownColorScheme
	// InvalidBackgroundImage: a background image path cannot be used.
	InvalidBackgroundImage
	// InvalidIcon: an icon path cannot be used.
	InvalidIcon
	// AtLeastOneKeybindingWarning: some key binding entries were skipped.
	AtLeastOneKeybindingWarning
	// TooManyKeysForChord: a binding lists more than one key chord.
	TooManyKeysForChord
	// MissingRequiredParameter: a binding's action lacks a required argument.
	MissingRequiredParameter
	// LegacyGlobalsProperty: settings are nested under the old "globals" key.
	LegacyGlobalsProperty
)

// String returns the identifier used in logs and CLI output.
func (w Warning) String() string {
	switch w {
	case MissingDefaultProfile:
		return "MissingDefaultProfile"
	case DuplicateProfile:
		return "DuplicateProfile"
	case UnknownColorScheme:
		return "UnknownColorScheme"
	case InvalidBackgroundImage:
		return "InvalidBackgroundImage"
	case InvalidIcon:
		return "InvalidIcon"
	case AtLeastOneKeybindingWarning:
		return "AtLeastOneKeybindingWarning"
	case TooManyKeysForChord:
		return "TooManyKeysForChord"
	case MissingRequiredParameter:
		return "MissingRequiredParameter"
	case LegacyGlobalsProperty:
		return "LegacyGlobalsProperty"
	default:
		return "Unknown"
	}
}

// Message returns a sentence suitable for showing to the user.
func (w Warning) Message() string {
	switch w {
	case MissingDefaultProfile:
		return "The default profile could not be found; the first profile will be used."
	case DuplicateProfile:
		return "Multiple profiles share the same GUID; only the first is kept."
	case UnknownColorScheme:
		return "A profile references a color scheme that does not exist."
	case InvalidBackgroundImage:
		return "A background image could not be found."
	case InvalidIcon:
		return "An icon could not be found."
	case AtLeastOneKeybindingWarning:
		return "Some key bindings could not be loaded."
	case TooManyKeysForChord:
		return "A key binding lists more than one key chord; only single chords are supported."
	case MissingRequiredParameter:
		return "A key binding is missing a required argument for its action."
	case LegacyGlobalsProperty:
		return `The "globals" property is deprecated; move its settings to the root of the file.`
	default:
		return "Unknown warning."
	}
}
