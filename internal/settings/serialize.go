package settings

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// ToJSON renders the settings as a settings document that FromJSON reads
// back to the same values. Enums are written by name and the launch
// position in its comma form.
func (s *GlobalAppSettings) ToJSON() ([]byte, error) {
	values := []struct {
		key   string
		value any
	}{
		{DefaultProfileKey, "{" + s.DefaultProfile.String() + "}"},
		{AlwaysShowTabsKey, s.AlwaysShowTabs},
		{ConfirmCloseAllKey, s.ConfirmCloseAllTabs},
		{InitialRowsKey, s.InitialRows},
		{InitialColsKey, s.InitialCols},
		{RowsToScrollKey, s.RowsToScroll},
		{InitialPositionKey, s.InitialPosition.String()},
		{ShowTitleInTitlebarKey, s.ShowTitleInTitlebar},
		{ShowTabsInTitlebarKey, s.ShowTabsInTitlebar},
		{WordDelimitersKey, s.WordDelimiters},
		{CopyOnSelectKey, s.CopyOnSelect},
		{CopyFormattingKey, s.CopyFormatting},
		{LaunchModeKey, s.LaunchMode.String()},
		{ThemeKey, s.Theme.String()},
		{TabWidthModeKey, s.TabWidthMode.String()},
		{SnapToGridOnResizeKey, s.SnapToGridOnResize},
		{DebugFeaturesKey, s.DebugFeatures},
	}

	out := []byte("{}")
	var err error
	for _, v := range values {
		out, err = sjson.SetBytes(out, v.key, v.value)
		if err != nil {
			return nil, fmt.Errorf("serialize %q: %w", v.key, err)
		}
	}

	bindings := []any{}
	if s.keybindings != nil {
		for _, b := range s.keybindings.Bindings() {
			var command any = b.Action
			if !b.Args.IsNull() {
				command = b.Args.Value()
			}
			bindings = append(bindings, map[string]any{
				"command": command,
				"keys":    b.Chord.String(),
			})
		}
	}
	out, err = sjson.SetBytes(out, KeybindingsKey, bindings)
	if err != nil {
		return nil, fmt.Errorf("serialize %q: %w", KeybindingsKey, err)
	}
	return out, nil
}
