package registry

import "errors"

var (
	// ErrSettingAlreadyRegistered is returned when registering a key twice.
	ErrSettingAlreadyRegistered = errors.New("setting already registered")

	// ErrInvalidSetting is returned for a setting that cannot be registered.
	ErrInvalidSetting = errors.New("invalid setting")
)
