package config

import "errors"

// ErrInvalidSettings wraps the layering failures of a load. The wrapped
// errors name the layer and key that failed and match
// convert.ErrTypeMismatch or convert.ErrRequiredKeyMissing.
var ErrInvalidSettings = errors.New("invalid settings")
