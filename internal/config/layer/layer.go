// Package layer holds the settings layers of a configuration and applies
// them in priority order.
//
// Each layer is one parsed settings document (the built-in defaults, the
// user's file, a project file, the environment). Higher priority layers
// override lower priority layers.
package layer

import (
	"time"

	"github.com/dshills/termconf/internal/config/document"
)

// Layer is a single settings document and where it came from.
type Layer struct {
	// Name identifies the layer (e.g. "defaults", "user").
	Name string

	// Priority determines application order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path, if loaded from a file.
	Path string

	// Doc is the layer's settings document.
	Doc document.Document

	// ModTime is when the source was last modified.
	ModTime time.Time
}

// New creates a layer with the standard name and priority for source.
func New(source Source, doc document.Document) *Layer {
	return &Layer{
		Name:     StandardLayerName(source),
		Source:   source,
		Priority: DefaultPriority(source),
		Doc:      doc,
		ModTime:  time.Now(),
	}
}

// Source indicates where a settings layer came from.
type Source uint8

const (
	// SourceBuiltin represents the built-in defaults.
	SourceBuiltin Source = iota
	// SourceUser represents the user's settings file.
	SourceUser
	// SourceProject represents a per-project settings file.
	SourceProject
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceArgs represents command-line arguments.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}
