// Package loader reads settings documents from files and the environment.
//
// Settings files may be written as JSON, TOML or YAML; whatever the format,
// a loader produces a document.Document whose root is an object. A missing
// file is not an error: the loader returns a null document and the file's
// layer is simply skipped.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/termconf/internal/config/document"
)

// Loader is the interface for settings loaders.
type Loader interface {
	// Load reads the settings document from the source.
	// Returns a null document if the source doesn't exist.
	Load() (document.Document, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads the settings document from a specific path.
	LoadFrom(path string) (document.Document, error)
	// LoadFromReader reads the settings document from a reader.
	LoadFromReader(r io.Reader) (document.Document, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format is a settings file format.
type Format uint8

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatForPath picks the format from the file extension. Unknown
// extensions are read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ForPath returns the loader for path's format.
func ForPath(fsys FileSystem, path string) FileLoader {
	switch FormatForPath(path) {
	case FormatTOML:
		return NewTOMLLoaderWithFS(fsys, path)
	case FormatYAML:
		return NewYAMLLoaderWithFS(fsys, path)
	default:
		return NewJSONLoaderWithFS(fsys, path)
	}
}

// decodeFunc parses raw file contents; source names the input in errors.
type decodeFunc func(source string, data []byte) (document.Document, error)

// fileLoader is the format-independent part of every file loader.
type fileLoader struct {
	fs     FileSystem
	path   string
	decode decodeFunc
}

// Load reads the settings document from the configured path.
func (l *fileLoader) Load() (document.Document, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads the settings document from a specific path.
func (l *fileLoader) LoadFrom(path string) (document.Document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.Null(), nil // File doesn't exist, not an error
		}
		return document.Null(), fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads the settings document from an io.Reader.
func (l *fileLoader) LoadFromReader(r io.Reader) (document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return document.Null(), fmt.Errorf("reading settings: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *fileLoader) parse(source string, data []byte) (document.Document, error) {
	// An empty file is an empty layer.
	if len(strings.TrimSpace(string(data))) == 0 {
		return document.NewObject(nil), nil
	}

	doc, err := l.decode(source, data)
	if err != nil {
		return document.Null(), err
	}
	if doc.Kind() != document.KindObject {
		return document.Null(), &ParseError{
			Path:    source,
			Message: fmt.Sprintf("settings root must be an object, got %s", doc.Kind()),
			Err:     ErrNotObject,
		}
	}
	return doc, nil
}
