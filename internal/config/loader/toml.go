package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/termconf/internal/config/document"
)

// TOMLLoader loads settings from TOML files.
type TOMLLoader struct {
	fileLoader
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fileLoader{fs: fs, path: path, decode: decodeTOML}}
}

func decodeTOML(source string, data []byte) (document.Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return document.Null(), perr
	}

	doc, err := document.FromValue(raw)
	if err != nil {
		return document.Null(), &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return doc, nil
}
