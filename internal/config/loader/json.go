package loader

import (
	"github.com/dshills/termconf/internal/config/document"
)

// JSONLoader loads settings from JSON files.
type JSONLoader struct {
	fileLoader
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return NewJSONLoaderWithFS(DefaultFS(), path)
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{fileLoader{fs: fs, path: path, decode: decodeJSON}}
}

func decodeJSON(source string, data []byte) (document.Document, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return document.Null(), &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return doc, nil
}
