package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/dshills/termconf/internal/config/document"
)

// YAMLLoader loads settings from YAML files.
type YAMLLoader struct {
	fileLoader
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fileLoader{fs: fs, path: path, decode: decodeYAML}}
}

func decodeYAML(source string, data []byte) (document.Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return document.Null(), &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	doc, err := document.FromValue(raw)
	if err != nil {
		return document.Null(), &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return doc, nil
}
