package loader

import (
	"errors"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("top-level value is not an object")

// NewJSONLoader returns a loader for the JSON file at path.
func NewJSONLoader(path string) FileLoader {
	return NewJSONLoaderWithFS(DefaultFS(), path)
}

// NewJSONLoaderWithFS is NewJSONLoader reading through fsys.
func NewJSONLoaderWithFS(fsys FileSystem, path string) FileLoader {
	return &fileLoader{fs: fsys, path: path, parse: parseJSON}
}

// parseJSON decodes a JSON object. Numbers come back as float64.
func parseJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, &ParseError{Path: source, Message: errNotObject.Error(), Err: errNotObject}
	}
	config, _ := result.Value().(map[string]any)
	return config, nil
}
