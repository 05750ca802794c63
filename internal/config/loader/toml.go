package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// NewTOMLLoader returns a loader for the TOML file at path.
func NewTOMLLoader(path string) FileLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS is NewTOMLLoader reading through fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) FileLoader {
	return &fileLoader{fs: fsys, path: path, parse: parseTOML}
}

func parseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			perr.Line, perr.Column = de.Position()
		}
		return nil, perr
	}
	return config, nil
}
