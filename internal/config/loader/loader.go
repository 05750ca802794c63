// Package loader reads dequebuf configuration into nested maps.
//
// Files are parsed by extension: .toml with go-toml, .yaml and .yml with
// yaml.v3, .json with gjson. Environment variables sharing a prefix are
// turned into the same map shape, so every source can be layered with
// DeepMerge.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads configuration from its source. A missing source yields
// nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileLoader is a Loader bound to a file format.
type FileLoader interface {
	Loader
	// LoadFrom reads configuration from path instead of the bound one.
	LoadFrom(path string) (map[string]any, error)
	// LoadFromReader parses configuration from r.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is the file access loaders need. Tests substitute an
// in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// parseFunc turns raw file content into a map. source names the input in
// errors.
type parseFunc func(source string, data []byte) (map[string]any, error)

// fileLoader implements FileLoader for any format given its parse function.
type fileLoader struct {
	fs    FileSystem
	path  string
	parse parseFunc
}

func (l *fileLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

func (l *fileLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return l.parse(path, data)
}

func (l *fileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

// ForPath returns the loader matching path's extension.
func ForPath(fsys FileSystem, path string) (FileLoader, error) {
	if fsys == nil {
		fsys = DefaultFS()
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	case ".json":
		return NewJSONLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
