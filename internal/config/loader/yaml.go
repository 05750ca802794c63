package loader

import "gopkg.in/yaml.v3"

// NewYAMLLoader returns a loader for the YAML file at path.
func NewYAMLLoader(path string) FileLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS is NewYAMLLoader reading through fsys.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) FileLoader {
	return &fileLoader{fs: fsys, path: path, parse: parseYAML}
}

func parseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return config, nil
}
