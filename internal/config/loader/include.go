package loader

import (
	"fmt"
	"path/filepath"
)

// IncludeKey names the directive that pulls other files in. Its value is a
// path or a list of paths, relative to the including file.
const IncludeKey = "@include"

// LoadWithIncludes loads path and every file it includes, in any supported
// format. Included files are merged under the including file, so the
// including file wins. maxDepth bounds the nesting.
func LoadWithIncludes(fsys FileSystem, path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}

	l, err := ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	config, err := l.Load()
	if err != nil || config == nil {
		return config, err
	}

	includes, ok := config[IncludeKey]
	if !ok {
		return config, nil
	}
	delete(config, IncludeKey)

	var paths []string
	switch v := includes.(type) {
	case string:
		paths = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s in %s must be a string or a list of strings", IncludeKey, path)
			}
			paths = append(paths, s)
		}
	default:
		return nil, fmt.Errorf("%s in %s must be a string or a list of strings, got %T", IncludeKey, path, includes)
	}

	merged := map[string]any{}
	for _, inc := range paths {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := LoadWithIncludes(fsys, inc, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		merged = DeepMerge(merged, sub)
	}
	return DeepMerge(merged, config), nil
}
