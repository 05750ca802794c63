package config

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/dshills/dequebuf/internal/config/loader"
)

// Layer names, lowest priority first.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerEnv      = "env"
	LayerOverride = "override"
)

// MaxIncludeDepth bounds @include nesting in config files.
const MaxIncludeDepth = 8

var layerOrder = [...]string{LayerDefaults, LayerFile, LayerEnv, LayerOverride}

// Config is a layered view of the settings. It is safe for concurrent use.
type Config struct {
	mu     sync.RWMutex
	layers map[string]map[string]any
	merged map[string]any

	fs        loader.FileSystem
	path      string
	envPrefix string
	env       loader.Loader

	errs map[string]error
}

// Option configures a Config.
type Option func(*Config)

// WithFile names the config file to load. Its extension picks the format.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnvLoader replaces the environment layer's source.
func WithEnvLoader(l loader.Loader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// New returns a Config holding only the defaults. Call Load to read the
// file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    map[string]map[string]any{LayerDefaults: Defaults()},
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		errs:      make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.env == nil && c.envPrefix != "" {
		c.env = loader.NewEnvLoader(c.envPrefix)
	}
	return c
}

// Defaults returns the built-in settings as a fresh map.
func Defaults() map[string]any {
	return map[string]any{
		"builder": map[string]any{
			"initialCapacity": 32,
			"maxCapacity":     1 << 30,
		},
		"pool": map[string]any{
			"shared":      true,
			"maxRetained": 1 << 20,
		},
		"text": map[string]any{
			"padPattern": " ",
			"separator":  ",",
			"language":   "und",
		},
		"script": map[string]any{
			"instructionLimit": 10_000_000,
			"timeout":          "5s",
		},
		"log": map[string]any{
			"level": "warn",
		},
	}
}

// Load reads the file and environment layers, replacing what a previous
// Load read. A missing file is not an error.
func (c *Config) Load() error {
	var file, env map[string]any
	if c.path != "" {
		var err error
		if file, err = loader.LoadWithIncludes(c.fs, c.path, MaxIncludeDepth); err != nil {
			return fmt.Errorf("loading %s: %w", c.path, err)
		}
	}
	if c.env != nil {
		var err error
		if env, err = c.env.Load(); err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[LayerFile] = file
	c.layers[LayerEnv] = env
	c.merged = nil
	return nil
}

// Set stores value in the override layer.
func (c *Config) Set(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.layers[LayerOverride] == nil {
		c.layers[LayerOverride] = make(map[string]any)
	}
	loader.SetByPath(c.layers[LayerOverride], path, value)
	c.merged = nil
	delete(c.errs, path)
}

// Get returns the merged value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loader.GetByPath(c.mergedLocked(), path)
}

// Data returns a deep copy of the merged settings.
func (c *Config) Data() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loader.Clone(c.mergedLocked())
}

func (c *Config) mergedLocked() map[string]any {
	if c.merged == nil {
		merged := make(map[string]any)
		for _, name := range layerOrder {
			merged = loader.DeepMerge(merged, c.layers[name])
		}
		c.merged = merged
	}
	return c.merged
}

// GetString returns a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer setting. Whole floats, as JSON produces, are
// accepted.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		if val <= math.MaxInt {
			return int(val), nil
		}
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return int(val), nil
		}
	case string:
		if i, err := strconv.Atoi(val); err == nil {
			return i, nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetDuration returns a duration setting given as a duration string, a
// time.Duration, or an integer number of milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d, nil
		}
	case int:
		return time.Duration(val) * time.Millisecond, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case float64:
		return time.Duration(val * float64(time.Millisecond)), nil
	}
	return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
}

// Errors returns the problems recorded by section accessors, keyed by
// setting path.
func (c *Config) Errors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]error, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

func (c *Config) recordError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[path] = err
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []any:
		return "list"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
