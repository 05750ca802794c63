package config

import (
	"errors"
	"time"

	"github.com/dshills/dequebuf/internal/logging"
)

// BuilderConfig sizes new builders.
type BuilderConfig struct {
	// InitialCapacity is the capacity requested for new builders.
	InitialCapacity int
	// MaxCapacity caps any builder's backing array, in elements.
	MaxCapacity int
}

// PoolConfig controls array pooling.
type PoolConfig struct {
	// Shared uses the process-wide bucketed pool. When false, builders
	// allocate from the heap.
	Shared bool
	// MaxRetained is the largest array the pool keeps.
	MaxRetained int
}

// TextConfig holds text command defaults.
type TextConfig struct {
	PadPattern string
	Separator  string
	// Language is a BCP 47 tag for case transforms.
	Language string
}

// ScriptConfig bounds Lua scripts.
type ScriptConfig struct {
	InstructionLimit int
	Timeout          time.Duration
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// Builder returns the builder settings.
func (c *Config) Builder() BuilderConfig {
	return BuilderConfig{
		InitialCapacity: c.getIntOr("builder.initialCapacity", 32),
		MaxCapacity:     c.getIntOr("builder.maxCapacity", 1<<30),
	}
}

// Pool returns the pool settings.
func (c *Config) Pool() PoolConfig {
	return PoolConfig{
		Shared:      c.getBoolOr("pool.shared", true),
		MaxRetained: c.getIntOr("pool.maxRetained", 1<<20),
	}
}

// Text returns the text settings.
func (c *Config) Text() TextConfig {
	return TextConfig{
		PadPattern: c.getStringOr("text.padPattern", " "),
		Separator:  c.getStringOr("text.separator", ","),
		Language:   c.getStringOr("text.language", "und"),
	}
}

// Script returns the script settings.
func (c *Config) Script() ScriptConfig {
	return ScriptConfig{
		InstructionLimit: c.getIntOr("script.instructionLimit", 10_000_000),
		Timeout:          c.getDurationOr("script.timeout", 5*time.Second),
	}
}

// Log returns the log settings.
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level: c.getStringOr("log.level", "warn"),
	}
}

// Validate checks every section and joins the failures.
func (c *Config) Validate() error {
	var errs []error
	b := c.Builder()
	if b.InitialCapacity < 0 {
		errs = append(errs, invalid("builder.initialCapacity", b.InitialCapacity, "must not be negative"))
	}
	if b.MaxCapacity <= 0 {
		errs = append(errs, invalid("builder.maxCapacity", b.MaxCapacity, "must be positive"))
	}
	if p := c.Pool(); p.MaxRetained < 0 {
		errs = append(errs, invalid("pool.maxRetained", p.MaxRetained, "must not be negative"))
	}
	if t := c.Text(); t.PadPattern == "" {
		errs = append(errs, invalid("text.padPattern", t.PadPattern, "must not be empty"))
	}
	s := c.Script()
	if s.InstructionLimit < 0 {
		errs = append(errs, invalid("script.instructionLimit", s.InstructionLimit, "must not be negative"))
	}
	if s.Timeout < 0 {
		errs = append(errs, invalid("script.timeout", s.Timeout, "must not be negative"))
	}
	if l := c.Log(); !validLevel(l.Level) {
		errs = append(errs, invalid("log.level", l.Level, "unknown level"))
	}
	for _, err := range c.Errors() {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validLevel(name string) bool {
	_, ok := logging.ParseLevel(name)
	return ok
}

func (c *Config) getStringOr(path, def string) string {
	v, err := c.GetString(path)
	return or(c, path, v, def, err)
}

func (c *Config) getIntOr(path string, def int) int {
	v, err := c.GetInt(path)
	return or(c, path, v, def, err)
}

func (c *Config) getBoolOr(path string, def bool) bool {
	v, err := c.GetBool(path)
	return or(c, path, v, def, err)
}

func (c *Config) getDurationOr(path string, def time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	return or(c, path, v, def, err)
}

func or[T any](c *Config, path string, v, def T, err error) T {
	if err == nil {
		return v
	}
	if !errors.Is(err, ErrSettingNotFound) {
		c.recordError(path, err)
	}
	return def
}
