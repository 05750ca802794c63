package config

import (
	"errors"
	"io/fs"
	"testing"
	"time"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

type staticEnv map[string]any

func (e staticEnv) Load() (map[string]any, error) {
	return e, nil
}

func TestDefaults(t *testing.T) {
	c := New(WithEnvPrefix(""))

	if got := c.Builder(); got.InitialCapacity != 32 || got.MaxCapacity != 1<<30 {
		t.Errorf("Builder() = %+v", got)
	}
	if got := c.Pool(); !got.Shared || got.MaxRetained != 1<<20 {
		t.Errorf("Pool() = %+v", got)
	}
	if got := c.Text(); got.PadPattern != " " || got.Separator != "," || got.Language != "und" {
		t.Errorf("Text() = %+v", got)
	}
	if got := c.Script(); got.InstructionLimit != 10_000_000 || got.Timeout != 5*time.Second {
		t.Errorf("Script() = %+v", got)
	}
	if got := c.Log().Level; got != "warn" {
		t.Errorf("Log().Level = %q", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLayering(t *testing.T) {
	files := memFS{
		"/cfg/dequebuf.yaml": `
builder:
  initialCapacity: 64
text:
  padPattern: "0"
log:
  level: info
`,
	}
	env := staticEnv{
		"builder": map[string]any{"initialCapacity": int64(128)},
		"script":  map[string]any{"timeout": 2 * time.Second},
	}

	c := New(WithFS(files), WithFile("/cfg/dequebuf.yaml"), WithEnvLoader(env))
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := c.Builder().InitialCapacity; got != 128 {
		t.Errorf("InitialCapacity = %d, want 128 from env", got)
	}
	if got := c.Builder().MaxCapacity; got != 1<<30 {
		t.Errorf("MaxCapacity = %d, want default", got)
	}
	if got := c.Text().PadPattern; got != "0" {
		t.Errorf("PadPattern = %q, want \"0\" from file", got)
	}
	if got := c.Script().Timeout; got != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", got)
	}

	c.Set("builder.initialCapacity", 256)
	if got := c.Builder().InitialCapacity; got != 256 {
		t.Errorf("InitialCapacity = %d, want 256 from override", got)
	}
	if got := c.Log().Level; got != "info" {
		t.Errorf("Level = %q, want info", got)
	}
}

func TestLoadJSONWithInclude(t *testing.T) {
	files := memFS{
		"/etc/main.json": `{"@include": "base.toml", "pool": {"shared": false}}`,
		"/etc/base.toml": "[pool]\nmaxRetained = 4096\nshared = true\n",
	}

	c := New(WithFS(files), WithFile("/etc/main.json"), WithEnvPrefix(""))
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Pool(); got.Shared || got.MaxRetained != 4096 {
		t.Errorf("Pool() = %+v, want shared=false maxRetained=4096", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := New(WithFS(memFS{}), WithFile("/nowhere.toml"), WithEnvPrefix(""))
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Builder().InitialCapacity; got != 32 {
		t.Errorf("InitialCapacity = %d", got)
	}
}

func TestLoadBadFile(t *testing.T) {
	c := New(WithFS(memFS{"/c.toml": "[builder"}), WithFile("/c.toml"), WithEnvPrefix(""))
	if err := c.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTypedGetters(t *testing.T) {
	c := New(WithEnvPrefix(""))
	c.Set("a.float", 64.0)
	c.Set("a.frac", 1.5)
	c.Set("a.str", "12")
	c.Set("a.ms", 250)
	c.Set("a.dur", "1m")

	if v, err := c.GetInt("a.float"); err != nil || v != 64 {
		t.Errorf("GetInt(a.float) = %d, %v", v, err)
	}
	if _, err := c.GetInt("a.frac"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetInt(a.frac) error = %v, want ErrTypeMismatch", err)
	}
	if v, err := c.GetInt("a.str"); err != nil || v != 12 {
		t.Errorf("GetInt(a.str) = %d, %v", v, err)
	}
	if v, err := c.GetDuration("a.ms"); err != nil || v != 250*time.Millisecond {
		t.Errorf("GetDuration(a.ms) = %v, %v", v, err)
	}
	if v, err := c.GetDuration("a.dur"); err != nil || v != time.Minute {
		t.Errorf("GetDuration(a.dur) = %v, %v", v, err)
	}
	if _, err := c.GetString("a.missing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("GetString(missing) error = %v", err)
	}
	if _, err := c.GetBool("a.str"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetBool(a.str) error = %v", err)
	}
}

func TestMistypedSettingFallsBack(t *testing.T) {
	c := New(WithEnvPrefix(""))
	c.Set("builder.initialCapacity", "lots")

	if got := c.Builder().InitialCapacity; got != 32 {
		t.Errorf("InitialCapacity = %d, want default", got)
	}
	errs := c.Errors()
	if err, ok := errs["builder.initialCapacity"]; !ok || !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Errors() = %v", errs)
	}
	if err := c.Validate(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Validate error = %v, want ErrTypeMismatch", err)
	}
}

func TestValidate(t *testing.T) {
	c := New(WithEnvPrefix(""))
	c.Set("builder.maxCapacity", 0)
	c.Set("log.level", "chatty")
	c.Set("text.padPattern", "")

	err := c.Validate()
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Validate error = %v, want ErrValidationFailed", err)
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 3 {
		t.Errorf("want 3 joined errors, got %v", err)
	}
}

func TestDataIsCopy(t *testing.T) {
	c := New(WithEnvPrefix(""))
	data := c.Data()
	data["builder"].(map[string]any)["initialCapacity"] = 1

	if got := c.Builder().InitialCapacity; got != 32 {
		t.Errorf("InitialCapacity = %d after mutating Data()", got)
	}
}
