package loader

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix dequebuf reads settings from.
const DefaultEnvPrefix = "DEQUEBUF_"

// EnvLoader turns prefixed environment variables into configuration.
// DEQUEBUF_BUILDER_INITIAL_CAPACITY becomes builder.initialCapacity: the
// first word names the section and the rest form a camelCase key. Explicit
// mappings override that rule.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader returns a loader for variables starting with prefix, which
// should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		mapping: map[string]string{
			prefix + "LOG":          "log.level",
			prefix + "MAX_CAPACITY": "builder.maxCapacity",
		},
		environ: os.Environ,
	}
}

// AddMapping routes envVar to configPath.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the environment. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || name == l.prefix {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		SetByPath(config, path, parseValue(value))
	}
	return config, nil
}

func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(env, l.prefix)), "_")
	if len(parts) == 1 {
		return parts[0]
	}
	var key strings.Builder
	key.WriteString(parts[1])
	for _, p := range parts[2:] {
		if p != "" {
			key.WriteString(strings.ToUpper(p[:1]) + p[1:])
		}
	}
	return parts[0] + "." + key.String()
}

// parseValue guesses the type of an environment value: bool words, then
// integers, decimals, durations, JSON arrays and objects, else the string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "":
		return s
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}
