package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
}

// NewEnvLoader creates an environment variable loader. The prefix
// should include the trailing underscore (e.g. "FLOWBLADE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"FLOWBLADE_UNDO_DEPTH":   "editor.undoDepth",
		"FLOWBLADE_VIDEO_TRACKS": "sequence.videoTracks",
		"FLOWBLADE_AUDIO_TRACKS": "sequence.audioTracks",
		"FLOWBLADE_FPS":          "sequence.fps",
		"FLOWBLADE_LOG_LEVEL":    "logging.level",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads mapped environment variables into a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	return config, nil
}

// parseValue converts an environment string to a typed value.
func parseValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// setByPath sets a value in a nested map using a dotted path.
func setByPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := m
	for i, part := range parts {
		if i == len(parts)-1 {
			cur[part] = value
			return
		}
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
}
