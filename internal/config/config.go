package config

import (
	"fmt"

	"github.com/ptrg/flowblade/internal/config/loader"
)

// Config holds editor-wide settings.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Sequence SequenceConfig `toml:"sequence"`
	Logging  LoggingConfig  `toml:"logging"`
}

// EditorConfig controls edit behavior.
type EditorConfig struct {
	// UndoDepth is the maximum number of actions kept in history.
	UndoDepth int `toml:"undoDepth"`

	// AutoConsolidateBlanks merges adjacent blanks after removals.
	AutoConsolidateBlanks bool `toml:"autoConsolidateBlanks"`
}

// SequenceConfig sets the shape of newly created sequences.
type SequenceConfig struct {
	VideoTracks int     `toml:"videoTracks"`
	AudioTracks int     `toml:"audioTracks"`
	FPS         float64 `toml:"fps"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			UndoDepth:             1000,
			AutoConsolidateBlanks: false,
		},
		Sequence: SequenceConfig{
			VideoTracks: 5,
			AudioTracks: 4,
			FPS:         25,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, applies environment overrides and
// validates the result. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	fileMap, err := loader.NewTOMLLoader(path).Load()
	if err != nil {
		return nil, err
	}
	envMap, err := loader.NewEnvLoader("FLOWBLADE_").Load()
	if err != nil {
		return nil, err
	}
	merged := loader.DeepMerge(fileMap, envMap)

	cfg.apply(merged)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overlays values from a loaded configuration map.
func (c *Config) apply(m map[string]any) {
	if m == nil {
		return
	}
	if v, ok := loader.GetInt(m, "editor.undoDepth"); ok {
		c.Editor.UndoDepth = v
	}
	if v, ok := loader.GetBool(m, "editor.autoConsolidateBlanks"); ok {
		c.Editor.AutoConsolidateBlanks = v
	}
	if v, ok := loader.GetInt(m, "sequence.videoTracks"); ok {
		c.Sequence.VideoTracks = v
	}
	if v, ok := loader.GetInt(m, "sequence.audioTracks"); ok {
		c.Sequence.AudioTracks = v
	}
	if v, ok := loader.GetFloat(m, "sequence.fps"); ok {
		c.Sequence.FPS = v
	}
	if v, ok := loader.GetString(m, "logging.level"); ok {
		c.Logging.Level = v
	}
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	if c.Editor.UndoDepth < 1 {
		return fmt.Errorf("editor.undoDepth must be at least 1, got %d", c.Editor.UndoDepth)
	}
	if c.Sequence.VideoTracks < 1 {
		return fmt.Errorf("sequence.videoTracks must be at least 1, got %d", c.Sequence.VideoTracks)
	}
	if c.Sequence.AudioTracks < 0 {
		return fmt.Errorf("sequence.audioTracks must not be negative, got %d", c.Sequence.AudioTracks)
	}
	if c.Sequence.FPS <= 0 {
		return fmt.Errorf("sequence.fps must be positive, got %v", c.Sequence.FPS)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
