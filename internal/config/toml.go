// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
}

// DrillConfig maps drill-related settings. Durations are Go duration strings.
type DrillConfig struct {
	Key          *string  `toml:"key"`
	Range        *string  `toml:"range"`
	Duration     *string  `toml:"duration"`
	CaptureDelay *string  `toml:"capture-delay"`
	FocusWeak    *bool    `toml:"focus-weak"`
	WeakTop      *int     `toml:"weak-top"`
	WeakFactor   *float64 `toml:"weak-factor"`
	WeakWindow   *int     `toml:"weak-window"`
	MIDIIn       *string  `toml:"midi-in"`
	Sound        *bool    `toml:"sound"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
