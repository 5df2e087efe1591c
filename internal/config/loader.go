package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadPong loads Pong configuration.
// Search order: customPath -> ~/.arcade/configs/pong.yaml -> ./configs/pong.yaml -> embedded default.
// Files may be partial; missing fields keep their default values.
// A custom path ending in .toml is parsed as TOML.
func LoadPong(customPath string) (PongConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PongConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePong(data, strings.EqualFold(filepath.Ext(customPath), ".toml"))
		if err != nil {
			return PongConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pong.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePong(data, false); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "pong.yaml")); err == nil {
		if cfg, err := parsePong(data, false); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePong(defaultPongYAML, false)
	if err != nil {
		return DefaultPongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parsePong(data []byte, isTOML bool) (PongConfig, error) {
	cfg := DefaultPongConfig()
	var err error
	if isTOML {
		_, err = toml.Decode(string(data), &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return PongConfig{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs values that would break the engine.
func (c *PongConfig) normalize() {
	def := DefaultPongConfig()
	if c.Physics.SubStep <= 0 {
		c.Physics.SubStep = def.Physics.SubStep
	}
	if c.Physics.Rebound < 1 {
		c.Physics.Rebound = def.Physics.Rebound
	}
	if c.Physics.OutOfBoundsRadii <= 0 {
		c.Physics.OutOfBoundsRadii = def.Physics.OutOfBoundsRadii
	}
	if c.Gameplay.WinScore <= 0 {
		c.Gameplay.WinScore = def.Gameplay.WinScore
	}
	if c.Gameplay.TrailLength < 0 {
		c.Gameplay.TrailLength = 0
	}
	if c.Economy.LeaderboardSize <= 0 {
		c.Economy.LeaderboardSize = def.Economy.LeaderboardSize
	}
	if c.Economy.DefaultTrail == "" {
		c.Economy.DefaultTrail = def.Economy.DefaultTrail
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
