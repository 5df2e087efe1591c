package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the hardcoded Pong configuration.
func DefaultPongConfig() PongConfig {
	presets := make(map[DifficultyPreset]AIPreset, len(defaultAIPresets))
	for k, v := range defaultAIPresets {
		presets[k] = v
	}

	return PongConfig{
		Physics: PongPhysics{
			SubStep:          1.0 / 240.0,
			ServeSpeed:       0.0055,
			SpeedCeiling:     0.02,
			ServeAngle:       0.3,
			Rebound:          1.05,
			Spin:             0.02,
			BallRadius:       0.01,
			MinBallRadius:    6,
			OutOfBoundsRadii: 2,
		},
		Paddles: PongPaddles{
			Width:       0.012,
			MinWidth:    10,
			Height:      0.18,
			MinHeight:   60,
			Inset:       16,
			PlayerSpeed: 10,
		},
		Gameplay: PongGameplay{
			WinScore:    7,
			TrailLength: 20,
		},
		Difficulties: presets,
		Economy: EconomyConfig{
			RallyCoins:      3,
			WinCoins:        20,
			LossCoins:       5,
			LeaderboardSize: 20,
			DefaultTrail:    "cyan",
			Shop: []ShopItem{
				{ID: "trail-cyan", Name: "Cyan Trail", Price: 20},
				{ID: "trail-pink", Name: "Pink Trail", Price: 20},
				{ID: "trail-lime", Name: "Lime Trail", Price: 35},
				{ID: "trail-sunset", Name: "Sunset Trail", Price: 50},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pong":
		return defaultPongYAML
	default:
		return nil
	}
}
