// Package config provides YAML-based game configuration loading,
// difficulty presets and hub-level settings.
package config

// PongConfig contains all tuning for the Pong engine.
// Lengths are device pixels unless noted; speeds are px per 1/60 s.
type PongConfig struct {
	Physics      PongPhysics                  `yaml:"physics" toml:"physics"`
	Paddles      PongPaddles                  `yaml:"paddles" toml:"paddles"`
	Gameplay     PongGameplay                 `yaml:"gameplay" toml:"gameplay"`
	Difficulties map[DifficultyPreset]AIPreset `yaml:"difficulties" toml:"difficulties"`
	Economy      EconomyConfig                `yaml:"economy" toml:"economy"`
}

// PongPhysics defines ball and stepping parameters.
type PongPhysics struct {
	SubStep          float64 `yaml:"sub_step" toml:"sub_step"`                     // seconds
	ServeSpeed       float64 `yaml:"serve_speed" toml:"serve_speed"`               // fraction of min(W, H)
	SpeedCeiling     float64 `yaml:"speed_ceiling" toml:"speed_ceiling"`           // fraction of min(W, H)
	ServeAngle       float64 `yaml:"serve_angle" toml:"serve_angle"`               // half-range, fraction of π
	Rebound          float64 `yaml:"rebound" toml:"rebound"`                       // |vx| multiplier on paddle hit
	Spin             float64 `yaml:"spin" toml:"spin"`                             // vy gained per px off paddle center
	BallRadius       float64 `yaml:"ball_radius" toml:"ball_radius"`               // fraction of min(W, H)
	MinBallRadius    float64 `yaml:"min_ball_radius" toml:"min_ball_radius"`       // px
	OutOfBoundsRadii float64 `yaml:"out_of_bounds_radii" toml:"out_of_bounds_radii"` // radii past the edge before a point
}

// PongPaddles defines paddle geometry and the player's speed.
type PongPaddles struct {
	Width       float64 `yaml:"width" toml:"width"`   // fraction of W
	MinWidth    float64 `yaml:"min_width" toml:"min_width"`
	Height      float64 `yaml:"height" toml:"height"` // fraction of H
	MinHeight   float64 `yaml:"min_height" toml:"min_height"`
	Inset       float64 `yaml:"inset" toml:"inset"` // distance from the side edge, before device scale
	PlayerSpeed float64 `yaml:"player_speed" toml:"player_speed"`
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore    int `yaml:"win_score" toml:"win_score"`
	TrailLength int `yaml:"trail_length" toml:"trail_length"`
}

// AIPreset holds the per-difficulty opponent speed and rally acceleration.
type AIPreset struct {
	AISpeed float64 `yaml:"ai_speed" toml:"ai_speed"` // px per 1/60 s before device scale
	Accel   float64 `yaml:"accel" toml:"accel"`       // fractional speed gain per second
}

// EconomyConfig defines coin rewards, leaderboard size and the shop catalog.
type EconomyConfig struct {
	RallyCoins      int        `yaml:"rally_coins" toml:"rally_coins"`
	WinCoins        int        `yaml:"win_coins" toml:"win_coins"`
	LossCoins       int        `yaml:"loss_coins" toml:"loss_coins"`
	LeaderboardSize int        `yaml:"leaderboard_size" toml:"leaderboard_size"`
	DefaultTrail    string     `yaml:"default_trail" toml:"default_trail"`
	Shop            []ShopItem `yaml:"shop" toml:"shop"`
}

// ShopItem is a purchasable cosmetic.
type ShopItem struct {
	ID    string `yaml:"id" toml:"id" json:"id"`
	Name  string `yaml:"name" toml:"name" json:"name"`
	Price int    `yaml:"price" toml:"price" json:"price"`
}

// AI returns the preset for d, falling back to normal and then to the
// hardcoded table when the config omits it.
func (c PongConfig) AI(d DifficultyPreset) AIPreset {
	if p, ok := c.Difficulties[d]; ok && p.AISpeed > 0 {
		return p
	}
	if p, ok := defaultAIPresets[d]; ok {
		return p
	}
	return defaultAIPresets[DifficultyNormal]
}

// Item looks up a shop item by ID.
func (c EconomyConfig) Item(id string) (ShopItem, bool) {
	for _, it := range c.Shop {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}
