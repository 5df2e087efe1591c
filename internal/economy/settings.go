package economy

import (
	"context"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/storage"
)

// SettingsValues is a snapshot of user preferences.
type SettingsValues struct {
	Difficulty   config.DifficultyPreset `json:"difficulty"`
	Theme        string                  `json:"theme"`
	AudioEnabled bool                    `json:"audioEnabled"`
	AudioVolume  float64                 `json:"audioVolume"`
}

// DefaultSettings returns the values used before anything is persisted.
func DefaultSettings() SettingsValues {
	return SettingsValues{
		Difficulty:   config.DifficultyNormal,
		Theme:        "cyan",
		AudioEnabled: true,
		AudioVolume:  0.5,
	}
}

// Settings persists user preferences with the same write-through,
// log-on-failure policy as Economy.
type Settings struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *log.Logger
	v      SettingsValues
}

// NewSettings creates settings holding defaults.
func NewSettings(kv storage.KV, logger *log.Logger) *Settings {
	if logger == nil {
		logger = log.Default()
	}
	return &Settings{kv: kv, logger: logger, v: DefaultSettings()}
}

// Load reads persisted preferences, keeping defaults for missing or invalid values.
func (s *Settings) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := DefaultSettings()
	raw := loadSetting(ctx, s, storage.KeyDifficulty, string(def.Difficulty))
	if d, err := config.ParseDifficulty(raw); err == nil {
		s.v.Difficulty = d
	}

	s.v.Theme = loadSetting(ctx, s, storage.KeyTheme, def.Theme)
	s.v.AudioEnabled = loadSetting(ctx, s, storage.KeyAudioEnabled, def.AudioEnabled)
	s.v.AudioVolume = clampVolume(loadSetting(ctx, s, storage.KeyAudioVolume, def.AudioVolume))
}

func loadSetting[T any](ctx context.Context, s *Settings, key string, fallback T) T {
	v, err := storage.GetJSON(ctx, s.kv, key, fallback)
	if err != nil {
		s.logger.Warn("load failed, using default", "key", key, "error", err)
	}
	return v
}

// Values returns a snapshot of all preferences.
func (s *Settings) Values() SettingsValues {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

// Difficulty returns the selected difficulty.
func (s *Settings) Difficulty() config.DifficultyPreset {
	return s.Values().Difficulty
}

// SetDifficulty stores the selected difficulty. Whether a running match may
// change difficulty is the match's decision, not this store's.
func (s *Settings) SetDifficulty(d config.DifficultyPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Difficulty = d
	s.persist(storage.KeyDifficulty, string(d))
}

// SetTheme stores the UI theme name.
func (s *Settings) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Theme = theme
	s.persist(storage.KeyTheme, theme)
}

// SetAudioEnabled turns sound cues on or off.
func (s *Settings) SetAudioEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.AudioEnabled = on
	s.persist(storage.KeyAudioEnabled, on)
}

// SetAudioVolume stores the volume, clamped to [0, 1].
func (s *Settings) SetAudioVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.AudioVolume = clampVolume(v)
	s.persist(storage.KeyAudioVolume, s.v.AudioVolume)
}

func (s *Settings) persist(key string, v any) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := storage.SetJSON(ctx, s.kv, key, v); err != nil {
		s.logger.Warn("persist failed", "key", key, "error", err)
	}
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
