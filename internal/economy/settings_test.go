package economy

import (
	"context"
	"testing"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/storage"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings(storage.NewMemoryKV(), nil)
	s.Load(context.Background())

	if s.Values() != DefaultSettings() {
		t.Errorf("Values() = %+v, expected defaults", s.Values())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := NewSettings(kv, nil)
	s.SetDifficulty(config.DifficultyInsane)
	s.SetTheme("pink")
	s.SetAudioEnabled(false)
	s.SetAudioVolume(1.7)

	reloaded := NewSettings(kv, nil)
	reloaded.Load(context.Background())
	v := reloaded.Values()

	if v.Difficulty != config.DifficultyInsane || v.Theme != "pink" || v.AudioEnabled || v.AudioVolume != 1 {
		t.Errorf("reloaded settings = %+v", v)
	}

	raw, _ := storage.GetJSON(context.Background(), kv, storage.KeyDifficulty, "")
	if raw != "insane" {
		t.Errorf("difficulty stored as %q", raw)
	}
}

func TestSettingsInvalidDifficultyIgnored(t *testing.T) {
	kv := storage.NewMemoryKV()
	_ = storage.SetJSON(context.Background(), kv, storage.KeyDifficulty, "nightmare")

	s := NewSettings(kv, nil)
	s.Load(context.Background())
	if s.Difficulty() != config.DifficultyNormal {
		t.Errorf("Difficulty() = %q, expected normal", s.Difficulty())
	}
}

func TestClampVolume(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 3: 1} {
		if got := clampVolume(in); got != want {
			t.Errorf("clampVolume(%v) = %v", in, got)
		}
	}
}
