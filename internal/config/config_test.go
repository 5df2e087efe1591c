package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := parsePong(defaultPongYAML, false)
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	def := DefaultPongConfig()

	if math.Abs(cfg.Physics.SubStep-def.Physics.SubStep) > 1e-12 {
		t.Errorf("sub_step = %v, expected %v", cfg.Physics.SubStep, def.Physics.SubStep)
	}
	if cfg.Gameplay != def.Gameplay {
		t.Errorf("gameplay = %+v, expected %+v", cfg.Gameplay, def.Gameplay)
	}
	if cfg.Paddles != def.Paddles {
		t.Errorf("paddles = %+v, expected %+v", cfg.Paddles, def.Paddles)
	}
	for _, d := range Difficulties() {
		if cfg.AI(d) != def.AI(d) {
			t.Errorf("AI(%s) = %+v, expected %+v", d, cfg.AI(d), def.AI(d))
		}
	}
	if len(cfg.Economy.Shop) != 4 {
		t.Errorf("shop has %d items, expected 4", len(cfg.Economy.Shop))
	}
}

func TestLoadPongCustomYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.yaml")
	data := []byte("gameplay:\n  win_score: 3\ndifficulties:\n  hard:\n    ai_speed: 9\n    accel: 0.2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if cfg.Gameplay.WinScore != 3 {
		t.Errorf("win_score = %d, expected 3", cfg.Gameplay.WinScore)
	}
	if cfg.Gameplay.TrailLength != 20 {
		t.Errorf("unset trail_length should keep default, got %d", cfg.Gameplay.TrailLength)
	}
	if got := cfg.AI(DifficultyHard); got.AISpeed != 9 || got.Accel != 0.2 {
		t.Errorf("AI(hard) = %+v", got)
	}
	if got := cfg.AI(DifficultyEasy); got.AISpeed != 4.5 {
		t.Errorf("AI(easy) should keep default, got %+v", got)
	}
}

func TestLoadPongCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.toml")
	data := []byte("[gameplay]\nwin_score = 11\n\n[economy]\nrally_coins = 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if cfg.Gameplay.WinScore != 11 || cfg.Economy.RallyCoins != 4 {
		t.Errorf("TOML values not applied: %+v / %+v", cfg.Gameplay, cfg.Economy)
	}
}

func TestLoadPongErrors(t *testing.T) {
	if _, err := LoadPong(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPong(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestNormalize(t *testing.T) {
	cfg := PongConfig{}
	cfg.normalize()
	if cfg.Physics.SubStep <= 0 || cfg.Gameplay.WinScore != 7 || cfg.Economy.DefaultTrail != "cyan" {
		t.Errorf("normalize did not repair zero config: %+v", cfg)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Normal", DifficultyNormal, false},
		{" HARD ", DifficultyHard, false},
		{"insane", DifficultyInsane, false},
		{"fixed", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestDifficultyNextWraps(t *testing.T) {
	if DifficultyInsane.Next() != DifficultyEasy {
		t.Error("insane should wrap to easy")
	}
	if DifficultyEasy.Next() != DifficultyNormal {
		t.Error("easy should advance to normal")
	}
}

func TestShopItemLookup(t *testing.T) {
	eco := DefaultPongConfig().Economy
	if it, ok := eco.Item("trail-lime"); !ok || it.Price != 35 {
		t.Errorf("Item(trail-lime) = %+v, %v", it, ok)
	}
	if _, ok := eco.Item("trail-gold"); ok {
		t.Error("unknown item should not be found")
	}
}

func TestLoadHubFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HUB_BACKEND", "memory")
	t.Setenv("HUB_FPS", "30")
	t.Setenv("HUB_HTTP_ADDR", "")

	cfg := LoadHub()
	if cfg.Backend != BackendMemory || cfg.FPS != 30 {
		t.Errorf("LoadHub() = %+v", cfg)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("empty env should use default, got %q", cfg.HTTPAddr)
	}
}
