package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyInsane DifficultyPreset = "insane"
)

// Difficulties lists presets from easiest to hardest.
func Difficulties() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane}
}

// ParseDifficulty converts user input into a preset. Matching is case-insensitive.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	d := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or insane)", s)
}

// Next returns the following preset, wrapping from insane back to easy.
func (d DifficultyPreset) Next() DifficultyPreset {
	all := Difficulties()
	for i, p := range all {
		if p == d {
			return all[(i+1)%len(all)]
		}
	}
	return DifficultyNormal
}

var defaultAIPresets = map[DifficultyPreset]AIPreset{
	DifficultyEasy:   {AISpeed: 4.5, Accel: 0.08},
	DifficultyNormal: {AISpeed: 6.5, Accel: 0.12},
	DifficultyHard:   {AISpeed: 8.5, Accel: 0.16},
	DifficultyInsane: {AISpeed: 12.5, Accel: 0.22},
}
