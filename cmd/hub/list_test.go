package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/games-hub/internal/registry"
)

func TestWriteGameList(t *testing.T) {
	tests := []struct {
		name  string
		games []registry.GameInfo
		want  []string
	}{
		{
			name:  "empty",
			games: nil,
			want:  []string{"No games registered."},
		},
		{
			name: "description in its own column",
			games: []registry.GameInfo{
				{ID: "pong", Title: "Neon Pong", Description: "Rally against the AI"},
				{ID: "solo", Title: "Solo"},
			},
			want: []string{"ID", "TITLE", "DESCRIPTION", "pong", "Neon Pong", "Rally against the AI", "solo", "hub play <id>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeGameList(&buf, tt.games); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestGameListRowsShareALine(t *testing.T) {
	var buf bytes.Buffer
	games := []registry.GameInfo{{ID: "pong", Title: "Neon Pong", Description: "Rally against the AI"}}
	if err := writeGameList(&buf, games); err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "pong") {
			if !strings.Contains(line, "Neon Pong") || !strings.Contains(line, "Rally against the AI") {
				t.Errorf("row split across lines: %q", line)
			}
			return
		}
	}
	t.Error("no row for pong")
}
