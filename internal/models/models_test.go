package models

import (
	"testing"
	"time"
)

func TestValidTier(t *testing.T) {
	for _, tier := range Tiers {
		if !ValidTier(tier) {
			t.Errorf("ValidTier(%q) = false", tier)
		}
	}
	for _, label := range []string{"", "s", "F", "SS"} {
		if ValidTier(label) {
			t.Errorf("ValidTier(%q) = true", label)
		}
	}
}

func TestGameValidate(t *testing.T) {
	tier := "S"
	badTier := "Z"

	tests := []struct {
		name    string
		game    Game
		wantErr bool
	}{
		{"valid minimal", Game{Name: "Gloomhaven"}, false},
		{"valid with tier", Game{Name: "Gloomhaven", Tier: &tier}, false},
		{"blank name", Game{Name: "   "}, true},
		{"bad tier", Game{Name: "Gloomhaven", Tier: &badTier}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.game.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestImportRunValidate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		run     ImportRun
		wantErr bool
	}{
		{"succeeded", ImportRun{Username: "alice", Status: RunSucceeded, StartedAt: now, FinishedAt: now}, false},
		{"failed", ImportRun{Username: "alice", Status: RunFailed, Error: "timeout"}, false},
		{"blank username", ImportRun{Status: RunSucceeded}, true},
		{"bad status", ImportRun{Username: "alice", Status: "partial"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
