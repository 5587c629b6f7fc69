// package models defines the data model for the shelfsync collection service
package models

import (
	"fmt"
	"strings"
	"time"
)

// Tiers lists the valid tier labels for ranked games, best first.
var Tiers = []string{"S", "A", "B", "C", "D"}

// ValidTier reports whether label is one of the recognized tier labels.
func ValidTier(label string) bool {
	for _, t := range Tiers {
		if t == label {
			return true
		}
	}
	return false
}

// Thing is one normalized entry from the remote BGG catalog.
//
// Optional fields are nil when the catalog response carried no usable
// value; they are never coerced to zero.
type Thing struct {
	BGGID         int64   `json:"bgg_id"`
	Name          string  `json:"name"`
	YearPublished *int    `json:"year_published,omitempty"`
	MinPlayers    *int    `json:"min_players,omitempty"`
	MaxPlayers    *int    `json:"max_players,omitempty"`
	PlayingTime   *int    `json:"playing_time,omitempty"`
	ThumbnailURL  *string `json:"thumbnail_url,omitempty"`
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Batches int `json:"batches"`
}

// TierUpdate is one game's tier assignment within a reorder operation.
type TierUpdate struct {
	GameID   string  `json:"id"`
	Tier     *string `json:"tier"`
	TierRank *int    `json:"tier_rank"`
}

// Game is a game on the user's shelf.
//
// BGGID is nil for hand-entered games until an import claims them by
// name; once set it is the link to the remote catalog and the game is
// never matched by name again. Tier and TierRank belong to the tier
// board and are never touched by imports.
type Game struct {
	ID            string    `json:"id"`
	Sequence      int       `json:"-"`
	BGGID         *int64    `json:"bgg_id,omitempty"`
	Name          string    `json:"name"`
	YearPublished *int      `json:"year_published,omitempty"`
	MinPlayers    *int      `json:"min_players,omitempty"`
	MaxPlayers    *int      `json:"max_players,omitempty"`
	PlayingTime   *int      `json:"playing_time,omitempty"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
	Played        bool      `json:"played"`
	Tier          *string   `json:"tier,omitempty"`
	TierRank      *int      `json:"tier_rank,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate checks that the game can be persisted.
func (g *Game) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("game name cannot be empty")
	}
	if g.Tier != nil && !ValidTier(*g.Tier) {
		return fmt.Errorf("invalid tier: %s", *g.Tier)
	}
	return nil
}

// Import run status values.
const (
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// ImportRun records one invocation of the import pipeline.
type ImportRun struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"-"`
	Username   string    `json:"username"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Batches    int       `json:"batches"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Validate checks that the run record can be persisted.
func (r *ImportRun) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("import run username cannot be empty")
	}
	if r.Status != RunSucceeded && r.Status != RunFailed {
		return fmt.Errorf("invalid import run status: %s", r.Status)
	}
	return nil
}
