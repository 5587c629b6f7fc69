package importer

import (
	"fmt"
	"strings"

	"github.com/bggtools/shelfsync/internal/models"
)

// gameRef is the slice of a shelf entry the reconciler tracks in its
// lookup maps.
type gameRef struct {
	id   string
	name string
}

// reconcile merges incoming records into the existing shelf, returning
// created and updated counts.
//
// Two indexes are built from existing: linked games by BGG id, and
// unlinked (hand-entered) games by lower-cased name. Both are mutated
// as records are processed, in order, so later records observe the
// effects of earlier ones: once a record claims a hand-entered game by
// name, the game leaves the name index and is only reachable by id.
//
// Match order per record: BGG id, then name, then create. Updates touch
// only descriptive fields; played, tier and tier rank are never
// written. If two distinct incoming ids match the same hand-entered
// name, the first claims it and the second creates a new entry.
func reconcile(store Store, existing []models.Game, incoming []models.Thing) (created, updated int, err error) {
	byBGGID := make(map[int64]gameRef)
	manualByName := make(map[string]gameRef)

	for _, game := range existing {
		ref := gameRef{id: game.ID, name: game.Name}
		if game.BGGID != nil {
			byBGGID[*game.BGGID] = ref
		} else {
			manualByName[strings.ToLower(game.Name)] = ref
		}
	}

	for _, thing := range incoming {
		if ref, ok := byBGGID[thing.BGGID]; ok {
			if err := store.Update(ref.id, descriptiveFields(thing)); err != nil {
				return created, updated, fmt.Errorf("failed to update game %q: %w", thing.Name, err)
			}
			byBGGID[thing.BGGID] = gameRef{id: ref.id, name: thing.Name}
			updated++
			continue
		}

		nameKey := strings.ToLower(thing.Name)
		if ref, ok := manualByName[nameKey]; ok {
			fields := descriptiveFields(thing)
			fields["bgg_id"] = thing.BGGID
			if err := store.Update(ref.id, fields); err != nil {
				return created, updated, fmt.Errorf("failed to link game %q: %w", thing.Name, err)
			}
			delete(manualByName, nameKey)
			byBGGID[thing.BGGID] = gameRef{id: ref.id, name: thing.Name}
			updated++
			continue
		}

		bggID := thing.BGGID
		game := &models.Game{
			BGGID:         &bggID,
			Name:          thing.Name,
			YearPublished: thing.YearPublished,
			MinPlayers:    thing.MinPlayers,
			MaxPlayers:    thing.MaxPlayers,
			PlayingTime:   thing.PlayingTime,
			ThumbnailURL:  thing.ThumbnailURL,
			Played:        false,
		}
		if err := store.Create(game); err != nil {
			return created, updated, fmt.Errorf("failed to create game %q: %w", thing.Name, err)
		}
		byBGGID[thing.BGGID] = gameRef{id: game.ID, name: thing.Name}
		created++
	}

	return created, updated, nil
}

// descriptiveFields is the set of fields an import may write on an
// existing game.
func descriptiveFields(thing models.Thing) map[string]any {
	return map[string]any{
		"name":           thing.Name,
		"year_published": thing.YearPublished,
		"min_players":    thing.MinPlayers,
		"max_players":    thing.MaxPlayers,
		"playing_time":   thing.PlayingTime,
		"thumbnail_url":  thing.ThumbnailURL,
	}
}
