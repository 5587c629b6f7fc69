package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

// gameColumns maps update field names to their columns. Only these
// fields can be set through Update; everything else is managed by the
// repository itself.
var gameColumns = map[string]string{
	"name":           "name",
	"bgg_id":         "bgg_id",
	"year_published": "year_published",
	"min_players":    "min_players",
	"max_players":    "max_players",
	"playing_time":   "playing_time",
	"thumbnail_url":  "thumbnail_url",
	"played":         "played",
	"tier":           "tier",
	"tier_rank":      "tier_rank",
}

const gameSelect = `
	SELECT id, sequence, bgg_id, name, year_published, min_players, max_players,
	       playing_time, thumbnail_url, played, tier, tier_rank, created_at, updated_at
	FROM games
`

// GameRepository persists shelf games in SQLite.
//
// It is the concrete store behind the import pipeline's reconciliation
// and the tier board's assignment operations.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository with the given database connection
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a new game, assigning its id, sequence and timestamps.
// CreatedAt is set once here and never updated afterwards.
func (r *GameRepository) Create(game *models.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "games")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now().UTC()
	game.ID = shared.GenerateID()
	game.Sequence = sequence
	game.CreatedAt = now
	game.UpdatedAt = now

	query := `
		INSERT INTO games (id, sequence, bgg_id, name, year_published, min_players, max_players,
		                   playing_time, thumbnail_url, played, tier, tier_rank, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		game.ID,
		game.Sequence,
		game.BGGID,
		game.Name,
		game.YearPublished,
		game.MinPlayers,
		game.MaxPlayers,
		game.PlayingTime,
		game.ThumbnailURL,
		game.Played,
		game.Tier,
		game.TierRank,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") && strings.Contains(err.Error(), "bgg_id") {
			return fmt.Errorf("%w: %v", shared.ErrDuplicateBGG, err)
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

// Get retrieves a game by id.
func (r *GameRepository) Get(id string) (*models.Game, error) {
	row := r.db.QueryRow(gameSelect+" WHERE id = ?", id)
	return scanGame(row)
}

// GetByBGGID retrieves the game linked to a BGG id, if any.
func (r *GameRepository) GetByBGGID(bggID int64) (*models.Game, error) {
	row := r.db.QueryRow(gameSelect+" WHERE bgg_id = ?", bggID)
	return scanGame(row)
}

// List retrieves games matching the given criteria (allowed keys:
// "played", "tier"), ordered by insertion sequence. A nil criteria map
// lists the whole shelf.
func (r *GameRepository) List(criteria map[string]any) ([]models.Game, error) {
	query := gameSelect
	var clauses []string
	var args []any

	for key, value := range criteria {
		switch key {
		case "played", "tier":
			clauses = append(clauses, key+" = ?")
			args = append(args, value)
		default:
			return nil, fmt.Errorf("unsupported list criteria: %s", key)
		}
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY sequence"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		game, err := scanGameRow(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

// Update applies a partial field update to the game with the given id.
// Field names follow gameColumns; unknown ids fail with
// [shared.ErrGameNotFound]. UpdatedAt is bumped on every call.
func (r *GameRepository) Update(id string, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("no update fields provided")
	}

	var sets []string
	var args []any
	for key, value := range fields {
		column, ok := gameColumns[key]
		if !ok {
			return fmt.Errorf("unsupported update field: %s", key)
		}
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE games SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}

	return nil
}

// Delete removes a game from the shelf. Imports never call this.
func (r *GameRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}

	return nil
}

// SetPlayed flips the played flag on one game.
func (r *GameRepository) SetPlayed(id string, played bool) error {
	return r.Update(id, map[string]any{"played": played})
}

// SetTier assigns a game to a tier, appending it at the end of that
// tier's ranking. A nil tier removes the game from the board and clears
// its rank.
func (r *GameRepository) SetTier(id string, tier *string) error {
	if tier == nil {
		return r.Update(id, map[string]any{"tier": nil, "tier_rank": nil})
	}
	if !models.ValidTier(*tier) {
		return fmt.Errorf("invalid tier: %s", *tier)
	}

	var next int
	err := r.db.QueryRow("SELECT COALESCE(MAX(tier_rank) + 1, 0) FROM games WHERE tier = ?", *tier).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to compute tier rank: %w", err)
	}

	return r.Update(id, map[string]any{"tier": *tier, "tier_rank": next})
}

// ApplyTierUpdates applies a batch of tier/rank assignments in one
// transaction, as produced by a board reorder. Any unknown id or
// invalid tier label rolls back the whole batch.
func (r *GameRepository) ApplyTierUpdates(updates []models.TierUpdate) error {
	for _, u := range updates {
		if u.Tier != nil && !models.ValidTier(*u.Tier) {
			return fmt.Errorf("invalid tier: %s", *u.Tier)
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, u := range updates {
		result, err := tx.Exec(
			"UPDATE games SET tier = ?, tier_rank = ?, updated_at = ? WHERE id = ?",
			u.Tier, u.TierRank, now, u.GameID,
		)
		if err != nil {
			return fmt.Errorf("failed to update tier: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("%w: %s", shared.ErrGameNotFound, u.GameID)
		}
	}

	return tx.Commit()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row *sql.Row) (*models.Game, error) {
	game, err := scanGameRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func scanGameRow(row rowScanner) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID,
		&game.Sequence,
		&game.BGGID,
		&game.Name,
		&game.YearPublished,
		&game.MinPlayers,
		&game.MaxPlayers,
		&game.PlayingTime,
		&game.ThumbnailURL,
		&game.Played,
		&game.Tier,
		&game.TierRank,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	return &game, nil
}
