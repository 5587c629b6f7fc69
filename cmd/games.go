package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
	"github.com/bggtools/shelfsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// GamesList prints the shelf, optionally filtered by tier or played state.
func (r *Runner) GamesList(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	criteria := map[string]any{}
	if tier := strings.ToUpper(strings.TrimSpace(cmd.String("tier"))); tier != "" {
		if !models.ValidTier(tier) {
			return fmt.Errorf("%w: unknown tier %q", shared.ErrInvalidInput, tier)
		}
		criteria["tier"] = tier
	}
	if cmd.Bool("played") {
		criteria["played"] = true
	}

	games, err := r.games.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(games, cmd.Bool("pretty"))
	}

	if len(games) == 0 {
		r.writePlain("%s\n", ui.Help("Shelf is empty. Run 'shelfsync import <username>' to fill it."))
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Shelf (%d games)", len(games)))
	for _, game := range games {
		r.writePlain("%s", game.ID)
		if game.Tier != nil {
			r.writePlain("  %s", ui.TierBadge(*game.Tier))
		}
		r.writePlain("  %s", game.Name)
		if game.YearPublished != nil {
			r.writePlain(" (%d)", *game.YearPublished)
		}
		r.writePlain("  %s, %s, %s\n",
			shared.PlayerRange(game.MinPlayers, game.MaxPlayers),
			shared.PlayingTimeString(game.PlayingTime),
			shared.PlayedString(game.Played))
	}
	return nil
}

// GamesAdd creates a shelf entry by hand, without a BGG link.
func (r *Runner) GamesAdd(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: a game name is required", shared.ErrInvalidInput)
	}

	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	game := &models.Game{Name: name}
	if year := int(cmd.Int("year")); year != 0 {
		game.YearPublished = &year
	}

	if err := r.games.Create(game); err != nil {
		return fmt.Errorf("failed to add game: %w", err)
	}

	r.logger.Info("game added", "id", game.ID, "name", game.Name)
	r.writePlain("%s %s (%s)\n", ui.OK("✓ Added"), game.Name, game.ID)
	return nil
}

// GamesRemove deletes a shelf entry.
func (r *Runner) GamesRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: a game id is required", shared.ErrInvalidInput)
	}

	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	if err := r.games.Delete(id); err != nil {
		if errors.Is(err, shared.ErrGameNotFound) {
			r.writePlain("%s\n", ui.Warn("No game with id "+id))
			return err
		}
		return fmt.Errorf("failed to remove game: %w", err)
	}

	r.writePlain("%s %s\n", ui.OK("✓ Removed"), id)
	return nil
}

// GamesTier ranks a game in a tier, appending it at the bottom of that
// tier's order. A tier of "-" clears the ranking.
func (r *Runner) GamesTier(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	label := strings.TrimSpace(cmd.StringArg("tier"))
	if id == "" || label == "" {
		return fmt.Errorf("%w: usage: games tier <id> <S|A|B|C|D|->", shared.ErrInvalidInput)
	}

	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	var tier *string
	if label != "-" {
		label = strings.ToUpper(label)
		tier = &label
	}

	if err := r.games.SetTier(id, tier); err != nil {
		return fmt.Errorf("failed to set tier: %w", err)
	}

	if tier == nil {
		r.writePlain("%s %s is now unranked\n", ui.OK("✓"), id)
	} else {
		r.writePlain("%s %s ranked in tier %s\n", ui.OK("✓"), id, ui.TierBadge(*tier))
	}
	return nil
}

// GamesPlayed marks a game played, or unplayed with --unplayed.
func (r *Runner) GamesPlayed(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: a game id is required", shared.ErrInvalidInput)
	}

	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	played := !cmd.Bool("unplayed")
	if err := r.games.SetPlayed(id, played); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	r.writePlain("%s %s marked %s\n", ui.OK("✓"), id, shared.PlayedString(played))
	return nil
}
