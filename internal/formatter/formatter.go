// package formatter exports the game shelf to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

// ExportToCSV renders the shelf as CSV with columns: Name, BGGID, Year, Players, PlayingTime, Played, Tier
func ExportToCSV(games []models.Game) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "BGGID", "Year", "Players", "PlayingTime", "Played", "Tier"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, game := range games {
		bggID := ""
		if game.BGGID != nil {
			bggID = strconv.FormatInt(*game.BGGID, 10)
		}
		tier := ""
		if game.Tier != nil {
			tier = *game.Tier
		}
		record := []string{
			game.Name,
			bggID,
			shared.OptInt(game.YearPublished),
			shared.PlayerRange(game.MinPlayers, game.MaxPlayers),
			shared.PlayingTimeString(game.PlayingTime),
			strconv.FormatBool(game.Played),
			tier,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders the shelf as a Markdown document, grouping
// ranked games by tier ahead of the unranked remainder.
func ExportToMarkdown(games []models.Game, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Game Shelf"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Games**: %d\n\n", len(games)))

	ranked := make(map[string][]models.Game)
	var unranked []models.Game
	for _, game := range games {
		if game.Tier != nil {
			ranked[*game.Tier] = append(ranked[*game.Tier], game)
		} else {
			unranked = append(unranked, game)
		}
	}

	for _, tier := range models.Tiers {
		games := ranked[tier]
		if len(games) == 0 {
			continue
		}
		sort.SliceStable(games, func(i, j int) bool {
			a, b := games[i].TierRank, games[j].TierRank
			if a == nil || b == nil {
				return b == nil && a != nil
			}
			return *a < *b
		})
		buf.WriteString(fmt.Sprintf("## Tier %s\n\n", tier))
		for _, game := range games {
			writeMarkdownLine(&buf, game)
		}
		buf.WriteString("\n")
	}

	if len(unranked) > 0 {
		buf.WriteString("## Unranked\n\n")
		for _, game := range unranked {
			writeMarkdownLine(&buf, game)
		}
	}

	return buf.Bytes(), nil
}

func writeMarkdownLine(buf *bytes.Buffer, game models.Game) {
	yearPart := ""
	if game.YearPublished != nil {
		yearPart = fmt.Sprintf(" (%d)", *game.YearPublished)
	}
	buf.WriteString(fmt.Sprintf("- %s%s: %s players, %s, %s\n",
		game.Name,
		yearPart,
		shared.PlayerRange(game.MinPlayers, game.MaxPlayers),
		shared.PlayingTimeString(game.PlayingTime),
		shared.PlayedString(game.Played),
	))
}

// ExportToText renders the shelf as plain text, one game per line.
func ExportToText(games []models.Game) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Games: %d\n\n", len(games)))
	for i, game := range games {
		tier := ""
		if game.Tier != nil {
			tier = fmt.Sprintf(" [%s]", *game.Tier)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s (%s)\n", i+1, game.Name, tier, shared.PlayedString(game.Played)))
	}

	return buf.Bytes(), nil
}

// WriteExport renders games in the given format ("csv", "markdown" or
// "txt") and writes the result to path.
func WriteExport(games []models.Game, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(games)
	case "markdown", "md":
		data, err = ExportToMarkdown(games, "")
	case "txt", "text":
		data, err = ExportToText(games)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
