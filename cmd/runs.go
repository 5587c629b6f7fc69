package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bggtools/shelfsync/internal/formatter"
	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// RunsList prints import history, newest first.
func (r *Runner) RunsList(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	runs, err := r.runs.List(strings.TrimSpace(cmd.String("username")))
	if err != nil {
		return fmt.Errorf("failed to list import runs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		r.writePlain("%s\n", ui.Help("No imports recorded yet."))
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Import History (%d runs)", len(runs)))
	for _, run := range runs {
		status := ui.OK(run.Status)
		if run.Status == models.RunFailed {
			status = ui.Err(run.Status)
		}
		r.writePlain("%s  %s  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04"), run.Username, status)
		if run.Status == models.RunSucceeded {
			r.writePlain("    created %d, updated %d, %d batches\n", run.Created, run.Updated, run.Batches)
		} else if run.Error != "" {
			r.writePlain("    %s\n", run.Error)
		}
	}
	return nil
}

// ExportShelf writes the full shelf to a file in the requested format.
func (r *Runner) ExportShelf(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	games, err := r.games.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if err := formatter.WriteExport(games, format, output); err != nil {
		return err
	}

	r.logger.Info("shelf exported", "format", format, "path", output, "games", len(games))
	r.writePlain("%s %d games written to %s\n", ui.OK("✓ Exported"), len(games), output)
	return nil
}
