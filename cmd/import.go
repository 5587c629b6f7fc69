package main

import (
	"context"
	"strings"

	"github.com/bggtools/shelfsync/internal/importer"
	"github.com/bggtools/shelfsync/internal/shared"
	"github.com/bggtools/shelfsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// ImportCollection runs a full BGG → shelf sync for one username.
func (r *Runner) ImportCollection(ctx context.Context, cmd *cli.Command) error {
	username := strings.TrimSpace(cmd.StringArg("username"))
	if username == "" {
		r.writePlain("%s\n", ui.Err(importer.UserMessage(shared.ErrInvalidInput)))
		return shared.ErrInvalidInput
	}

	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	r.logger.Info("starting import", "username", username)
	r.writePlain("%s\n\n", ui.Title("Importing collection for "+username))

	// Progress updates render as they arrive; the channel is buffered so
	// the engine never blocks on a slow terminal.
	progressCh := make(chan importer.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case importer.PollCollection:
				r.writePlain("⌛ %s\n", update.Message)
			case importer.FetchDetails:
				r.writePlain("   %s\n", update.Message)
			case importer.Reconcile:
				r.writePlain("\n🔄 %s\n", update.Message)
			}
		}
	}()

	engine := importer.NewEngine(r.catalog, r.games, r.runs)
	summary, err := engine.Run(ctx, username, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		r.writePlain("\n%s\n", ui.Err(importer.UserMessage(err)))
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete!")
	r.writePlain("Created: %d games\n", summary.Created)
	r.writePlain("Updated: %d games\n", summary.Updated)
	r.writePlain("Detail batches fetched: %d\n", summary.Batches)
	return nil
}
