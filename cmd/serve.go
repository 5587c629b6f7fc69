package main

import (
	"context"

	"github.com/bggtools/shelfsync/internal/importer"
	"github.com/bggtools/shelfsync/internal/server"
	"github.com/bggtools/shelfsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// Serve exposes the shelf API over HTTP until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)
	if err := r.open(); err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	engine := importer.NewEngine(r.catalog, r.games, r.runs)
	handler := server.NewShelfHandler(r.games, engine)
	router := server.New(handler, r.logger)

	r.logger.Info("starting server", "addr", addr)
	r.writePlain("%s\n", ui.Title("Shelf API listening on "+addr))
	r.writePlain("%s\n", ui.Help("Press Ctrl+C to stop."))

	return server.ListenAndServe(addr, router)
}
