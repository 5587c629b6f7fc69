// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the config file and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and run database migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// importCommand pulls a BGG collection into the local shelf.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "import",
		Aliases: []string{"sync"},
		Usage:   "Import a BoardGameGeek collection by username",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "username",
			},
		},
		Flags:  []cli.Flag{configFlag()},
		Action: r.ImportCollection,
	}
}

// gamesCommand handles the local shelf
func gamesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "games",
		Aliases: []string{"g"},
		Usage:   "Browse and edit the local shelf",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List games on the shelf",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "tier",
						Usage: "Only show games ranked in this tier",
					},
					&cli.BoolFlag{
						Name:  "played",
						Usage: "Only show played games",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.GamesList,
			},
			{
				Name:  "add",
				Usage: "Add a game by hand (no BGG link)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "year",
						Usage: "Year the game was published",
					},
				},
				Action: r.GamesAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a game from the shelf",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.GamesRemove,
			},
			{
				Name:  "tier",
				Usage: "Rank a game in a tier, or clear its rank with '-'",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
					&cli.StringArg{
						Name: "tier",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.GamesTier,
			},
			{
				Name:  "played",
				Usage: "Mark a game as played or unplayed",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "unplayed",
						Usage: "Mark the game unplayed instead",
					},
				},
				Action: r.GamesPlayed,
			},
		},
	}
}

// runsCommand reports import history
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Show import history",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Only show runs for this BGG username",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.RunsList,
	}
}

// exportCommand writes the shelf to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the shelf as CSV, Markdown or plain text",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown or txt",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output file path",
				Required: true,
			},
		},
		Action: r.ExportShelf,
	}
}

// serveCommand exposes the shelf over HTTP
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the shelf API over HTTP",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides config)",
			},
		},
		Action: r.Serve,
	}
}
