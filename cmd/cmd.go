// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// packCommand handles pack authoring operations
func packCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pack",
		Usage: "Song pack operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a pack of songs from a tracklist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Pack name (created if it does not exist)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"a"},
						Usage:   "Artist applied to every song",
					},
					&cli.StringFlag{
						Name:  "album",
						Usage: "Album applied to every song",
					},
					&cli.BoolFlag{
						Name:  "per-line-artist",
						Usage: "Parse each line as 'Artist - Title'",
					},
					&cli.IntFlag{
						Name:    "priority",
						Aliases: []string{"p"},
						Usage:   "Pack priority for list ordering (lower sorts first)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read song titles from a file, one per line (default: stdin)",
					},
					&cli.BoolFlag{
						Name:  "series",
						Usage: "Provision an album series alongside the pack",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Album year for the series",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover image URL for the series",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Series description",
					},
					&cli.BoolFlag{
						Name:  "curate",
						Usage: "Open the curation TUI after series provisioning",
					},
				},
				Action: r.PackCreate,
			},
			{
				Name:  "list",
				Usage: "List packs ordered by priority",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PackList,
			},
			{
				Name:  "songs",
				Usage: "List songs in a pack",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Pack ID",
					},
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Pack name (used when --id is not given)",
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
				Action: r.PackSongs,
			},
		},
	}
}

// seriesCommand handles album series curation operations
func seriesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "series",
		Aliases: []string{"album"},
		Usage:   "Album series curation",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List album series",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SeriesList,
			},
			{
				Name:  "status",
				Usage: "Show tracklist coverage for a series",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Series ID",
						Required: true,
					},
				},
				Action: r.SeriesStatus,
			},
			{
				Name:  "edit",
				Usage: "Curate an existing series interactively",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Series ID",
						Required: true,
					},
				},
				Action: r.SeriesEdit,
			},
			{
				Name:  "create",
				Usage: "Curate an album interactively and save it as a new pack + series",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "artist",
						Aliases:  []string{"a"},
						Usage:    "Album artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "album",
						Usage:    "Album name",
						Required: true,
					},
				},
				Action: r.SeriesCreate,
			},
			{
				Name:  "export",
				Usage: "Export a series coverage report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Series ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, or text",
						Value: "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base filename or directory depending on format)",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover image URL to embed in markdown exports",
					},
				},
				Action: r.SeriesExport,
			},
		},
	}
}

// settingsCommand handles user preference operations
func settingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "User preferences",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show current settings",
				Action: r.SettingsShow,
			},
			{
				Name:  "enrich",
				Usage: "Enable or disable catalog enrichment during pack creation",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "state",
					},
				},
				Action: r.SettingsEnrich,
			},
		},
	}
}

// serveCommand starts the read-only JSON API server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve pack and series data over HTTP",
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
