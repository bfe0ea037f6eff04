// Copyright 2026 Harborview Analytics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "signals",
		Usage: "Company intelligence pipeline and API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
						Value: ":8080",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Background job worker count",
						Value: 2,
					},
					&cli.StringFlag{
						Name:  "missions",
						Usage: "Path to a TOML file replacing the default specialist roster",
					},
				),
			},
			{
				Name:      "analyze",
				Usage:     "Run the pipeline once for a company and print the result",
				ArgsUsage: "[company name]",
				Action:    analyzeCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Company website URL",
					},
					&cli.StringFlag{
						Name:  "doc",
						Usage: "Path to a PDF document to analyze",
					},
					&cli.BoolFlag{
						Name:  "local-pdf",
						Usage: "Parse PDFs in-process instead of the hosted parser",
					},
				),
			},
			{
				Name:      "refresh",
				Usage:     "Re-run the pipeline for a stored company",
				ArgsUsage: "<slug>",
				Action:    refreshCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Query the knowledge index",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
					&cli.StringFlag{
						Name:  "company",
						Usage: "Restrict the search to one company slug",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of hits",
						Value: 5,
					},
				),
			},
			{
				Name:   "list",
				Usage:  "List stored companies",
				Action: listCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
					&cli.BoolFlag{
						Name:  "watchlist",
						Usage: "Only show watchlisted companies",
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Recompute stored knowledge vectors with the current embedding model",
				Action: reembedCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "missions",
				Usage:  "Show the deep-dive mission roster",
				Action: missionsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "Validate and show a TOML mission roster instead of the built-in one",
					},
				},
			},
			{
				Name:      "watchlist",
				Usage:     "Add or remove a company from the watchlist",
				ArgsUsage: "<slug>",
				Action:    watchlistCommand,
				Flags: append(capabilityFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./signals_db",
					},
					&cli.BoolFlag{
						Name:  "remove",
						Usage: "Remove instead of add",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
