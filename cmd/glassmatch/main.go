// Copyright 2025 Poiesic Systems
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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/glassmatch"
	"github.com/poiesic/glassmatch/importer"
	"github.com/poiesic/glassmatch/match"
	"github.com/poiesic/glassmatch/render"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "glassmatch",
		Usage: "Screen protector compatibility catalog and matcher",
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
				Name:   "import",
				Usage:  "Import groups, glasses, and aliases from a CSV export",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the CSV export file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent group import workers",
					},
				},
			},
			{
				Name:   "renormalize",
				Usage:  "Recompute the normalized form of every stored alias",
				Action: renormalizeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of aliases to rewrite in each batch",
						Value: importer.DefaultRenormalizeBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N aliases",
						Value: 100,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Resolve a query against the catalog and print the result",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "premium",
						Usage: "Render the full item lists instead of the free tier",
					},
					&cli.IntFlag{
						Name:  "chunk-limit",
						Usage: "Transport chunk budget in characters",
						Value: render.DefaultChunkLimit,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := glassmatch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var opts []importer.Option
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, importer.WithPoolSize(workers))
	}
	imp, err := db.NewImporter(opts...)
	if err != nil {
		return fmt.Errorf("failed to create importer: %w", err)
	}
	defer imp.Release()

	f, err := os.Open(c.String("csv"))
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	stats, err := imp.ImportCSV(ctx, f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Done. Groups +%d (updated %d), Glasses +%d (updated %d), Aliases %d\n",
		stats.GroupsCreated, stats.GroupsUpdated,
		stats.GlassesCreated, stats.GlassesUpdated,
		stats.AliasesWritten)
	return nil
}

func renormalizeCommand(c *cli.Context) error {
	ctx := context.Background()

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	reportInterval := c.Int("report-interval")
	if reportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	db, err := glassmatch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	renorm, err := db.NewRenormalizer(
		importer.WithBatchSize(batchSize),
		importer.WithProgress(importer.NewProgress(os.Stderr, reportInterval)),
	)
	if err != nil {
		return fmt.Errorf("failed to create renormalizer: %w", err)
	}

	processed, err := renorm.Run(ctx)
	if err != nil {
		return fmt.Errorf("renormalization failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Renormalized %d aliases\n", processed)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	db, err := glassmatch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	resolver, err := db.NewResolver()
	if err != nil {
		return fmt.Errorf("failed to create resolver: %w", err)
	}

	response, err := resolver.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, match.ErrEmptyQuery) {
			return fmt.Errorf("query argument is required")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	renderer := render.NewRenderer(render.DefaultConfig())
	blocks := renderer.Render(response, c.Bool("premium"))
	chunks := render.Chunk(blocks, c.Int("chunk-limit"))
	for i, chunk := range chunks {
		if i > 0 {
			fmt.Println("\n---")
		}
		fmt.Println(chunk)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
