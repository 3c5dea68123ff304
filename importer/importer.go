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


package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// Stats summarizes one import run.
type Stats struct {
	GroupsCreated  int
	GroupsUpdated  int
	GlassesCreated int
	GlassesUpdated int
	AliasesWritten int
}

func (s *Stats) add(other Stats) {
	s.GroupsCreated += other.GroupsCreated
	s.GroupsUpdated += other.GroupsUpdated
	s.GlassesCreated += other.GlassesCreated
	s.GlassesUpdated += other.GlassesUpdated
	s.AliasesWritten += other.AliasesWritten
}

// row is one parsed CSV line.
type row struct {
	externalId  string
	groupName   string
	brands      string
	description string
	glassName   string
	aliases     []string
	line        int
}

// Importer loads CSV catalog exports. Groups are imported concurrently;
// rows within a group stay sequential so glass get-or-create is race-free.
type Importer struct {
	catalog storage.CatalogRepository
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the worker pool size for concurrent group import.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(imp *Importer) error {
		if size < 1 {
			size = 1
		}
		if imp.pool != nil {
			imp.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		imp.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		imp.logger = logger
		return nil
	}
}

// NewImporter creates an importer over the catalog repository.
func NewImporter(catalog storage.CatalogRepository, opts ...Option) (*Importer, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	imp := &Importer{
		catalog: catalog,
		pool:    pool,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(imp); err != nil {
			imp.Release()
			return nil, err
		}
	}
	return imp, nil
}

// Release releases the worker pool.
// The importer should not be used after calling Release.
func (imp *Importer) Release() {
	if imp.pool != nil {
		imp.pool.Release()
	}
}

// ImportCSV reads the catalog export and upserts groups, glasses, and
// aliases. The first error from any group aborts the run's result, but
// already-submitted groups finish their writes.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Stats, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}

	// Preserve first-seen group order for deterministic logs.
	byGroup := make(map[string][]row)
	var order []string
	for _, rw := range rows {
		if _, ok := byGroup[rw.externalId]; !ok {
			order = append(order, rw.externalId)
		}
		byGroup[rw.externalId] = append(byGroup[rw.externalId], rw)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		total    Stats
		firstErr error
	)
	for _, externalId := range order {
		groupRows := byGroup[externalId]
		wg.Add(1)
		submitErr := imp.pool.Submit(func() {
			defer wg.Done()
			stats, err := imp.importGroup(ctx, groupRows)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				imp.logger.Error("error importing group",
					"externalId", groupRows[0].externalId, "err", err)
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			total.add(stats)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	imp.logger.Info("import finished",
		"groups", len(order),
		"groupsCreated", total.GroupsCreated,
		"glassesCreated", total.GlassesCreated,
		"aliasesWritten", total.AliasesWritten)
	return &total, nil
}

// importGroup upserts one group and all of its rows inside a transaction.
func (imp *Importer) importGroup(ctx context.Context, rows []row) (Stats, error) {
	var stats Stats
	err := imp.catalog.WithTransaction(ctx, func(ctx context.Context) error {
		first := rows[0]
		group, err := imp.catalog.GetGroupByExternalId(ctx, first.externalId)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			created, err := imp.catalog.AddGroups(ctx, &core.GlassGroup{
				ExternalId:  first.externalId,
				Name:        first.groupName,
				Brands:      first.brands,
				Description: first.description,
				Active:      true,
			})
			if err != nil {
				return err
			}
			group = created[0]
			stats.GroupsCreated++
		case err != nil:
			return err
		default:
			if group.Name != first.groupName || group.Brands != first.brands ||
				group.Description != first.description {
				group.Name = first.groupName
				group.Brands = first.brands
				group.Description = first.description
				if _, err := imp.catalog.UpdateGroups(ctx, group); err != nil {
					return err
				}
				stats.GroupsUpdated++
			}
		}

		for _, rw := range rows {
			glass, err := imp.catalog.FindGlassByName(ctx, group.Id, rw.glassName)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				created, err := imp.catalog.AddGlasses(ctx, &core.Glass{
					GroupId: group.Id,
					Name:    rw.glassName,
					Active:  true,
				})
				if err != nil {
					return err
				}
				glass = created[0]
				stats.GlassesCreated++
			case err != nil:
				return err
			default:
				if !glass.Active {
					glass.Active = true
					if _, err := imp.catalog.UpdateGlasses(ctx, glass); err != nil {
						return err
					}
					stats.GlassesUpdated++
				}
			}

			if len(rw.aliases) == 0 {
				continue
			}
			aliases := make([]*core.GlassAlias, len(rw.aliases))
			for i, alias := range rw.aliases {
				aliases[i] = &core.GlassAlias{GlassId: glass.Id, Alias: alias}
			}
			written, err := imp.catalog.PutAliases(ctx, aliases...)
			if err != nil {
				return err
			}
			stats.AliasesWritten += len(written)
		}
		return nil
	})
	return stats, err
}

// parseCSV reads and validates the export. The header is required; a UTF-8
// BOM on the first cell is tolerated since spreadsheet exports carry one.
func parseCSV(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"external_id", "group_name", "glass_name"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, line, err)
		}

		rw := row{
			externalId:  field(record, "external_id"),
			groupName:   field(record, "group_name"),
			brands:      field(record, "brands"),
			description: field(record, "description"),
			glassName:   field(record, "glass_name"),
			aliases:     core.SplitAliases(field(record, "aliases")),
			line:        line,
		}
		if rw.externalId == "" || rw.groupName == "" || rw.glassName == "" {
			return nil, fmt.Errorf("%w: line %d: external_id, group_name, and glass_name are required", ErrBadRow, line)
		}
		rows = append(rows, rw)
	}
	return rows, nil
}
