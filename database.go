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


package glassmatch

import (
	"log/slog"

	"github.com/poiesic/glassmatch/analytics"
	"github.com/poiesic/glassmatch/billing"
	"github.com/poiesic/glassmatch/importer"
	"github.com/poiesic/glassmatch/match"
	"github.com/poiesic/glassmatch/storage"
	"github.com/poiesic/glassmatch/storage/badger"
)

// Database bundles the storage backend with the repositories and is the
// construction point for the resolver, billing, analytics, and importer
// components.
type Database struct {
	backend     *badger.Backend
	catalogRepo storage.CatalogRepository
	userRepo    storage.UserRepository
	eventRepo   storage.EventRepository
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory opens the backend without a backing file. Used by tests and
// throwaway environments.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	catalogRepo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	userRepo, err := badger.NewUserRepository(backend)
	if err != nil {
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	eventRepo, err := badger.NewEventRepository(backend)
	if err != nil {
		userRepo.Close()
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:     backend,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		logger:      slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.eventRepo.Close(); err != nil {
		db.logger.Error("error closing event repository", "err", err)
		return err
	}
	if err := db.userRepo.Close(); err != nil {
		db.logger.Error("error closing user repository", "err", err)
		return err
	}
	if err := db.catalogRepo.Close(); err != nil {
		db.logger.Error("error closing catalog repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) CatalogRepository() storage.CatalogRepository {
	return db.catalogRepo
}

func (db *Database) UserRepository() storage.UserRepository {
	return db.userRepo
}

func (db *Database) EventRepository() storage.EventRepository {
	return db.eventRepo
}

func (db *Database) NewResolver(opts ...match.Option) (*match.Resolver, error) {
	return match.NewResolver(db.catalogRepo, opts...)
}

func (db *Database) NewBillingService(opts ...billing.Option) (*billing.Service, error) {
	return billing.NewService(db.userRepo, opts...)
}

func (db *Database) NewRecorder(opts ...analytics.Option) *analytics.Recorder {
	return analytics.NewRecorder(db.eventRepo, opts...)
}

func (db *Database) NewImporter(opts ...importer.Option) (*importer.Importer, error) {
	return importer.NewImporter(db.catalogRepo, opts...)
}

func (db *Database) NewRenormalizer(opts ...importer.RenormalizeOption) (*importer.Renormalizer, error) {
	return importer.NewRenormalizer(db.catalogRepo, opts...)
}
