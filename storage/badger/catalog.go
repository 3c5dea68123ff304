package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend  *Backend
	groupSeq *badger.Sequence
	glassSeq *badger.Sequence
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	groupSeq, err := backend.GetSequence(groupIDSeq)
	if err != nil {
		return nil, err
	}
	glassSeq, err := backend.GetSequence(glassIDSeq)
	if err != nil {
		groupSeq.Release()
		return nil, err
	}

	return &CatalogRepository{
		backend:  backend,
		groupSeq: groupSeq,
		glassSeq: glassSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *CatalogRepository) Close() error {
	if err := r.groupSeq.Release(); err != nil {
		return err
	}
	return r.glassSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// nextID returns a fresh, never-zero ID from the sequence.
func nextID(seq *badger.Sequence) (core.ID, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	return core.ID(n + 1), nil
}

// AddGroups adds one or more glass groups to storage.
func (r *CatalogRepository) AddGroups(ctx context.Context, groups ...*core.GlassGroup) ([]*core.GlassGroup, error) {
	for _, group := range groups {
		if err := core.ValidateGlassGroup(group); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, group := range groups {
			if group.Id == 0 {
				id, err := nextID(r.groupSeq)
				if err != nil {
					return err
				}
				group.Id = id
			}
			if group.CreatedAt.IsZero() {
				group.CreatedAt = time.Now().UTC()
			}
			group.UpdatedAt = group.CreatedAt

			if err := tx.Set(makeGroupKey(group.Id), storage.MarshalGroup(group)); err != nil {
				return err
			}
			if group.ExternalId != "" {
				if err := tx.Set(makeGroupExternalKey(group.ExternalId), storage.MarshalID(group.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return groups, err
}

// UpdateGroups updates existing groups.
func (r *CatalogRepository) UpdateGroups(ctx context.Context, groups ...*core.GlassGroup) ([]*core.GlassGroup, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, group := range groups {
			old, err := readGroup(tx, makeGroupKey(group.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			group.UpdatedAt = time.Now().UTC()

			if err := tx.Set(makeGroupKey(group.Id), storage.MarshalGroup(group)); err != nil {
				return err
			}

			// Keep the external-id index in step
			if old.ExternalId != group.ExternalId {
				if old.ExternalId != "" {
					if err := tx.Delete(makeGroupExternalKey(old.ExternalId)); err != nil {
						return err
					}
				}
				if group.ExternalId != "" {
					if err := tx.Set(makeGroupExternalKey(group.ExternalId), storage.MarshalID(group.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return groups, err
}

// GetGroup retrieves a single group by ID.
func (r *CatalogRepository) GetGroup(ctx context.Context, id core.ID) (*core.GlassGroup, error) {
	var result *core.GlassGroup
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readGroup(tx, makeGroupKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetGroupByExternalId retrieves a group by its spreadsheet key.
func (r *CatalogRepository) GetGroupByExternalId(ctx context.Context, externalId string) (*core.GlassGroup, error) {
	var result *core.GlassGroup
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeGroupExternalKey(externalId))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var groupId core.ID
		err = item.Value(func(val []byte) error {
			groupId, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readGroup(tx, makeGroupKey(groupId))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetActiveGroups retrieves the active groups among the given IDs.
// Inactive or missing groups are simply absent from the result.
func (r *CatalogRepository) GetActiveGroups(ctx context.Context, ids ...core.ID) ([]*core.GlassGroup, error) {
	var result []*core.GlassGroup
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			group, err := readGroup(tx, makeGroupKey(id))
			if err != nil {
				return err
			}
			if group != nil && group.Active {
				result = append(result, group)
			}
		}
		return nil
	}, false)
	return result, err
}

// AddGlasses adds one or more glasses to storage.
func (r *CatalogRepository) AddGlasses(ctx context.Context, glasses ...*core.Glass) ([]*core.Glass, error) {
	for _, glass := range glasses {
		if err := core.ValidateGlass(glass); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, glass := range glasses {
			if glass.Id == 0 {
				id, err := nextID(r.glassSeq)
				if err != nil {
					return err
				}
				glass.Id = id
			}

			if err := tx.Set(makeGlassKey(glass.Id), storage.MarshalGlass(glass)); err != nil {
				return err
			}
			if err := tx.Set(makeGlassGroupKey(glass.GroupId, glass.Id), storage.MarshalID(glass.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return glasses, err
}

// UpdateGlasses updates existing glasses.
func (r *CatalogRepository) UpdateGlasses(ctx context.Context, glasses ...*core.Glass) ([]*core.Glass, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, glass := range glasses {
			old, err := readGlass(tx, makeGlassKey(glass.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if err := tx.Set(makeGlassKey(glass.Id), storage.MarshalGlass(glass)); err != nil {
				return err
			}

			if old.GroupId != glass.GroupId {
				if err := tx.Delete(makeGlassGroupKey(old.GroupId, glass.Id)); err != nil {
					return err
				}
				if err := tx.Set(makeGlassGroupKey(glass.GroupId, glass.Id), storage.MarshalID(glass.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return glasses, err
}

// GetGlass retrieves a single glass by ID.
func (r *CatalogRepository) GetGlass(ctx context.Context, id core.ID) (*core.Glass, error) {
	var result *core.Glass
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readGlass(tx, makeGlassKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetGroupGlasses retrieves all glasses belonging to a group.
func (r *CatalogRepository) GetGroupGlasses(ctx context.Context, groupId core.ID) ([]*core.Glass, error) {
	var result []*core.Glass
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialGlassGroupKey(groupId)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var glassId core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				glassId, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			glass, err := readGlass(tx, makeGlassKey(glassId))
			if err != nil {
				return err
			}
			if glass != nil {
				result = append(result, glass)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindGlassByName finds a glass by exact name within a group.
func (r *CatalogRepository) FindGlassByName(ctx context.Context, groupId core.ID, name string) (*core.Glass, error) {
	glasses, err := r.GetGroupGlasses(ctx, groupId)
	if err != nil {
		return nil, err
	}
	for _, glass := range glasses {
		if glass.Name == name {
			return glass, nil
		}
	}
	return nil, storage.ErrNotFound
}

// PutAliases writes aliases for a glass, recomputing NormalizedAlias and the
// content-based ID on every write.
func (r *CatalogRepository) PutAliases(ctx context.Context, aliases ...*core.GlassAlias) ([]*core.GlassAlias, error) {
	for _, alias := range aliases {
		if err := core.ValidateGlassAlias(alias); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, alias := range aliases {
			alias.NormalizedAlias = core.Normalize(alias.Alias)
			if alias.Id == 0 {
				alias.Id = core.IDFromContent(alias.Key())
			}

			if err := tx.Set(makeAliasKey(alias.Id), storage.MarshalAlias(alias)); err != nil {
				return err
			}
			if err := tx.Set(makeAliasGlassKey(alias.GlassId, alias.Id), storage.MarshalID(alias.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return aliases, err
}

// GetGlassAliases retrieves all aliases of a glass.
func (r *CatalogRepository) GetGlassAliases(ctx context.Context, glassId core.ID) ([]*core.GlassAlias, error) {
	var result []*core.GlassAlias
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialAliasGlassKey(glassId)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var aliasId core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				aliasId, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			alias, err := readAlias(tx, makeAliasKey(aliasId))
			if err != nil {
				return err
			}
			if alias != nil {
				result = append(result, alias)
			}
		}
		return nil
	}, false)
	return result, err
}

// IterateAliases calls fn for every stored alias.
func (r *CatalogRepository) IterateAliases(ctx context.Context, fn func(alias *core.GlassAlias) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(aliasPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var alias *core.GlassAlias
			err := iter.Item().Value(func(val []byte) error {
				var err error
				alias, err = storage.UnmarshalAlias(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(alias); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// ActiveCorpus returns the snapshot of active aliases and glasses the
// matcher scans. Only glasses that are active and belong to an active group
// are included; glass entries are ordered by group then name.
func (r *CatalogRepository) ActiveCorpus(ctx context.Context) (*core.Corpus, error) {
	corpus := &core.Corpus{}

	type glassInfo struct {
		name    string
		groupId core.ID
	}
	activeGroups := make(map[core.ID]bool)
	activeGlasses := make(map[core.ID]glassInfo)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Active groups
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(groupPrefix + ":")
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var group *core.GlassGroup
			err := iter.Item().Value(func(val []byte) error {
				var err error
				group, err = storage.UnmarshalGroup(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			if group.Active {
				activeGroups[group.Id] = true
			}
		}
		iter.Close()

		// Active glasses of active groups
		opts = badger.DefaultIteratorOptions
		opts.Prefix = []byte(glassPrefix + ":")
		iter = tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var glass *core.Glass
			err := iter.Item().Value(func(val []byte) error {
				var err error
				glass, err = storage.UnmarshalGlass(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			if !glass.Active || !activeGroups[glass.GroupId] {
				continue
			}
			activeGlasses[glass.Id] = glassInfo{name: glass.Name, groupId: glass.GroupId}
			corpus.Glasses = append(corpus.Glasses, core.CorpusGlass{
				Name:    glass.Name,
				GroupId: glass.GroupId,
			})
		}
		iter.Close()

		// Aliases of surviving glasses
		opts = badger.DefaultIteratorOptions
		opts.Prefix = []byte(aliasPrefix + ":")
		iter = tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var alias *core.GlassAlias
			err := iter.Item().Value(func(val []byte) error {
				var err error
				alias, err = storage.UnmarshalAlias(val)
				return err
			})
			if err != nil {
				return err
			}
			info, ok := activeGlasses[alias.GlassId]
			if !ok {
				continue
			}
			corpus.Aliases = append(corpus.Aliases, core.CorpusAlias{
				Alias:      alias.Alias,
				Normalized: alias.NormalizedAlias,
				GlassName:  info.name,
				GroupId:    info.groupId,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Deterministic snapshot order: glasses by group then name (so per-group
	// item lists come out name-ordered), aliases by normalized form.
	sort.Slice(corpus.Glasses, func(i, j int) bool {
		a, b := corpus.Glasses[i], corpus.Glasses[j]
		if a.GroupId != b.GroupId {
			return a.GroupId < b.GroupId
		}
		return a.Name < b.Name
	})
	sort.Slice(corpus.Aliases, func(i, j int) bool {
		a, b := corpus.Aliases[i], corpus.Aliases[j]
		if a.Normalized != b.Normalized {
			return a.Normalized < b.Normalized
		}
		return a.GlassName < b.GlassName
	})

	return corpus, nil
}

func readGroup(tx *badger.Txn, key []byte) (*core.GlassGroup, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var group *core.GlassGroup
	err = item.Value(func(val []byte) error {
		var err error
		group, err = storage.UnmarshalGroup(val)
		return err
	})
	return group, err
}

func readGlass(tx *badger.Txn, key []byte) (*core.Glass, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var glass *core.Glass
	err = item.Value(func(val []byte) error {
		var err error
		glass, err = storage.UnmarshalGlass(val)
		return err
	})
	return glass, err
}

func readAlias(tx *badger.Txn, key []byte) (*core.GlassAlias, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var alias *core.GlassAlias
	err = item.Value(func(val []byte) error {
		var err error
		alias, err = storage.UnmarshalAlias(val)
		return err
	})
	return alias, err
}
