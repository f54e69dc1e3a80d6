// Package document persists raw ingested records and maintains the
// per-collection dynamic mapping of observed field paths.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/fieldprobe/internal/db"
	"github.com/kailas-cloud/fieldprobe/internal/domain"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

// store is the consumer interface for documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a raw record as a JSON document and records every field
// path it exposes in the collection's mapping hash. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, collection, id string, rec record.Record) (bool, error) {
	key := docKey(collection, id)

	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}

	// Dynamic mapping: record the flattened paths so schema inference can
	// list them later. Paths accumulate; they are never retired on delete.
	paths := flattenPaths(rec)
	if len(paths) > 0 {
		if err := r.store.HSet(ctx, mappingKey(collection), paths); err != nil {
			return false, fmt.Errorf("hset mapping %s: %w", collection, err)
		}
	}

	return !exists, nil
}

// Get retrieves a stored record by ID.
func (r *Repo) Get(ctx context.Context, collection, id string) (record.Record, error) {
	key := docKey(collection, id)

	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("json.get %s: %w", key, err)
	}

	rec, err := unwrapRootDoc(raw)
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", key, err)
	}
	return rec, nil
}

// Delete removes a document. The mapping keeps the paths it contributed.
func (r *Repo) Delete(ctx context.Context, collection, id string) error {
	key := docKey(collection, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:doc:%s", domain.KeyPrefix, collection, id)
}

func mappingKey(collection string) string {
	return fmt.Sprintf("%s%s:mapping", domain.KeyPrefix, collection)
}
