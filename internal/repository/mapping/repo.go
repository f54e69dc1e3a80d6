// Package mapping reads the per-collection field-path listings and resolves
// collection aliases. It is one half of the inference engine's sample
// provider; the other half is repository/sample.
package mapping

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/fieldprobe/internal/domain"
)

// store is the consumer interface for mapping metadata (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
}

// Repo implements usecase/inference.MappingLister.
type Repo struct {
	store store
}

// New creates a mapping repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ListFieldPaths returns the field-path listing of every underlying index
// backing the collection. A plain collection yields one listing; an alias
// yields one per target, in alias order. Keys within a listing are sorted
// for deterministic iteration.
func (r *Repo) ListFieldPaths(ctx context.Context, collection string) ([]domain.IndexMapping, error) {
	targets, err := r.resolveAlias(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make([]domain.IndexMapping, 0, len(targets))
	for _, target := range targets {
		m, err := r.store.HGetAll(ctx, mappingKey(target))
		if err != nil {
			return nil, fmt.Errorf("hgetall mapping %s: %w", target, err)
		}
		if len(m) == 0 {
			continue
		}

		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out = append(out, domain.IndexMapping{Index: target, Keys: keys})
	}

	if len(out) == 0 {
		return nil, domain.ErrCollectionNotFound
	}
	return out, nil
}

// SetAlias points an alias at an ordered list of target collections.
func (r *Repo) SetAlias(ctx context.Context, alias string, targets []string) error {
	fields := map[string]string{"targets": strings.Join(targets, ",")}
	if err := r.store.HSet(ctx, aliasKey(alias), fields); err != nil {
		return fmt.Errorf("hset alias %s: %w", alias, err)
	}
	return nil
}

// resolveAlias expands an alias into its targets; a non-alias name resolves
// to itself.
func (r *Repo) resolveAlias(ctx context.Context, collection string) ([]string, error) {
	fields, err := r.store.HGetAll(ctx, aliasKey(collection))
	if err != nil {
		return nil, fmt.Errorf("hgetall alias %s: %w", collection, err)
	}

	raw := fields["targets"]
	if raw == "" {
		return []string{collection}, nil
	}

	targets := make([]string, 0, 2)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return []string{collection}, nil
	}
	return targets, nil
}

func mappingKey(collection string) string {
	return fmt.Sprintf("%s%s:mapping", domain.KeyPrefix, collection)
}

func aliasKey(alias string) string {
	return fmt.Sprintf("%salias:%s", domain.KeyPrefix, alias)
}
