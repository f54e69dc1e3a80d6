// Package sample draws bounded pseudo-random samples of raw records from a
// collection's backing store.
package sample

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/kailas-cloud/fieldprobe/internal/docset"
	"github.com/kailas-cloud/fieldprobe/internal/domain"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

// store is the consumer interface for sampling (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
}

// Repo implements usecase/inference.Sampler.
type Repo struct {
	store store
}

// New creates a sample repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SampleRecords returns up to size records drawn pseudo-randomly from the
// collection. Metadata records and documents that fail to parse are
// excluded, so the result may come up short; duplicates across calls are
// expected and acceptable.
func (r *Repo) SampleRecords(ctx context.Context, collection string, size int) ([]record.Record, error) {
	keys, err := r.store.Scan(ctx, docPattern(collection))
	if err != nil {
		return nil, fmt.Errorf("scan documents %s: %w", collection, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	rand.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	if len(keys) > size {
		keys = keys[:size]
	}

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch documents %s: %w", collection, err)
	}

	docs := make([]record.Record, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		rec, err := decodeRootDoc(raw)
		if err != nil {
			// A malformed document contributes nothing to the sample.
			continue
		}
		docs = append(docs, rec)
	}

	return docset.Limit(docs, size), nil
}

// decodeRootDoc unwraps the one-element array JSON.GET returns for the
// root path and decodes the document with number fidelity preserved.
func decodeRootDoc(raw []byte) (record.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if trimmed[0] != '[' {
		return record.Decode(trimmed)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var wrapper []record.Record
	if err := dec.Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if len(wrapper) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return wrapper[0], nil
}

func docPattern(collection string) string {
	return fmt.Sprintf("%s%s:doc:*", domain.KeyPrefix, collection)
}
