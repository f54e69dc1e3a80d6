package inference

import (
	"context"

	"github.com/kailas-cloud/fieldprobe/internal/domain"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

// MappingLister supplies the field-path metadata listing for a collection.
type MappingLister interface {
	// ListFieldPaths returns one mapping per underlying index backing the
	// collection (at least one; aliases yield one entry per target).
	ListFieldPaths(ctx context.Context, collection string) ([]domain.IndexMapping, error)
}

// Sampler supplies a bounded pseudo-random sample of raw records.
type Sampler interface {
	SampleRecords(ctx context.Context, collection string, size int) ([]record.Record, error)
}
