package document

import (
	"context"

	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Upsert(ctx context.Context, collection, id string, rec record.Record) (bool, error)
	Get(ctx context.Context, collection, id string) (record.Record, error)
	Delete(ctx context.Context, collection, id string) error
}
