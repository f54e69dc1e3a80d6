package describe

import (
	"context"

	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
)

// Generator produces human-readable descriptions for schema fields,
// keyed by field path.
type Generator interface {
	Describe(ctx context.Context, fields []schema.Field) (map[string]string, error)
}
