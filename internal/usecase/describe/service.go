// Package describe enriches inferred schemas with generated field
// descriptions. Enrichment is best-effort: a provider failure leaves the
// schema as inferred, it never fails the inference path.
package describe

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
)

// Service fills in blank field descriptions via a Generator.
type Service struct {
	generator Generator
	logger    *zap.Logger
}

// New creates a describe service.
func New(generator Generator, logger *zap.Logger) *Service {
	return &Service{generator: generator, logger: logger}
}

// Enrich asks the generator to describe every field that has no description
// yet and writes the answers back into the schema. Fields with a fixed
// description are left untouched.
func (s *Service) Enrich(ctx context.Context, sch *schema.Schema) *schema.Schema {
	pending := make([]schema.Field, 0, sch.Len())
	for _, f := range sch.Fields() {
		if f.Description == "" {
			pending = append(pending, f)
		}
	}
	if len(pending) == 0 {
		return sch
	}

	descriptions, err := s.generator.Describe(ctx, pending)
	if err != nil {
		s.logger.Warn("description generation failed, returning schema as inferred", zap.Error(err))
		return sch
	}

	for _, path := range sch.Paths() {
		desc, ok := descriptions[path]
		if !ok || desc == "" {
			continue
		}
		f, _ := sch.Get(path)
		if f.Description != "" {
			continue
		}
		f.Description = desc
		sch.Put(path, f)
	}

	return sch
}
