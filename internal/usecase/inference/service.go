// Package inference implements the field-type inference engine: it samples
// a collection's records and deduces, per eligible field path, a unified
// type plus a bounded set of distinct example values.
package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
	"github.com/kailas-cloud/fieldprobe/internal/metrics"
)

// Sampling bounds and the reserved path markers of the mapping listing.
const (
	// SampleSize is the default number of records drawn per inference run.
	SampleSize = 1000
	// NumExampleValues caps distinct examples collected per field.
	NumExampleValues = 5

	// KeywordSuffix marks exact-match sibling paths; they duplicate the
	// unsuffixed path and are never sampled.
	KeywordSuffix = ".keyword"
	// PropertiesPrefix is the namespace of user data fields. Paths outside
	// it are index-internal metadata.
	PropertiesPrefix = "properties."

	// TextRepresentationField is present in every record by construction
	// and is asserted in the schema unconditionally rather than sampled.
	TextRepresentationField       = "text_representation"
	textRepresentationDescription = "Can be assumed to have all other details"
)

// Service infers schemas for collections. It is synchronous and keeps no
// state across invocations.
type Service struct {
	mappings      MappingLister
	samples       Sampler
	sampleSize    int
	exampleValues int
	logger        *zap.Logger
}

// New creates an inference service with default sampling bounds.
func New(mappings MappingLister, samples Sampler, logger *zap.Logger) *Service {
	return &Service{
		mappings:      mappings,
		samples:       samples,
		sampleSize:    SampleSize,
		exampleValues: NumExampleValues,
		logger:        logger,
	}
}

// WithSampling overrides the sample size and per-field example cap.
func (s *Service) WithSampling(sampleSize, exampleValues int) *Service {
	if sampleSize > 0 {
		s.sampleSize = sampleSize
	}
	if exampleValues > 0 {
		s.exampleValues = exampleValues
	}
	return s
}

// GetSchema infers the schema of a collection from a random sample of its
// records. Provider failures propagate; conflicting or malformed data never
// does — it is absorbed into a coarser type or omitted.
func (s *Service) GetSchema(ctx context.Context, collection string) (*schema.Schema, error) {
	start := time.Now()

	listings, err := s.mappings.ListFieldPaths(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list field paths %s: %w", collection, err)
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("no index mapping for collection %s", collection)
	}

	sample, err := s.samples.SampleRecords(ctx, collection, s.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("sample records %s: %w", collection, err)
	}
	metrics.InferenceSamplesFetched.WithLabelValues(collection).Observe(float64(len(sample)))

	result := schema.New()
	result.Put(TextRepresentationField, schema.Field{
		Type:        schema.TypeString,
		Description: textRepresentationDescription,
	})

	// When the collection is an alias over several indices, only the first
	// underlying index's key set is consulted.
	listing := listings[0]
	s.logger.Debug("inferring schema",
		zap.String("collection", collection),
		zap.String("index", listing.Index),
		zap.Int("keys", len(listing.Keys)),
		zap.Int("sample_size", len(sample)),
	)

	for _, key := range listing.Keys {
		if !s.eligible(key) {
			continue
		}
		field, ok := s.inferField(collection, key, sample)
		if !ok {
			continue
		}
		result.Put(key, field)
	}

	metrics.InferenceDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	metrics.InferenceFieldsInferred.WithLabelValues(collection).Observe(float64(result.Len()))

	return result, nil
}

// eligible applies the path filter: keyword siblings and paths outside the
// properties namespace are excluded from sampling.
func (s *Service) eligible(key string) bool {
	if strings.HasSuffix(key, KeywordSuffix) {
		s.logger.Debug("ignoring redundant exact match keyword key", zap.String("key", key))
		return false
	}
	if !strings.HasPrefix(key, PropertiesPrefix) {
		s.logger.Debug("ignoring non-properties key", zap.String("key", key))
		return false
	}
	return true
}

// inferField walks the sample in order, folding each observed value into a
// running (type, examples) state. Returns false when the field contributed
// no data: every lookup missed, every value was null, or the path was
// structurally unresolvable against a sampled record.
func (s *Service) inferField(collection, key string, sample []record.Record) (schema.Field, bool) {
	examples := newExampleSet(s.exampleValues)
	current := kindUnset
	warned := false

	for _, rec := range sample {
		if examples.full() {
			break
		}

		value, err := record.Lookup(rec, key)
		if err != nil {
			// Mapping keys can outlive the values that produced them;
			// an unresolvable path means no data for this field.
			s.logger.Debug("failed to resolve sample value",
				zap.String("key", key), zap.Error(err))
			return schema.Field{}, false
		}

		observed := classify(value)
		if observed == kindNull {
			continue
		}

		if current == kindUnset {
			current = observed
		} else {
			value = s.reconcile(collection, key, &current, observed, value, examples, &warned)
		}

		examples.add(formatValue(value))
	}

	if examples.empty() {
		s.logger.Debug("no samples for key", zap.String("key", key))
		return schema.Field{}, false
	}

	return schema.Field{Type: current.schemaType(), Examples: examples.list()}, true
}

// reconcile applies the promotion table to the running type given a new
// value's kind. It may rewrite the current kind, the already-collected
// examples, or the value itself; it never fails.
func (s *Service) reconcile(
	collection, key string, current *kind, observed kind,
	value any, examples *exampleSet, warned *bool,
) any {
	switch {
	case *current == observed:
		// Nothing to do.

	case *current == kindInt && observed == kindFloat:
		// Upgrade from int to float; collected examples stay valid.
		*current = kindFloat

	case *current == kindFloat && observed == kindInt:
		// Float already subsumes the new value.

	case *current == kindList:
		// Wrap the scalar so the example joins the list representation.
		value = []any{value}

	case observed == kindList:
		// Promote to list and rewrite every collected example to its
		// singleton-list form.
		*current = kindList
		examples.rewriteAll(singletonList)

	default:
		if !*warned {
			s.logger.Warn("got multiple sample types for schema field, promoting to string",
				zap.String("key", key),
				zap.String("current_type", current.String()),
				zap.String("new_type", observed.String()),
			)
			*warned = true
		}
		metrics.InferenceTypeConflictsTotal.WithLabelValues(collection).Inc()
		*current = kindString
		examples.rewriteAll(func(v string) string { return v })
	}

	return value
}
