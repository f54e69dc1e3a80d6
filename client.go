// Package fieldprobe is the embedded SDK: the same inference engine the API
// server exposes, wired directly over a Redis connection without HTTP.
package fieldprobe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldprobe/internal/db"
	dbRedis "github.com/kailas-cloud/fieldprobe/internal/db/redis"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
	documentrepo "github.com/kailas-cloud/fieldprobe/internal/repository/document"
	mappingrepo "github.com/kailas-cloud/fieldprobe/internal/repository/mapping"
	samplerepo "github.com/kailas-cloud/fieldprobe/internal/repository/sample"
	aliasuc "github.com/kailas-cloud/fieldprobe/internal/usecase/alias"
	describeuc "github.com/kailas-cloud/fieldprobe/internal/usecase/describe"
	documentuc "github.com/kailas-cloud/fieldprobe/internal/usecase/document"
	inferenceuc "github.com/kailas-cloud/fieldprobe/internal/usecase/inference"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the fieldprobe SDK entry point.
type Client struct {
	store       db.Store
	docSvc      *documentuc.Service
	aliasSvc    *aliasuc.Service
	inferSvc    *inferenceuc.Service
	describeSvc *describeuc.Service
}

// New creates a fieldprobe Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("fieldprobe: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("fieldprobe: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("fieldprobe: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	docRepo := documentrepo.New(store)
	mappingRepo := mappingrepo.New(store)
	sampleRepo := samplerepo.New(store)

	inferSvc := inferenceuc.New(mappingRepo, sampleRepo, cfg.logger)
	if cfg.sampleSize > 0 || cfg.exampleValues > 0 {
		size, examples := cfg.sampleSize, cfg.exampleValues
		if size <= 0 {
			size = inferenceuc.SampleSize
		}
		if examples <= 0 {
			examples = inferenceuc.NumExampleValues
		}
		inferSvc = inferSvc.WithSampling(size, examples)
	}

	var describeSvc *describeuc.Service
	if cfg.describer != nil {
		describeSvc = describeuc.New(
			&describerAdapter{inner: cfg.describer},
			cfg.logger,
		)
	}

	return &Client{
		store:       store,
		docSvc:      documentuc.New(docRepo),
		aliasSvc:    aliasuc.New(mappingRepo),
		inferSvc:    inferSvc,
		describeSvc: describeSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Ingest creates or updates a document in a collection. Returns true if
// the document was created, false if it replaced an existing one.
func (c *Client) Ingest(ctx context.Context, collection, id string, doc map[string]any) (bool, error) {
	return c.docSvc.Upsert(ctx, collection, id, record.Record(doc))
}

// Get retrieves a stored document by ID.
func (c *Client) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	rec, err := c.docSvc.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	return map[string]any(rec), nil
}

// Delete removes a document from a collection.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.docSvc.Delete(ctx, collection, id)
}

// SetAlias points an alias at one or more collections.
func (c *Client) SetAlias(ctx context.Context, alias string, targets ...string) error {
	return c.aliasSvc.Set(ctx, alias, targets)
}

// Schema infers the field schema of a collection (or alias) from a random
// sample of its documents.
func (c *Client) Schema(ctx context.Context, collection string, opts ...SchemaOption) (Schema, error) {
	var sc schemaConfig
	for _, o := range opts {
		o(&sc)
	}

	sch, err := c.inferSvc.GetSchema(ctx, collection)
	if err != nil {
		return nil, err
	}

	if sc.describe {
		if c.describeSvc == nil {
			return nil, errors.New("fieldprobe: describer not configured (use WithDescriber)")
		}
		sch = c.describeSvc.Enrich(ctx, sch)
	}

	return fromInternalSchema(sch), nil
}

// describerAdapter wraps the public Describer to satisfy the internal
// description generator contract.
type describerAdapter struct {
	inner Describer
}

func (a *describerAdapter) Describe(ctx context.Context, fields []schema.Field) (map[string]string, error) {
	pub := make([]Field, len(fields))
	for i, f := range fields {
		pub[i] = fromInternalField(f)
	}
	out, err := a.inner.Describe(ctx, pub)
	if err != nil {
		return nil, fmt.Errorf("describe: %w", err)
	}
	return out, nil
}
