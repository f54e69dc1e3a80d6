package fieldprobe

import (
	"context"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	sampleSize    int
	exampleValues int

	describer Describer
	logger    *zap.Logger
}

// Describer generates one-line descriptions for inferred schema fields.
// Implementations typically call an LLM.
type Describer interface {
	Describe(ctx context.Context, fields []Field) (map[string]string, error)
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSampleSize sets the number of documents drawn per inference run.
// Default: 1000.
func WithSampleSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.sampleSize = n
	})
}

// WithExampleValues sets the number of distinct example values kept per
// field. Default: 5.
func WithExampleValues(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.exampleValues = n
	})
}

// WithDescriber sets the field description provider. Required for
// Schema(..., WithDescriptions()).
func WithDescriber(d Describer) Option {
	return optionFunc(func(c *clientConfig) {
		c.describer = d
	})
}

// WithLogger enables structured logging for SDK operations.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	})
}

// SchemaOption configures a single Schema call.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	describe bool
}

// WithDescriptions enriches the inferred schema with generated field
// descriptions. Requires WithDescriber on the Client.
func WithDescriptions() SchemaOption {
	return func(c *schemaConfig) {
		c.describe = true
	}
}
