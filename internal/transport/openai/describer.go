// Package openai generates schema field descriptions via an
// OpenAI-compatible chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
	"github.com/kailas-cloud/fieldprobe/internal/metrics"
)

const systemPrompt = "You are given fields of a document collection schema, " +
	"each with an inferred type and example values. Reply with a JSON object " +
	"mapping every field name to a one-line description of what the field " +
	"likely holds. Reply with the JSON object only."

// Describer generates field descriptions using the OpenAI-compatible API.
type Describer struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the description provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewDescriber creates an OpenAI-compatible description provider.
func NewDescriber(cfg *Config) *Describer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Describer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Describe implements usecase/describe.Generator. Returns a mapping from
// field name to a generated one-line description.
func (d *Describer) Describe(ctx context.Context, fields []schema.Field) (map[string]string, error) {
	req := openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: renderFields(fields)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()

	resp, err := d.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.DescribeRequestsTotal.WithLabelValues(d.provider, d.model, "error").Inc()
		return nil, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.DescribeRequestsTotal.WithLabelValues(d.provider, d.model, "error").Inc()
		return nil, fmt.Errorf("empty completion response")
	}

	metrics.DescribeRequestsTotal.WithLabelValues(d.provider, d.model, "success").Inc()
	metrics.DescribeRequestDuration.WithLabelValues(d.provider, d.model).Observe(duration.Seconds())

	descriptions, err := parseDescriptions(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return descriptions, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (d *Describer) HealthCheck(ctx context.Context) error {
	if _, err := d.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// renderFields lays the schema out for the model, one field per line.
func renderFields(fields []schema.Field) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s (%s)", f.Name, f.Type)
		if len(f.Examples) > 0 {
			fmt.Fprintf(&b, " examples: %s", strings.Join(f.Examples, "; "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func parseDescriptions(content string) (map[string]string, error) {
	var out map[string]string
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("parse descriptions: %w", err)
	}
	return out, nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("describe API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("describe API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("describe request failed: %w", err)
}
