package fieldprobe

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret").apply(cfg)
	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q", cfg.password)
	}

	WithSampleSize(200).apply(cfg)
	if cfg.sampleSize != 200 {
		t.Errorf("sampleSize = %d", cfg.sampleSize)
	}

	WithExampleValues(3).apply(cfg)
	if cfg.exampleValues != 3 {
		t.Errorf("exampleValues = %d", cfg.exampleValues)
	}
}

type mockDescriber struct {
	fn func(context.Context, []Field) (map[string]string, error)
}

func (m *mockDescriber) Describe(ctx context.Context, fields []Field) (map[string]string, error) {
	return m.fn(ctx, fields)
}

func TestDescriberAdapter(t *testing.T) {
	var gotFields []Field
	mock := &mockDescriber{
		fn: func(_ context.Context, fields []Field) (map[string]string, error) {
			gotFields = fields
			return map[string]string{"properties.title": "the title"}, nil
		},
	}

	adapter := &describerAdapter{inner: mock}
	out, err := adapter.Describe(context.Background(), []schema.Field{
		{Name: "properties.title", Type: schema.TypeString, Examples: []string{"x"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["properties.title"] != "the title" {
		t.Errorf("out = %v", out)
	}
	if len(gotFields) != 1 || gotFields[0].Type != FieldTypeString {
		t.Errorf("converted fields = %+v", gotFields)
	}
}

func TestDescriberAdapter_Error(t *testing.T) {
	mock := &mockDescriber{
		fn: func(_ context.Context, _ []Field) (map[string]string, error) {
			return nil, errors.New("provider down")
		},
	}

	adapter := &describerAdapter{inner: mock}
	if _, err := adapter.Describe(context.Background(), nil); err == nil {
		t.Fatal("expected error from adapter")
	}
}

func TestFromInternalSchema(t *testing.T) {
	s := schema.New()
	s.Put("text_representation", schema.Field{Type: schema.TypeString, Description: "d"})
	s.Put("properties.n", schema.Field{Type: schema.TypeInteger, Examples: []string{"1", "2"}})

	out := fromInternalSchema(s)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Name != "text_representation" || out[0].Type != FieldTypeString {
		t.Errorf("first = %+v", out[0])
	}

	f, ok := out.Get("properties.n")
	if !ok {
		t.Fatal("Get missed properties.n")
	}
	if f.Type != FieldTypeInteger || len(f.Examples) != 2 {
		t.Errorf("field = %+v", f)
	}
}
