package document

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/fieldprobe/internal/db"
	"github.com/kailas-cloud/fieldprobe/internal/domain"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

// --- Mocks ---

type mockStore struct {
	existing map[string]bool
	jsonSet  map[string][]byte
	jsonGet  map[string][]byte
	hsets    map[string]map[string]string
	deleted  []string

	existsErr  error
	jsonSetErr error
	jsonGetErr error
	hsetErr    error
	delErr     error
}

func newMockStore() *mockStore {
	return &mockStore{
		existing: make(map[string]bool),
		jsonSet:  make(map[string][]byte),
		jsonGet:  make(map[string][]byte),
		hsets:    make(map[string]map[string]string),
	}
}

func (m *mockStore) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	if m.jsonGetErr != nil {
		return nil, m.jsonGetErr
	}
	raw, ok := m.jsonGet[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return raw, nil
}

func (m *mockStore) JSONSet(_ context.Context, key, _ string, data []byte) error {
	if m.jsonSetErr != nil {
		return m.jsonSetErr
	}
	m.jsonSet[key] = data
	return nil
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	existing, ok := m.hsets[key]
	if !ok {
		existing = make(map[string]string)
		m.hsets[key] = existing
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	return m.existing[key], m.existsErr
}

func (m *mockStore) Del(_ context.Context, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.deleted = append(m.deleted, key)
	return nil
}

// --- Tests ---

func TestUpsert_CreatesAndRecordsMapping(t *testing.T) {
	store := newMockStore()
	repo := New(store)

	rec := record.Record{"properties": map[string]any{"title": "alpha"}}
	created, err := repo.Upsert(context.Background(), "books", "1", rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for new document")
	}

	if _, ok := store.jsonSet["fieldprobe:books:doc:1"]; !ok {
		t.Error("document not stored under expected key")
	}

	mapping := store.hsets["fieldprobe:books:mapping"]
	if mapping["properties.title"] != "string" {
		t.Errorf("mapping = %v, want properties.title recorded as string", mapping)
	}
	if mapping["properties.title.keyword"] != "keyword" {
		t.Error("string field should get a .keyword sibling")
	}
}

func TestUpsert_ExistingReturnsFalse(t *testing.T) {
	store := newMockStore()
	store.existing["fieldprobe:books:doc:1"] = true
	repo := New(store)

	created, err := repo.Upsert(context.Background(), "books", "1",
		record.Record{"properties": map[string]any{"a": true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for existing document")
	}
}

func TestUpsert_StoreErrorPropagates(t *testing.T) {
	store := newMockStore()
	store.jsonSetErr = errors.New("write failed")
	repo := New(store)

	_, err := repo.Upsert(context.Background(), "books", "1",
		record.Record{"properties": map[string]any{"a": true}})
	if !errors.Is(err, store.jsonSetErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}

func TestGet(t *testing.T) {
	store := newMockStore()
	store.jsonGet["fieldprobe:books:doc:1"] = []byte(`[{"properties": {"count": 3}}]`)
	repo := New(store)

	rec, err := repo.Get(context.Background(), "books", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	props := rec["properties"].(map[string]any)
	n, ok := props["count"].(json.Number)
	if !ok || n.String() != "3" {
		t.Errorf("count = %v (%T), want json.Number 3", props["count"], props["count"])
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore())

	_, err := repo.Get(context.Background(), "books", "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store := newMockStore()
	store.existing["fieldprobe:books:doc:1"] = true
	repo := New(store)

	if err := repo.Delete(context.Background(), "books", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "fieldprobe:books:doc:1" {
		t.Errorf("deleted = %v", store.deleted)
	}
}

func TestDelete_Missing(t *testing.T) {
	repo := New(newMockStore())

	err := repo.Delete(context.Background(), "books", "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
