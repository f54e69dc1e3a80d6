package mapping

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/fieldprobe/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	hashes map[string]map[string]string
	hsets  map[string]map[string]string

	hgetallErr error
	hsetErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes: make(map[string]map[string]string),
		hsets:  make(map[string]map[string]string),
	}
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.hgetallErr != nil {
		return nil, m.hgetallErr
	}
	return m.hashes[key], nil
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	m.hsets[key] = fields
	return nil
}

func withMapping(m *mockStore, collection string, paths ...string) *mockStore {
	entry := make(map[string]string, len(paths))
	for _, p := range paths {
		entry[p] = "string"
	}
	m.hashes["fieldprobe:"+collection+":mapping"] = entry
	return m
}

func withAlias(m *mockStore, alias, targets string) *mockStore {
	m.hashes["fieldprobe:alias:"+alias] = map[string]string{"targets": targets}
	return m
}

// --- Tests ---

func TestListFieldPaths_PlainCollection(t *testing.T) {
	store := withMapping(newMockStore(), "books", "properties.title", "doc_id")
	repo := New(store)

	listings, err := repo.ListFieldPaths(context.Background(), "books")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("listings = %d, want 1", len(listings))
	}
	if listings[0].Index != "books" {
		t.Errorf("index = %q, want books", listings[0].Index)
	}
	if want := []string{"doc_id", "properties.title"}; !reflect.DeepEqual(listings[0].Keys, want) {
		t.Errorf("keys = %v, want sorted %v", listings[0].Keys, want)
	}
}

func TestListFieldPaths_AliasPreservesTargetOrder(t *testing.T) {
	store := newMockStore()
	withMapping(store, "idx-b", "properties.b")
	withMapping(store, "idx-a", "properties.a")
	withAlias(store, "all", "idx-b, idx-a")
	repo := New(store)

	listings, err := repo.ListFieldPaths(context.Background(), "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("listings = %d, want 2", len(listings))
	}
	if listings[0].Index != "idx-b" || listings[1].Index != "idx-a" {
		t.Errorf("alias target order not preserved: %v", listings)
	}
}

func TestListFieldPaths_AliasSkipsEmptyTargets(t *testing.T) {
	store := newMockStore()
	withMapping(store, "idx-a", "properties.a")
	withAlias(store, "all", "idx-missing,idx-a")
	repo := New(store)

	listings, err := repo.ListFieldPaths(context.Background(), "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 || listings[0].Index != "idx-a" {
		t.Errorf("listings = %v, want only idx-a", listings)
	}
}

func TestListFieldPaths_UnknownCollection(t *testing.T) {
	repo := New(newMockStore())

	_, err := repo.ListFieldPaths(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}
}

func TestListFieldPaths_StoreErrorPropagates(t *testing.T) {
	store := newMockStore()
	store.hgetallErr = errors.New("connection refused")
	repo := New(store)

	_, err := repo.ListFieldPaths(context.Background(), "books")
	if !errors.Is(err, store.hgetallErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}

func TestSetAlias(t *testing.T) {
	store := newMockStore()
	repo := New(store)

	if err := repo.SetAlias(context.Background(), "all", []string{"idx-a", "idx-b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := store.hsets["fieldprobe:alias:all"]
	if fields["targets"] != "idx-a,idx-b" {
		t.Errorf("targets = %q, want idx-a,idx-b", fields["targets"])
	}
}
