package docset

import (
	"testing"

	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

func dataRecord(title string) record.Record {
	return record.Record{"properties": map[string]any{"title": title}}
}

func metadataRecord() record.Record {
	return record.Record{record.MetadataKey: map[string]any{"lineage": "x"}}
}

func TestLimit_SkipsMetadata(t *testing.T) {
	docs := []record.Record{
		dataRecord("a"),
		metadataRecord(),
		dataRecord("b"),
		metadataRecord(),
		dataRecord("c"),
	}

	got := Limit(docs, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, doc := range got {
		if doc.IsMetadata() {
			t.Error("metadata record leaked through Limit")
		}
	}
}

func TestLimit_FewerThanN(t *testing.T) {
	docs := []record.Record{dataRecord("a"), metadataRecord()}

	got := Limit(docs, 10)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestLimit_Zero(t *testing.T) {
	if got := Limit([]record.Record{dataRecord("a")}, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestFilter(t *testing.T) {
	docs := []record.Record{dataRecord("keep"), dataRecord("drop")}

	got := Filter(docs, func(r record.Record) bool {
		props := r["properties"].(map[string]any)
		return props["title"] == "keep"
	})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestMap(t *testing.T) {
	docs := []record.Record{dataRecord("a"), dataRecord("b")}

	got := Map(docs, func(r record.Record) record.Record {
		out := record.Record{"marked": true}
		for k, v := range r {
			out[k] = v
		}
		return out
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, doc := range got {
		if doc["marked"] != true {
			t.Error("transform not applied")
		}
	}
}
