package record

import (
	"encoding/json"
	"errors"
	"testing"
)

func decode(t *testing.T, raw string) Record {
	t.Helper()
	r, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return r
}

func TestDecode_PreservesNumberText(t *testing.T) {
	r := decode(t, `{"a": 5, "b": 7.5}`)

	a, ok := r["a"].(json.Number)
	if !ok {
		t.Fatalf("a is %T, want json.Number", r["a"])
	}
	if a.String() != "5" {
		t.Errorf("a = %q, want 5", a.String())
	}

	b, ok := r["b"].(json.Number)
	if !ok {
		t.Fatalf("b is %T, want json.Number", r["b"])
	}
	if b.String() != "7.5" {
		t.Errorf("b = %q, want 7.5", b.String())
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestIsMetadata(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"only metadata key", `{"metadata": {"lineage": "x"}}`, true},
		{"metadata plus data", `{"metadata": {}, "properties": {}}`, false},
		{"no metadata key", `{"properties": {}}`, false},
		{"empty record", `{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decode(t, tt.raw).IsMetadata(); got != tt.want {
				t.Errorf("IsMetadata() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	r := decode(t, `{"properties": {"entity": {"day": "Monday"}, "count": 3, "none": null}}`)

	v, err := Lookup(r, "properties.entity.day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "Monday" {
		t.Errorf("value = %v, want Monday", v)
	}

	v, err = Lookup(r, "properties.none")
	if err != nil {
		t.Fatalf("null leaf should not error: %v", err)
	}
	if v != nil {
		t.Errorf("null leaf = %v, want nil", v)
	}
}

func TestLookup_MissingSegment(t *testing.T) {
	r := decode(t, `{"properties": {"a": 1}}`)

	_, err := Lookup(r, "properties.missing")
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want *PathError", err)
	}
	if pathErr.Segment != "missing" {
		t.Errorf("segment = %q, want missing", pathErr.Segment)
	}
}

func TestLookup_NonObjectIntermediate(t *testing.T) {
	r := decode(t, `{"properties": {"a": "scalar"}}`)

	_, err := Lookup(r, "properties.a.b")
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want *PathError", err)
	}
	if pathErr.Segment != "b" {
		t.Errorf("segment = %q, want b", pathErr.Segment)
	}
}
