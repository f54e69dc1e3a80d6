// Package record models raw sampled documents as nested maps and provides
// the dotted-path lookup the inference engine walks them with.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MetadataKey marks records that carry pipeline metadata instead of user data.
const MetadataKey = "metadata"

// Record is one raw document: a nested mapping from path components to values.
// Numbers are decoded as json.Number so integers stay distinguishable from floats.
type Record map[string]any

// Decode parses raw JSON into a Record, preserving number fidelity.
func Decode(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

// IsMetadata reports whether the record is a metadata record: its top level
// holds only the reserved metadata key.
func (r Record) IsMetadata() bool {
	if len(r) != 1 {
		return false
	}
	_, ok := r[MetadataKey]
	return ok
}

// PathError is a structural lookup failure: the path cannot be resolved
// because a segment is missing or an intermediate value is not an object.
type PathError struct {
	Path    string
	Segment string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q unresolvable at segment %q", e.Path, e.Segment)
}

// Lookup resolves a dot-delimited field path inside the record.
// A present-but-null leaf returns (nil, nil); any missing segment or
// non-object intermediate returns a *PathError.
func Lookup(r Record, path string) (any, error) {
	var current any = map[string]any(r)

	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, &PathError{Path: path, Segment: segment}
		}
		current, ok = obj[segment]
		if !ok {
			return nil, &PathError{Path: path, Segment: segment}
		}
	}

	return current, nil
}
