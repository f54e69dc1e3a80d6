package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
)

// unwrapRootDoc strips the one-element array JSON.GET wraps root-path
// reads in and decodes the document.
func unwrapRootDoc(raw []byte) (record.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if trimmed[0] != '[' {
		return record.Decode(trimmed)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var wrapper []record.Record
	if err := dec.Decode(&wrapper); err != nil {
		return nil, err
	}
	if len(wrapper) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return wrapper[0], nil
}

// flattenPaths walks a nested record and returns every dotted leaf path
// mapped to its observed kind. String leaves (and lists of strings) also
// get a .keyword exact-match sibling, mirroring search-index dynamic
// mapping behavior.
func flattenPaths(rec map[string]any) map[string]string {
	out := make(map[string]string)
	flattenInto(out, "", rec)
	return out
}

func flattenInto(out map[string]string, prefix string, obj map[string]any) {
	for k, v := range obj {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, path, nested)
			continue
		}

		kind := leafKind(v)
		out[path] = kind
		if hasKeywordSibling(v, kind) {
			out[path+".keyword"] = "keyword"
		}
	}
}

func leafKind(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "list"
	case json.Number:
		if isIntegral(val) {
			return "integer"
		}
		return "float"
	case float64:
		// Records built in code rather than decoded from JSON.
		if val == float64(int64(val)) {
			return "integer"
		}
		return "float"
	default:
		return "object"
	}
}

func isIntegral(n json.Number) bool {
	s := n.String()
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}

func hasKeywordSibling(v any, kind string) bool {
	if kind == "string" {
		return true
	}
	if list, ok := v.([]any); ok && len(list) > 0 {
		_, isStr := list[0].(string)
		return isStr
	}
	return false
}
