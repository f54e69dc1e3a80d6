package inference

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/kailas-cloud/fieldprobe/internal/domain/schema"
)

// kind is the closed classification of a sampled value. Every value folds
// into exactly one kind before the promotion table is consulted.
type kind int

const (
	kindUnset kind = iota // no non-null value seen yet
	kindNull
	kindBool
	kindInt
	kindFloat
	kindString
	kindList
	kindAny // objects and anything else outside the scalar/list set
)

func (k kind) String() string {
	switch k {
	case kindBool:
		return "boolean"
	case kindInt:
		return "integer"
	case kindFloat:
		return "float"
	case kindString:
		return "string"
	case kindList:
		return "list"
	case kindNull:
		return "null"
	case kindAny:
		return "any"
	default:
		return "unset"
	}
}

func (k kind) schemaType() schema.Type {
	switch k {
	case kindBool:
		return schema.TypeBoolean
	case kindInt:
		return schema.TypeInteger
	case kindFloat:
		return schema.TypeFloat
	case kindString:
		return schema.TypeString
	case kindList:
		return schema.TypeList
	default:
		return schema.TypeUnknown
	}
}

// classify maps a decoded JSON value to its kind. Numbers must be
// json.Number (record.Decode guarantees this) so integers are told apart
// from floats by their source text.
func classify(v any) kind {
	switch val := v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case string:
		return kindString
	case []any:
		return kindList
	case json.Number:
		if isIntegral(val) {
			return kindInt
		}
		return kindFloat
	default:
		return kindAny
	}
}

func isIntegral(n json.Number) bool {
	s := n.String()
	return !strings.ContainsAny(s, ".eE")
}

// formatValue renders a sampled value as its canonical example string:
// scalars bare, lists bracketed with single-quoted string elements.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	case json.Number:
		return val.String()
	case []any:
		elems := make([]string, len(val))
		for i, e := range val {
			elems[i] = formatElement(e)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case map[string]any:
		return formatObject(val)
	default:
		return ""
	}
}

// formatElement renders a value inside a list or object: strings get
// single quotes so list examples stay readable and unambiguous.
func formatElement(v any) string {
	if s, ok := v.(string); ok {
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return formatValue(v)
}

func formatObject(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = formatElement(k) + ": " + formatElement(m[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// singletonList wraps an already-stringified example into its
// one-element-list representation, used when a field is promoted to list.
func singletonList(example string) string {
	return "['" + strings.ReplaceAll(example, "'", `\'`) + "']"
}

// exampleSet accumulates distinct example strings up to a fixed cap and
// owns the retroactive rewrite applied when the field's type is promoted.
type exampleSet struct {
	cap    int
	values []string
	seen   map[string]struct{}
}

func newExampleSet(capacity int) *exampleSet {
	return &exampleSet{
		cap:  capacity,
		seen: make(map[string]struct{}, capacity),
	}
}

// full reports whether the cap has been reached. Once full, the caller
// stops examining further samples for this field.
func (e *exampleSet) full() bool {
	return len(e.values) >= e.cap
}

func (e *exampleSet) empty() bool {
	return len(e.values) == 0
}

// add records a value's string representation, ignoring duplicates and
// anything past the cap.
func (e *exampleSet) add(s string) {
	if e.full() {
		return
	}
	if _, ok := e.seen[s]; ok {
		return
	}
	e.seen[s] = struct{}{}
	e.values = append(e.values, s)
}

// rewriteAll replaces every collected example with f(example), re-deduping
// in order. Invoked atomically whenever the current type changes shape.
func (e *exampleSet) rewriteAll(f func(string) string) {
	old := e.values
	e.values = e.values[:0]
	e.seen = make(map[string]struct{}, e.cap)
	for _, v := range old {
		rewritten := f(v)
		if _, ok := e.seen[rewritten]; ok {
			continue
		}
		e.seen[rewritten] = struct{}{}
		e.values = append(e.values, rewritten)
	}
}

// list returns the collected examples in first-seen order.
func (e *exampleSet) list() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}
