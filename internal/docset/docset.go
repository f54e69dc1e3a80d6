// Package docset provides small batch transforms over slices of raw records.
package docset

import "github.com/kailas-cloud/fieldprobe/internal/domain/record"

// Predicate decides whether a record is kept by Filter.
type Predicate func(record.Record) bool

// Limit restricts a record set to at most n non-metadata records.
// Metadata records do not count toward the limit and are dropped.
func Limit(docs []record.Record, n int) []record.Record {
	out := make([]record.Record, 0, min(n, len(docs)))
	count := 0

	for _, doc := range docs {
		if doc.IsMetadata() {
			continue
		}
		count++
		if count > n {
			break
		}
		out = append(out, doc)
	}

	return out
}

// Filter keeps the records for which the predicate returns true.
func Filter(docs []record.Record, pred Predicate) []record.Record {
	out := make([]record.Record, 0, len(docs))
	for _, doc := range docs {
		if pred(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// Map applies f to every record and returns the results.
func Map(docs []record.Record, f func(record.Record) record.Record) []record.Record {
	out := make([]record.Record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, f(doc))
	}
	return out
}
