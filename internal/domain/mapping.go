package domain

// IndexMapping is the field-path listing of one underlying index: every
// dotted path the index has observed, in listing order.
type IndexMapping struct {
	Index string
	Keys  []string
}
