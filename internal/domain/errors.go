package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrCollectionNotFound signals a collection with no recorded mapping.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrInvalidDocument signals a document that fails validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidAlias signals an alias definition that fails validation.
	ErrInvalidAlias = errors.New("invalid alias")
)

// KeyPrefix namespaces all fieldprobe keys in the backing store.
const KeyPrefix = "fieldprobe:"
