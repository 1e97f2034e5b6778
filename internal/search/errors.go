package search

import "errors"

var (
	// ErrInvalidArgument marks caller input the search core refuses to coerce.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexNotBuilt is returned when a search runs before a snapshot was loaded.
	ErrIndexNotBuilt = errors.New("search index not built")
	// ErrStoreKeyNotFound is returned by a Store when nothing was saved under a key.
	ErrStoreKeyNotFound = errors.New("store key not found")
)
