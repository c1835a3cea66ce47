package domain

import "errors"

var (
	// ErrItemNotFound signals a missing FAQ item.
	ErrItemNotFound = errors.New("FAQ item not found")
	// ErrInvalidRequest signals a request that failed parameter or body coercion.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMalformedRecord signals a stored record that does not match the schema.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrAlreadySeeded signals that another writer stored the catalog first.
	ErrAlreadySeeded = errors.New("FAQ store already seeded")
	// ErrStoreUnavailable signals that the document store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
