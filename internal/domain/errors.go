package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed query, filter, pagination or item.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrItemNotFound signals a missing saved item.
	ErrItemNotFound = errors.New("item not found")
	// ErrSuperseded signals that a search was replaced by a newer call before it resolved.
	ErrSuperseded = errors.New("search superseded")
	// ErrStoreUnavailable signals that the item store could not be reached.
	ErrStoreUnavailable = errors.New("item store unavailable")
)
