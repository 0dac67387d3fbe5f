package state

import "errors"

var (
	// ErrNoDocument indicates a Config without a document.
	ErrNoDocument = errors.New("state needs a document")

	// ErrStaleTransaction indicates a transaction applied to a state other
	// than the one it was started from.
	ErrStaleTransaction = errors.New("transaction does not belong to this state")

	// ErrUnnamedPlugin indicates a plugin without a key.
	ErrUnnamedPlugin = errors.New("plugin has no key")

	// ErrDuplicatePlugin indicates two plugins with the same key.
	ErrDuplicatePlugin = errors.New("duplicate plugin key")
)
