package view

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// View lifecycle errors
var (
	// ErrReentrantUpdate is returned when Update or Destroy is called while a
	// reconciliation pass is running, typically from inside a node view
	// callback.
	ErrReentrantUpdate = errors.New("view update already in progress")

	// ErrStaleDecorations indicates a decoration set built for another
	// document version.
	ErrStaleDecorations = errors.New("decoration set does not belong to the document")

	// ErrDestroyed indicates use of a view after Destroy.
	ErrDestroyed = errors.New("view destroyed")
)

// Selection errors
var (
	// ErrNoNode indicates that no selectable node starts at a position.
	ErrNoNode = errors.New("no node at position")
)

// CallbackError wraps an error returned by a node view factory or callback.
type CallbackError struct {
	Op       string // "create", "update" or "destroy"
	NodeType string
	Err      error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("node view %s (%s): %v", e.Op, e.NodeType, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// TeardownOnly reports whether err carries nothing but destroy callback
// failures. Update returns those after the pass completed, so the view shows
// the new document and decorations.
func TeardownOnly(err error) bool {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		var ce *CallbackError
		if !errors.As(e, &ce) || ce.Op != "destroy" {
			return false
		}
	}
	return true
}
