package model

import "errors"

// Schema errors
var (
	// ErrUnknownType indicates that a node type name is not registered.
	ErrUnknownType = errors.New("unknown node type")

	// ErrUnnamedType indicates a node type without a name.
	ErrUnnamedType = errors.New("node type has no name")

	// ErrDuplicateType indicates two node types with the same name, or two text types.
	ErrDuplicateType = errors.New("duplicate node type")

	// ErrNoTextType indicates a schema without a text node type.
	ErrNoTextType = errors.New("schema has no text type")
)

// Construction errors
var (
	// ErrLeafContent indicates children passed to a leaf node type.
	ErrLeafContent = errors.New("leaf node cannot have content")

	// ErrTextNodeContent indicates a text node built through Schema.Node.
	ErrTextNodeContent = errors.New("text nodes are built with Schema.Text")

	// ErrEmptyText indicates an empty text node.
	ErrEmptyText = errors.New("empty text node")
)

// Edit errors
var (
	// ErrInvalidPosition indicates that a position is out of bounds or points
	// into the middle of a leaf.
	ErrInvalidPosition = errors.New("position out of bounds")

	// ErrCrossParent indicates a replacement whose endpoints are in different parents.
	ErrCrossParent = errors.New("replace range crosses node boundaries")

	// ErrInvalidContent indicates replacement content the target parent cannot hold.
	ErrInvalidContent = errors.New("content not allowed here")
)
