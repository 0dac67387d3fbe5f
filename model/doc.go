// Package model implements the immutable document tree consumed by the view
// engine.
//
// Positions are 0-based integer offsets into the document content. A text node
// occupies one position per rune, a leaf node occupies one position, and every
// other node occupies its content size plus one opening and one closing token.
// Ranges are half-open: [from, to).
package model
