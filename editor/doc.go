// Package editor provides a Bubble Tea component that edits a document state
// and renders it through the view package.
//
// Key presses become state transactions. After every transaction the view is
// reconciled with the new document and decorations, so node views see the
// same lifecycle as with any other host. The cursor and the selection are
// drawn as decorations.
package editor
