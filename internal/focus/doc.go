// Package focus owns keyboard and IME focus for a widget.Tree.
//
// Everything that wants to move focus (Tab handling, pointer presses,
// assistive technology, widget code) only stages an Intent on the Store.
// Store.Commit is the single writer of the committed State: it runs once per
// processed input batch, validates the staged intent against the tree,
// handles the IME hand-over, diffs the focused path and notifies nodes.
//
// Navigation is a pure function (FindNextFocusable) over the tree and its
// capability flags; it never mutates the tree or the store.
package focus
