// Package adjuststock implements the librarian stock edit of a catalog book.
//
// Issues and returns of the same book are part of the boundary, so an adjustment
// never works on a stale available count.
package adjuststock
