// Package returnbook implements returning a borrowed copy, including the late fine.
//
// The boundary can only be built once the borrow's book is known, so the handler
// first reads the borrow events and then queries the full boundary. Both reads
// happen inside the retry loop.
//
// Restoring the copy to the stock is best-effort by default: when the book has
// left the catalog in the meantime, the return still succeeds. ModeStrict turns
// that case into a NotFound rejection.
package returnbook
