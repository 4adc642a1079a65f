// Package allborrows implements the librarian query listing every borrow, newest first,
// with the member and book it belongs to.
package allborrows
