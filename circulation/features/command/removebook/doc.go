// Package removebook implements removing a book from the catalog.
// Outstanding borrows of the book stay returnable.
package removebook
