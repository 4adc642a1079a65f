// Package reservebook implements placing a reservation for a book.
// A reservation does not hold a copy, it only marks the member's interest.
package reservebook
