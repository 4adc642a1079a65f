// Package issuebook implements lending a copy of a book to a member.
//
// The consistency boundary spans the member's card and account events, all
// catalog and stock events of the book, and the member's reservations of that
// book. Two concurrent issues of the last copy therefore conflict on the book
// part of the boundary, and the loser re-decides against the new stock.
package issuebook
