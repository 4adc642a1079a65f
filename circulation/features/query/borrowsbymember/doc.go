// Package borrowsbymember implements the query listing all borrows of one member,
// newest first, each with the title and author of its book.
//
// The handler reads the member's borrow events first and then the catalog events of
// exactly the books they mention.
package borrowsbymember
