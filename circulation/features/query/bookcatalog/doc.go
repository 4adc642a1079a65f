// Package bookcatalog implements listing and searching the books in the catalog.
//
// Books are listed newest first with their current copy counts. A search term matches
// a case-insensitive substring of title, author or ISBN.
package bookcatalog
