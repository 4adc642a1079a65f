// Package addbook implements adding a book to the catalog.
//
// The ISBN is unique among the books in the catalog. The boundary covers every catalog
// event that names the ISBN, either as its current or as its previous value, so a
// concurrent add or edit claiming the same ISBN forces a re-decision.
package addbook
