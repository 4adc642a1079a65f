package bookcatalog

import (
	"time"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

// BookInfo is a book in the catalog with its copy counts.
type BookInfo struct {
	BookID          core.BookIDString
	Title           string
	Author          string
	ISBN            core.ISBNString
	TotalCopies     int
	AvailableCopies int
	AddedAt         time.Time
}

// Catalog is the result of the query.
type Catalog struct {
	Books          []BookInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the catalog was projected from.
func (r Catalog) GetSequenceNumber() uint {
	return r.SequenceNumber
}
