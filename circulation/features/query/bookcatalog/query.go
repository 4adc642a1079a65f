package bookcatalog

import (
	"strings"
)

const (
	queryType = "BookCatalog"
)

// Query represents the intent to list the catalog, optionally narrowed by a search term.
type Query struct {
	Search string
}

// BuildQuery creates a new Query. An empty search lists every book.
func BuildQuery(search string) Query {
	return Query{
		Search: strings.TrimSpace(search),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
