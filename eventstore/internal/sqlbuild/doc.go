// Package sqlbuild renders eventstore filters and conditional appends as SQL with goqu.
//
// Both SQL engines share the statement shapes; a Dialect only decides how JSON payload
// predicates, timestamps and literal casts are written.
package sqlbuild
