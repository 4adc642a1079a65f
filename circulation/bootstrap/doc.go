// Package bootstrap prepares a fresh installation: it creates the event table schema
// and seeds the first librarian account. Running it again is safe.
package bootstrap
