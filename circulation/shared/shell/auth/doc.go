// Package auth issues and validates the bearer tokens of the HTTP API and hashes passwords.
package auth
