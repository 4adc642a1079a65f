// Package registermember implements registering a member account.
//
// It serves both self-registration and librarians adding members. The email is
// unique among current members, a removed member's email can be registered again.
// The command carries the password hash only, hashing happens before it is built.
package registermember
