// Package issuelibrarycard implements issuing a library card to a member.
//
// A member holds at most one card and it never changes once issued. Issuing again
// is idempotent, the caller reads the existing card from the members projection.
package issuelibrarycard
