// Package removemember implements a librarian removing a member account.
//
// The member's history stays in the log. Removal releases the email for a new registration.
package removemember
