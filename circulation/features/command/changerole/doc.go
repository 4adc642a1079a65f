// Package changerole implements a librarian changing the role of a member.
package changerole
