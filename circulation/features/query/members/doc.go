// Package members implements the librarian query listing all current members, newest first.
package members
