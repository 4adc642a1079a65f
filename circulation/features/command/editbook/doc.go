// Package editbook implements editing the title, author and ISBN of a catalog book.
package editbook
