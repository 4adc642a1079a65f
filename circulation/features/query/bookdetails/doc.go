// Package bookdetails implements reading one catalog book with its copy counts.
package bookdetails
