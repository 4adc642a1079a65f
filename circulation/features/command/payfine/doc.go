// Package payfine implements paying outstanding late fines, in full or in part.
package payfine
