// Package submitfeedback implements members leaving feedback for the library.
package submitfeedback
