// Package cancelreservation implements withdrawing a pending reservation by the member who placed it.
package cancelreservation
