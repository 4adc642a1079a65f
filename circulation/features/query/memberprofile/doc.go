// Package memberprofile implements reading one member, by ID or by email.
//
// Lookups by email first resolve the current holder of the address from the
// registration events, then read that member's events.
package memberprofile
