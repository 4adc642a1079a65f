// Package reservationsbymember implements the query listing the reservations of one member with their status.
package reservationsbymember
