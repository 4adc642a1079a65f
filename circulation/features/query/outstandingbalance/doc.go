// Package outstandingbalance implements the Outstanding Balance query.
//
// The balance is never stored. It is projected from the fines carried by BookReturned
// and the payments recorded by FinePaid, and it never drops below zero.
package outstandingbalance
