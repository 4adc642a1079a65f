// Package renewborrow implements extending the due date of an active borrow.
//
// The boundary includes the member's ledger events, so a fine-incurring return
// that lands concurrently forces the renewal to re-check the outstanding balance.
package renewborrow
