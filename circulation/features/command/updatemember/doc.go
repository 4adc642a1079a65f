// Package updatemember implements a librarian changing the full name or active flag of a member.
// Deactivated members keep their history but cannot borrow or log in.
package updatemember
