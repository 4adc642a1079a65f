// Package core contains the domain events and pure business primitives of the
// library circulation service: the catalog, the membership, reservations,
// borrows, fines, and feedback.
//
// Events are named after meaningful business occurrences like BookIssued or
// FinePaid, never after CRUD operations. Every event implements DomainEvent.
//
// Nothing in here performs I/O. The Decide functions of the command slices
// build on these types and stay pure as well.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
