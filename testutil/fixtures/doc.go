// Package fixtures builds domain event histories for tests of the circulation slices.
package fixtures
