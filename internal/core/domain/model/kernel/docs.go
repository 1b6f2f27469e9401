// Package kernel contains shared value objects used across the domain model:
// entity identifiers and the human-readable order numbering scheme.
//
// Everything in this package is an immutable value object. Zero values are
// invalid and detectable via Validate; construction goes through the factory
// functions only.
package kernel
