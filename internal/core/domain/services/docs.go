// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the storefront. It implements logic that
// doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - Authorizer: the capability evaluator deciding whether an actor may
//     perform an action, optionally scoped to a concrete resource
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
