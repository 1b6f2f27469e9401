// Package auth contains the role and capability model used by the
// authorization evaluator: the closed Role enum, namespaced Capability
// tokens, the static role-to-capability catalog, and the per-request
// ActorContext.
//
// The catalog is precomputed immutable package state, safe for
// unsynchronized concurrent reads. Administrators are handled by wildcard
// in the evaluator and deliberately have no enumerated capability set.
package auth
