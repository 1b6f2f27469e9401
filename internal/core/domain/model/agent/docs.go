// Package agent provides the Agent aggregate: a fulfillment staff member who
// prepares, ships, and closes orders assigned to them.
//
// Agents carry the fulfillment_agent role. By default that role's capability
// set applies; an agent may additionally carry a per-identity capability
// override that narrows (or reshapes) the defaults, e.g. a trainee allowed to
// view and validate orders but not ship them.
//
// Key business rules:
//   - An agent must have a valid unique identifier and a non-empty name
//   - Only active agents are eligible for order assignment
//   - A nil capability override means the role defaults apply; a non-nil
//     override replaces them entirely, even when empty
package agent
