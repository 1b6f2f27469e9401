package auth

// The permission catalog: explicit role capability sets, built once at
// process start and read concurrently without synchronization.
//
// RoleAdministrator has no entry on purpose. The wildcard is step one of the
// evaluator, and correctness must never depend on an enumerated admin set —
// otherwise a new capability silently locks administrators out until someone
// remembers to add it here.
var roleCapabilities = map[Role]CapabilitySet{
	RoleCustomer: NewCapabilitySet(
		CapabilityOrderView,
		CapabilityOrderCancel,
	),
	RoleFulfillmentAgent: NewCapabilitySet(
		CapabilityOrderView,
		CapabilityOrderValidate,
		CapabilityOrderUpdateLogistics,
		CapabilityOrderCancel,
	),
}

// CapabilitiesFor returns the explicit capability set of a role. It is a
// pure, total function: roles without an explicit set (administrator,
// unknown) get an empty set, never an error.
func CapabilitiesFor(role Role) CapabilitySet {
	if set, ok := roleCapabilities[role]; ok {
		return set
	}
	return CapabilitySet{}
}
