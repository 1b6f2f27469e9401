package auth

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Role represents the access level of an authenticated actor.
// The enum is closed: new roles require a code change, which keeps the
// permission catalog total and free of unknown-role branches.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is a shopper acting on their own orders.
	RoleCustomer

	// RoleFulfillmentAgent is an operator processing orders assigned to them.
	RoleFulfillmentAgent

	// RoleAdministrator holds every capability by wildcard.
	RoleAdministrator
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:          "unknown",
		RoleCustomer:         "customer",
		RoleFulfillmentAgent: "fulfillment_agent",
		RoleAdministrator:    "administrator",
	}
}

// getValidRoleStrings returns only valid Role values, to support validation
// and parsing of externally supplied role names.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer:         "customer",
		RoleFulfillmentAgent: "fulfillment_agent",
		RoleAdministrator:    "administrator",
	}
}

// RoleFromString parses a role name supplied by the credential-resolution
// layer. Unknown names are rejected.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is valid.
// Valid roles are: customer, fulfillment_agent, administrator.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the wire name of the role.
// Implements fmt.Stringer and is safe on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
