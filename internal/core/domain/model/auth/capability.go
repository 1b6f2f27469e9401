package auth

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Capability is an opaque token naming one class of action, namespaced by
// subject area ("order.validate", "catalog.manage"). Capabilities can be
// added without touching the Role enum; a capability grants the class of an
// action, resource-scoped checks grant the instance.
type Capability string

// Capability tokens known to the engine. The administrator wildcard covers
// tokens that appear in no explicit set (catalog.manage, promotion.manage,
// staff.manage) as well as any future ones.
const (
	CapabilityOrderView            Capability = "order.view"
	CapabilityOrderValidate        Capability = "order.validate"
	CapabilityOrderUpdateLogistics Capability = "order.update_logistics"
	CapabilityOrderCancel          Capability = "order.cancel"
	CapabilityCatalogManage        Capability = "catalog.manage"
	CapabilityPromotionManage      Capability = "promotion.manage"
	CapabilityStaffManage          Capability = "staff.manage"
)

// Validate checks the token shape: non-empty, lowercase, "area.action".
// Token content is deliberately not checked against a closed list so new
// capabilities can ship without enum changes.
func (c Capability) Validate() error {
	s := string(c)
	if s == "" {
		return errs.NewValueIsRequiredError("capability")
	}

	area, action, found := strings.Cut(s, ".")
	if !found || area == "" || action == "" || s != strings.ToLower(s) {
		return errs.NewValueIsInvalidErrorWithCause(
			"capability is invalid",
			fmt.Errorf("%q is not of the form area.action", s),
		)
	}
	return nil
}

func (c Capability) String() string {
	return string(c)
}

// CapabilitySet is an immutable-by-convention set of capability tokens.
// Never mutate a set obtained from the catalog; build a new one instead.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given tokens.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds the given capability.
func (s CapabilitySet) Contains(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the set's tokens in unspecified order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}
