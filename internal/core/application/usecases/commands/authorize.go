package commands

import (
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// authorizeOnOrder runs the capability check scoped to a concrete order and
// converts a deny into an AccessDeniedError carrying the reason code.
// Handlers call it after loading the aggregate and before mutating it.
func authorizeOnOrder(actor auth.ActorContext, capability auth.Capability, o *order.Order) error {
	ref := o.AccessRef()

	decision, err := services.NewAuthorizer().Authorize(actor, capability, &ref)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return errs.NewAccessDeniedError(string(decision.Reason()))
	}

	return nil
}

// authorize runs a pure capability check with no target resource.
func authorize(actor auth.ActorContext, capability auth.Capability) error {
	decision, err := services.NewAuthorizer().Authorize(actor, capability, nil)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return errs.NewAccessDeniedError(string(decision.Reason()))
	}

	return nil
}
