// Package http exposes the storefront's use cases over a REST API.
//
// Authentication happens upstream; this layer trusts the gateway-injected
// actor headers and turns them into the domain's ActorContext. Authorization
// stays in the application core: the handlers here never decide who may do
// what, they only translate denials into status codes.
package http

import (
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Header names the upstream gateway uses to convey the verified caller.
const (
	HeaderActorID           = "X-Actor-Id"
	HeaderActorRole         = "X-Actor-Role"
	HeaderActorCapabilities = "X-Actor-Capabilities"
)

// actorContextKey is the echo context key the middleware stores the actor
// under.
const actorContextKey = "actor"

// ActorContextMiddleware resolves the acting identity from the gateway
// headers. Requests without a parseable identity and role are rejected
// before any handler runs.
//
// X-Actor-Capabilities is optional and only honored for fulfillment agents:
// a comma-separated token list forming the per-identity capability override.
// An empty-but-present header means "override with no capabilities".
func ActorContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderActorID))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing or malformed " + HeaderActorID + " header",
				})
			}

			role, err := auth.RoleFromString(c.Request().Header.Get(HeaderActorRole))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing or malformed " + HeaderActorRole + " header",
				})
			}

			actor, err := auth.NewActorContext(identity, role, parseCapabilityOverride(c))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid actor context: " + err.Error(),
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// parseCapabilityOverride reads the optional capability override header.
// Absent header means nil (role defaults apply).
func parseCapabilityOverride(c echo.Context) []auth.Capability {
	values, present := c.Request().Header[HeaderActorCapabilities]
	if !present {
		return nil
	}

	override := make([]auth.Capability, 0)
	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			override = append(override, auth.Capability(token))
		}
	}
	return override
}

// actorFromContext returns the actor the middleware resolved.
func actorFromContext(c echo.Context) (auth.ActorContext, bool) {
	actor, ok := c.Get(actorContextKey).(auth.ActorContext)
	return actor, ok
}
