package http

import (
	"errors"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Gateway headers identifying the caller. Authentication happens upstream;
// the service trusts these values.
const (
	HeaderActorID      = "X-Actor-Id"
	HeaderActorRole    = "X-Actor-Role"
	HeaderDepartmentID = "X-Department-Id"
	HeaderWarehouseIDs = "X-Warehouse-Ids"
)

// actorFromRequest builds the actor of the current request. Missing or
// malformed headers are reported as AuthorizationError.
func actorFromRequest(c echo.Context) (kernel.Actor, error) {
	header := c.Request().Header

	id, err := kernel.UUIDFromString(strings.TrimSpace(header.Get(HeaderActorID)))
	if err != nil {
		return kernel.Actor{}, errs.NewAuthorizationErrorWithCause("anonymous", "call the API",
			errors.New(HeaderActorID+" header is missing or malformed"))
	}

	role, err := kernel.ParseRole(header.Get(HeaderActorRole))
	if err != nil {
		return kernel.Actor{}, errs.NewAuthorizationErrorWithCause("unknown", "call the API", err)
	}

	var department *kernel.UUID
	if raw := strings.TrimSpace(header.Get(HeaderDepartmentID)); raw != "" {
		parsed, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return kernel.Actor{}, errs.NewAuthorizationErrorWithCause(role.String(), "call the API", parseErr)
		}
		department = &parsed
	}

	var warehouses []kernel.UUID
	if raw := strings.TrimSpace(header.Get(HeaderWarehouseIDs)); raw != "" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		warehouses, err = kernel.UUIDsFromStrings(parts)
		if err != nil {
			return kernel.Actor{}, errs.NewAuthorizationErrorWithCause(role.String(), "call the API", err)
		}
	}

	actor, err := kernel.NewActor(id, role, department, warehouses)
	if err != nil {
		return kernel.Actor{}, errs.NewAuthorizationErrorWithCause(role.String(), "call the API", err)
	}
	return actor, nil
}
