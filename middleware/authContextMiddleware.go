package middleware

import (
	"strings"

	"beacon/api/contexts"
	"beacon/api/models/authorization"

	"github.com/labstack/echo"
)

/*
Echo middleware to derive the caller's authorization context from the
headers set by the upstream authenticating proxy. The engine never
issues or validates tokens itself; with authorization disabled the
anonymous context is forwarded.
*/
func RetrieveAuthContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		bc := c.(*contexts.BeaconContext)
		bc.AuthContext = authorization.Anonymous()

		if bc.Config.AuthX.IsAuthorizationEnabled {
			headers := c.Request().Header

			if strings.EqualFold(headers.Get(bc.Config.AuthX.RegisteredTierHeader), "true") {
				bc.AuthContext.RegisteredAccess = true
			}

			grantsHeader := headers.Get(bc.Config.AuthX.DatasetGrantsHeader)
			if grantsHeader != "" {
				for _, grant := range strings.Split(grantsHeader, ",") {
					grant = strings.TrimSpace(grant)
					if grant != "" {
						bc.AuthContext.DatasetGrants = append(bc.AuthContext.DatasetGrants, grant)
					}
				}
			}
		}

		return next(bc)
	}
}
