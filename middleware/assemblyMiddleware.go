package middleware

import (
	"net/http"

	"beacon/api/contexts"
	assid "beacon/api/models/constants/assembly-id"
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure a valid `assemblyId` HTTP query parameter was provided
*/
func MandateAssemblyIdAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for assemblyId query parameter
		assemblyId := c.QueryParam("assemblyId")
		if len(assemblyId) == 0 || !assid.IsKnownAssemblyId(assemblyId) {
			// if no id was provided, or it was invalid, return an error
			return c.JSON(http.StatusBadRequest, errors.CreateFieldValidationError("assemblyId", "missing or unknown assemblyId"))
		}

		// forward a type-safe value down the pipeline
		bc := c.(*contexts.BeaconContext)
		bc.AssemblyId = assid.CastToAssemblyId(assemblyId)

		return next(bc)
	}
}
