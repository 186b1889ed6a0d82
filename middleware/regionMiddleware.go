package middleware

import (
	"net/http"
	"strconv"

	"beacon/api/contexts"
	variantType "beacon/api/models/constants/variant-type"
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
)

/*
Echo middleware to parse the optional genomic-region scoping
parameters (`referenceName`, `start`, `end`, `referenceBases`,
`alternateBases`, `variantType`)
*/
func ValidateOptionalRegionAttributes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		bc := c.(*contexts.BeaconContext)

		bc.Region.ReferenceName = c.QueryParam("referenceName")
		bc.Region.ReferenceBases = c.QueryParam("referenceBases")
		bc.Region.AlternateBases = c.QueryParam("alternateBases")
		bc.Region.VariantType = variantType.CastToVariantType(c.QueryParam("variantType"))

		startQP := c.QueryParam("start")
		if len(startQP) > 0 {
			start, startErr := strconv.Atoi(startQP)
			if startErr != nil || start < 0 {
				return c.JSON(http.StatusBadRequest, errors.CreateFieldValidationError("start", "not a number"))
			}
			bc.Region.Start = start
		}

		endQP := c.QueryParam("end")
		if len(endQP) > 0 {
			end, endErr := strconv.Atoi(endQP)
			if endErr != nil || end < 0 {
				return c.JSON(http.StatusBadRequest, errors.CreateFieldValidationError("end", "not a number"))
			}
			bc.Region.End = end
		}

		if bc.Region.Start > 0 && bc.Region.End > 0 && bc.Region.End < bc.Region.Start {
			return c.JSON(http.StatusBadRequest, errors.CreateFieldValidationError("end", "end must not precede start"))
		}

		return next(bc)
	}
}
