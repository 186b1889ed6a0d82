package middleware

import (
	"net/http"
	"strings"

	"beacon/api/contexts"
	"beacon/api/models/dtos/errors"
	"beacon/api/models/filters"

	"github.com/labstack/echo"
)

/*
Echo middleware to parse and validate the `filters` HTTP query
parameter. Filter-expression strings may be passed as repeated
`filters` parameters and/or comma-separated within one parameter;
each string is one independent expression (strings combine with AND).

A malformed expression fails the whole request fast with a
field-attributed validation error naming the offending substring;
no partial results are returned.
*/
func ValidateFilterExpressions(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		bc := c.(*contexts.BeaconContext)

		rawFilters := make([]string, 0)
		for _, param := range c.QueryParams()["filters"] {
			for _, expression := range strings.Split(param, ",") {
				expression = strings.TrimSpace(expression)
				if expression != "" {
					rawFilters = append(rawFilters, expression)
				}
			}
		}

		// empty filter list means no filter constraint
		parsed, parseErr := filters.ParseList(rawFilters)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateFieldValidationError("filters", parseErr.Error()))
		}

		// forward type-safe values down the pipeline
		bc.RawFilters = rawFilters
		bc.ParsedFilters = parsed

		return next(bc)
	}
}
