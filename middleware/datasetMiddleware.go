package middleware

import (
	"strconv"
	"strings"

	"beacon/api/contexts"

	"github.com/labstack/echo"
)

/*
Echo middleware to accept an optional `datasetIds` HTTP query parameter
(comma separated stable ids). An empty list means every dataset the
caller may see.
*/
func OptionalDatasetIdsAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		bc := c.(*contexts.BeaconContext)

		datasetIdsQP := c.QueryParam("datasetIds")
		if len(datasetIdsQP) > 0 {
			datasetIds := make([]string, 0)
			for _, id := range strings.Split(datasetIdsQP, ",") {
				id = strings.TrimSpace(id)
				if id != "" {
					datasetIds = append(datasetIds, id)
				}
			}
			bc.DatasetIds = datasetIds
		}

		return next(bc)
	}
}

/*
Echo middleware to parse the `includeDatasetResponses` and
`includeSampleIds` HTTP query parameters
*/
func ValidateResponseGranularityAttributes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		bc := c.(*contexts.BeaconContext)

		// default to returning per-dataset breakdowns
		bc.IncludeDatasetResponses = true

		includeDatasetResponsesQP := c.QueryParam("includeDatasetResponses")
		if len(includeDatasetResponsesQP) > 0 {
			if parsed, parseErr := strconv.ParseBool(includeDatasetResponsesQP); parseErr == nil {
				bc.IncludeDatasetResponses = parsed
			}
		}

		includeSampleIdsQP := c.QueryParam("includeSampleIds")
		if len(includeSampleIdsQP) > 0 {
			if parsed, parseErr := strconv.ParseBool(includeSampleIdsQP); parseErr == nil {
				bc.IncludeSampleIds = parsed
			}
		}

		return next(bc)
	}
}
