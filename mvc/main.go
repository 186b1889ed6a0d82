package mvc

import (
	"beacon/api/contexts"
	"beacon/api/models/authorization"
	"beacon/api/models/constants"
	"beacon/api/models/filters"
	queryService "beacon/api/services/query"

	"github.com/labstack/echo"
)

func RetrieveCommonElements(c echo.Context) (constants.AssemblyId, queryService.GenomicRegion, []string, []string, map[string]filters.Expression, authorization.AuthContext) {
	bc := c.(*contexts.BeaconContext)

	assemblyId := bc.AssemblyId
	region := bc.Region
	datasetIds := bc.DatasetIds

	rawFilters := bc.RawFilters
	parsedFilters := bc.ParsedFilters

	return assemblyId, region, datasetIds, rawFilters, parsedFilters, bc.AuthContext
}
