package contexts

import (
	"beacon/api/models"
	"beacon/api/models/authorization"
	c "beacon/api/models/constants"
	"beacon/api/models/filters"
	accessService "beacon/api/services/access"
	beaconService "beacon/api/services/beacon"
	overviewService "beacon/api/services/overview"
	queryService "beacon/api/services/query"
	variantsService "beacon/api/services/variants"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  the service singletons and per-request typed query elements
	BeaconContext struct {
		echo.Context
		Es7Client *es7.Client
		Config    *models.Config

		AccessService   *accessService.AccessService
		VariantService  *variantsService.VariantService
		BeaconService   *beaconService.BeaconService
		OverviewService *overviewService.OverviewService

		// per-request values populated by validation middleware
		AssemblyId    c.AssemblyId
		Region        queryService.GenomicRegion
		DatasetIds    []string
		RawFilters    []string
		ParsedFilters map[string]filters.Expression

		IncludeDatasetResponses bool
		IncludeSampleIds        bool

		AuthContext authorization.AuthContext
	}
)
