package beacon

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"beacon/api/contexts"
	g "beacon/api/models/constants/granularity"
	"beacon/api/models/dtos"
	"beacon/api/models/dtos/errors"
	"beacon/api/mvc"
	queryService "beacon/api/services/query"

	"github.com/labstack/echo"
)

// BeaconQuery answers a variant discovery query : the visible-dataset
// scope is computed first, one sub-query per visible dataset is planned
// and executed, and the per-dataset aggregates are assembled into the
// response envelope.
func BeaconQuery(c echo.Context) error {
	fmt.Printf("[%s] - BeaconQuery hit!\n", time.Now())
	bc := c.(*contexts.BeaconContext)

	assemblyId, region, datasetIds, rawFilters, parsedFilters, auth := mvc.RetrieveCommonElements(c)

	// scope the query to the datasets this caller may see; forbidden
	// datasets are silently absent, never errors
	datasets := bc.OverviewService.GetDatasets(datasetIds)
	scope := bc.AccessService.VisibleDatasets(datasets, auth, bc.IncludeSampleIds)

	plan := queryService.BuildQueryPlan(assemblyId, region, rawFilters, parsedFilters, scope)

	aggregates := bc.VariantService.ExecuteQueryPlan(c.Request().Context(), plan)

	receivedRequest := dtos.BeaconQueryRequest{
		AssemblyId:              string(assemblyId),
		ReferenceName:           region.ReferenceName,
		Start:                   region.Start,
		End:                     region.End,
		ReferenceBases:          region.ReferenceBases,
		AlternateBases:          region.AlternateBases,
		VariantType:             string(region.VariantType),
		DatasetIds:              datasetIds,
		Filters:                 rawFilters,
		IncludeDatasetResponses: bc.IncludeDatasetResponses,
		IncludeSampleIds:        bc.IncludeSampleIds,
	}

	return c.JSON(http.StatusOK, bc.BeaconService.BuildBeaconResponse(receivedRequest, aggregates))
}

// BeaconInfo reveals information about this beacon and its visible
// datasets and their associated metadata.
func BeaconInfo(c echo.Context) error {
	fmt.Printf("[%s] - BeaconInfo hit!\n", time.Now())
	bc := c.(*contexts.BeaconContext)
	cfg := bc.Config

	datasets := bc.OverviewService.GetDatasets(nil)
	scope := bc.AccessService.VisibleDatasets(datasets, bc.AuthContext, false)

	datasetInfos := make([]dtos.DatasetInfoResponse, 0, len(scope))
	for _, visibility := range scope {
		dataset := visibility.Dataset

		// authorized reflects the caller's actual standing : a granted
		// CONTROLLED or credentialed REGISTERED dataset reads "true"
		authorized := "false"
		if g.Rank(visibility.Granularity) >= g.Rank(g.Full) {
			authorized = "true"
		}

		datasetInfos = append(datasetInfos, dtos.DatasetInfoResponse{
			Id:           dataset.Id,
			Description:  dataset.Description,
			AssemblyId:   dataset.ReferenceGenome,
			VariantCount: dataset.VariantCount,
			CallCount:    dataset.CallCount,
			SampleCount:  dataset.SampleCount,
			ConsentCodes: dataset.ConsentCodes,
			Info: map[string]interface{}{
				"accessType": dataset.AccessType,
				"authorized": authorized,
			},
		})
	}

	return c.JSON(http.StatusOK, dtos.BeaconInfoResponse{
		Id:          cfg.Beacon.Id,
		Name:        cfg.Beacon.Name,
		ApiVersion:  cfg.Beacon.ApiVersion,
		Description: cfg.Beacon.Description,
		WelcomeUrl:  cfg.Beacon.WelcomeUrl,
		Org: dtos.BeaconOrganization{
			Id:         cfg.Beacon.OrgId,
			Name:       cfg.Beacon.OrgName,
			WelcomeUrl: cfg.Beacon.OrgWelcomeUrl,
			ContactUrl: cfg.Beacon.OrgContactUrl,
		},
		Datasets: datasetInfos,
	})
}

// GetDatasets lists the metadata of the datasets visible to the caller.
func GetDatasets(c echo.Context) error {
	fmt.Printf("[%s] - GetDatasets hit!\n", time.Now())
	bc := c.(*contexts.BeaconContext)

	datasets := bc.OverviewService.GetDatasets(bc.DatasetIds)
	scope := bc.AccessService.VisibleDatasets(datasets, bc.AuthContext, false)

	visible := make([]dtos.DatasetInfoResponse, 0, len(scope))
	for _, visibility := range scope {
		dataset := visibility.Dataset
		visible = append(visible, dtos.DatasetInfoResponse{
			Id:           dataset.Id,
			Description:  dataset.Description,
			AssemblyId:   dataset.ReferenceGenome,
			VariantCount: dataset.VariantCount,
			CallCount:    dataset.CallCount,
			SampleCount:  dataset.SampleCount,
			ConsentCodes: dataset.ConsentCodes,
			Info: map[string]interface{}{
				"accessType": dataset.AccessType,
			},
		})
	}

	return c.JSON(http.StatusOK, visible)
}

// GetFilteringTerms enumerates the distinct ontology codes present in
// the store, for populating filter-builder UIs.
func GetFilteringTerms(c echo.Context) error {
	fmt.Printf("[%s] - GetFilteringTerms hit!\n", time.Now())
	bc := c.(*contexts.BeaconContext)

	terms, termsErr := bc.VariantService.Store.GetFilteringTerms(c.Request().Context())
	if termsErr != nil {
		fmt.Printf("Error getting filtering terms: %s\n", termsErr)
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("Something went wrong.. Please contact the administrator!"))
	}

	codes := make([]string, 0, len(terms))
	for code := range terms {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	response := dtos.FilteringTermsResponse{
		Terms: make([]dtos.FilteringTerm, 0, len(codes)),
	}
	for _, code := range codes {
		response.Terms = append(response.Terms, dtos.FilteringTerm{
			Code:  code,
			Count: terms[code],
		})
	}

	return c.JSON(http.StatusOK, response)
}
