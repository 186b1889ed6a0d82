package beaconService

import (
	"beacon/api/models"
	"beacon/api/models/dtos"

	g "beacon/api/models/constants/granularity"
	variantsService "beacon/api/services/variants"

	accessService "beacon/api/services/access"

	. "github.com/ahmetb/go-linq"
	"github.com/google/uuid"
)

// the parent response field the per-field access overrides key against
const datasetResponsesField = "datasetAlleleResponses"

type BeaconService struct {
	Config        *models.Config
	AccessService *accessService.AccessService
}

func NewBeaconService(cfg *models.Config, access *accessService.AccessService) *BeaconService {
	return &BeaconService{
		Config:        cfg,
		AccessService: access,
	}
}

// BuildBeaconResponse assembles the per-dataset aggregates into the
// final response envelope. Datasets are ordered by stable id,
// ascending, for reproducible output.
func (b *BeaconService) BuildBeaconResponse(request dtos.BeaconQueryRequest, aggregates []variantsService.DatasetAggregate) dtos.BeaconResponse {
	ordered := make([]variantsService.DatasetAggregate, 0, len(aggregates))
	From(aggregates).
		OrderBy(func(a interface{}) interface{} {
			return a.(variantsService.DatasetAggregate).Dataset.Id
		}).
		ToSlice(&ordered)

	value := dtos.ResponseValue{}
	datasetResponses := make([]dtos.DatasetAlleleResponse, 0, len(ordered))

	for _, aggregate := range ordered {
		datasetResponse := b.buildDatasetResponse(aggregate)

		if datasetResponse.Exists {
			value.Exists = true
			value.TotalVariantCount += datasetResponse.VariantCount
		}
		datasetResponses = append(datasetResponses, datasetResponse)
	}

	// when dataset responses were not requested, only the global
	// exists/count summary is returned
	if request.IncludeDatasetResponses {
		value.DatasetAlleleResponses = datasetResponses
	}

	return dtos.BeaconResponse{
		Meta: dtos.ResponseMeta{
			BeaconId:   b.Config.Beacon.Id,
			ApiVersion: b.Config.Beacon.ApiVersion,
			QueryId:    uuid.NewString(),
			ReceivedRequest: dtos.ReceivedRequest{
				ApiVersion: b.Config.Beacon.ApiVersion,
				Query:      request,
			},
		},
		Value: value,
	}
}

func (b *BeaconService) buildDatasetResponse(aggregate variantsService.DatasetAggregate) dtos.DatasetAlleleResponse {
	datasetResponse := dtos.DatasetAlleleResponse{
		Id:                  aggregate.Dataset.Id,
		DatasetVariantCount: aggregate.Dataset.VariantCount,
		Granularity:         aggregate.Granularity,
	}

	if aggregate.Err != nil {
		// per-dataset failure marker; user-safe message only
		datasetResponse.Error = &dtos.BeaconError{
			ErrorCode: 503,
			Message:   "dataset temporarily unavailable",
		}
		return datasetResponse
	}

	datasetResponse.Exists = aggregate.Exists
	datasetResponse.VariantCount = aggregate.VariantCount
	datasetResponse.CallCount = aggregate.CallCount
	datasetResponse.SampleCount = aggregate.Dataset.SampleCount
	datasetResponse.Frequency = aggregate.Frequency
	datasetResponse.MatchingSampleCount = aggregate.MatchingSampleCount

	// the override table is consulted per field at build time and
	// clamps even a FULL dataset-level decision
	variantsGranularity := b.AccessService.FieldGranularity(
		aggregate.Dataset.Id, datasetResponsesField, "variants", aggregate.Granularity)
	if g.Rank(variantsGranularity) >= g.Rank(g.Full) {
		datasetResponse.Variants = aggregate.Variants
	}

	sampleIdsGranularity := b.AccessService.FieldGranularity(
		aggregate.Dataset.Id, datasetResponsesField, "sampleIds", aggregate.Granularity)
	if g.Rank(sampleIdsGranularity) >= g.Rank(g.FullWithSamples) {
		datasetResponse.SampleIds = aggregate.SampleIds
	}

	return datasetResponse
}
