package beaconService

import (
	"errors"
	"os"
	"path"
	"testing"

	"beacon/api/models"
	g "beacon/api/models/constants/granularity"
	"beacon/api/models/dtos"
	"beacon/api/models/indexes"
	accessService "beacon/api/services/access"
	variantsService "beacon/api/services/variants"

	"github.com/stretchr/testify/assert"
)

func newTestBeaconService(t *testing.T, accessLevelsYaml string) *BeaconService {
	var cfg models.Config
	cfg.Beacon.Id = "org.example.beacon.test"
	cfg.Beacon.ApiVersion = "v1.0.0"

	if accessLevelsYaml != "" {
		accessLevelsPath := path.Join(t.TempDir(), "access_levels.yml")
		writeErr := os.WriteFile(accessLevelsPath, []byte(accessLevelsYaml), 0644)
		assert.Nil(t, writeErr)
		cfg.Beacon.AccessLevelsPath = accessLevelsPath
	}

	access, err := accessService.NewAccessService(&cfg)
	assert.Nil(t, err)

	return NewBeaconService(&cfg, access)
}

func testAggregates() []variantsService.DatasetAggregate {
	return []variantsService.DatasetAggregate{
		{
			Dataset:             indexes.Dataset{Id: "dataset-b", VariantCount: 10, SampleCount: 4},
			Granularity:         g.Full,
			Exists:              true,
			VariantCount:        3,
			CallCount:           5,
			MatchingSampleCount: 2,
			Frequency:           0.5,
			Variants:            []indexes.Variant{{Dataset: "dataset-b", Chrom: "21"}},
		},
		{
			Dataset:     indexes.Dataset{Id: "dataset-a", VariantCount: 7, SampleCount: 2},
			Granularity: g.Summary,
			Exists:      false,
		},
	}
}

func TestBuildBeaconResponseOrdersAndAccumulates(t *testing.T) {
	service := newTestBeaconService(t, "")

	response := service.BuildBeaconResponse(
		dtos.BeaconQueryRequest{IncludeDatasetResponses: true}, testAggregates())

	assert.True(t, response.Value.Exists)
	assert.Equal(t, 3, response.Value.TotalVariantCount)

	// datasets are ordered by stable id regardless of completion order
	assert.Len(t, response.Value.DatasetAlleleResponses, 2)
	assert.Equal(t, "dataset-a", response.Value.DatasetAlleleResponses[0].Id)
	assert.Equal(t, "dataset-b", response.Value.DatasetAlleleResponses[1].Id)

	full := response.Value.DatasetAlleleResponses[1]
	assert.Equal(t, 10, full.DatasetVariantCount)
	assert.Equal(t, 3, full.VariantCount)
	assert.Equal(t, 5, full.CallCount)
	assert.Equal(t, 4, full.SampleCount)
	assert.Equal(t, 2, full.MatchingSampleCount)
	assert.Equal(t, 0.5, full.Frequency)
	assert.Len(t, full.Variants, 1)

	// response meta
	assert.Equal(t, "org.example.beacon.test", response.Meta.BeaconId)
	assert.Equal(t, "v1.0.0", response.Meta.ApiVersion)
	assert.NotEmpty(t, response.Meta.QueryId)
}

func TestBuildBeaconResponseWithoutDatasetBreakdown(t *testing.T) {
	service := newTestBeaconService(t, "")

	response := service.BuildBeaconResponse(
		dtos.BeaconQueryRequest{IncludeDatasetResponses: false}, testAggregates())

	// the global summary survives even without the breakdown
	assert.True(t, response.Value.Exists)
	assert.Equal(t, 3, response.Value.TotalVariantCount)
	assert.Nil(t, response.Value.DatasetAlleleResponses)
}

func TestBuildBeaconResponseRendersDatasetFailures(t *testing.T) {
	service := newTestBeaconService(t, "")

	aggregates := append(testAggregates(), variantsService.DatasetAggregate{
		Dataset:     indexes.Dataset{Id: "dataset-c", VariantCount: 9},
		Granularity: g.Full,
		Err:         errors.New("connection refused: es cluster down"),
	})

	response := service.BuildBeaconResponse(
		dtos.BeaconQueryRequest{IncludeDatasetResponses: true}, aggregates)

	// the failed dataset never contributes to the rollup
	assert.Equal(t, 3, response.Value.TotalVariantCount)

	failed := response.Value.DatasetAlleleResponses[2]
	assert.Equal(t, "dataset-c", failed.Id)
	assert.False(t, failed.Exists)
	assert.NotNil(t, failed.Error)
	assert.Equal(t, 503, failed.Error.ErrorCode)

	// internal failure detail is never echoed to the caller
	assert.NotContains(t, failed.Error.Message, "connection refused")
}

func TestBuildBeaconResponseAppliesFieldOverrides(t *testing.T) {
	service := newTestBeaconService(t, `
datasets:
  dataset-b:
    datasetAlleleResponses:
      variants: SUMMARY
`)

	response := service.BuildBeaconResponse(
		dtos.BeaconQueryRequest{IncludeDatasetResponses: true}, testAggregates())

	// the override strips record detail from an otherwise FULL dataset,
	// leaving the aggregate counts intact
	clamped := response.Value.DatasetAlleleResponses[1]
	assert.Equal(t, "dataset-b", clamped.Id)
	assert.Nil(t, clamped.Variants)
	assert.Equal(t, 3, clamped.VariantCount)
}
