package variantsService_test

import (
	"context"
	"testing"
	"time"

	assemblyId "beacon/api/models/constants/assembly-id"
	g "beacon/api/models/constants/granularity"
	variantType "beacon/api/models/constants/variant-type"
	"beacon/api/models/filters"
	"beacon/api/models/indexes"
	queryService "beacon/api/services/query"
	variantsService "beacon/api/services/variants"
	"beacon/api/tests/common"

	"github.com/stretchr/testify/assert"
)

func newTestStore() *common.FakeVariantStore {
	return &common.FakeVariantStore{
		Datasets: []indexes.Dataset{
			{Id: "coronavirus-testdata", ReferenceGenome: "SARS-CoV-2", SampleCount: 2, VariantCount: 2},
			{Id: "human-testdata", ReferenceGenome: "GRCh38", SampleCount: 3, VariantCount: 2},
		},
		Variants: []indexes.Variant{
			{
				Dataset: "coronavirus-testdata", Chrom: "MN908947.3",
				Start: 3000, End: 3001, Ref: "C", Alt: "T", Type: variantType.SNP,
				CallCount: 2, SampleIds: []string{"sample-a"},
				AssemblyId: "SARS-CoV-2",
				Annotations: []indexes.Annotation{
					{Code: "HP:0011007", Value: 49.3, HasValue: true},
				},
			},
			{
				Dataset: "coronavirus-testdata", Chrom: "MN908947.3",
				Start: 7500, End: 7501, Ref: "G", Alt: "A", Type: variantType.SNP,
				CallCount: 1, SampleIds: []string{"sample-b"},
				AssemblyId: "SARS-CoV-2",
				Annotations: []indexes.Annotation{
					{Code: "HP:0011007", Value: 12, HasValue: true},
				},
			},
			{
				Dataset: "human-testdata", Chrom: "21",
				Start: 5030000, End: 5030001, Ref: "T", Alt: "C", Type: variantType.SNP,
				CallCount: 3, SampleIds: []string{"sample-x", "sample-y"},
				AssemblyId: "GRCh38",
				Annotations: []indexes.Annotation{
					{Code: "NCIT:0000408", HasValue: false},
				},
			},
			{
				Dataset: "human-testdata", Chrom: "21",
				Start: 5031000, End: 5031001, Ref: "A", Alt: "G", Type: variantType.SNP,
				CallCount: 2, SampleIds: []string{"sample-y", "sample-y", "sample-z"},
				AssemblyId: "GRCh38",
				Annotations: []indexes.Annotation{
					{Code: "NCIT:0000408", HasValue: false},
				},
			},
		},
	}
}

func subQuery(store *common.FakeVariantStore, datasetId string, granularity string, filterExpression string) queryService.DatasetQuery {
	var dataset indexes.Dataset
	for _, candidate := range store.Datasets {
		if candidate.Id == datasetId {
			dataset = candidate
		}
	}

	var filter filters.Expression
	if filterExpression != "" {
		parsed, err := filters.Parse(filterExpression)
		if err != nil {
			panic(err)
		}
		filter = parsed
	}

	return queryService.DatasetQuery{
		Dataset:     dataset,
		Granularity: g.CastToGranularity(granularity),
		AssemblyId:  assemblyId.Unknown,
		Filter:      filter,
	}
}

func execute(store *common.FakeVariantStore, queries ...queryService.DatasetQuery) []variantsService.DatasetAggregate {
	service := variantsService.NewVariantService(store, 5*time.Second)
	return service.ExecuteQueryPlan(context.Background(), &queryService.QueryPlan{Queries: queries})
}

func TestExecuteQueryPlanComparatorFilter(t *testing.T) {
	store := newTestStore()

	aggregates := execute(store, subQuery(store, "coronavirus-testdata", "FULL", "HP:0011007>=49"))
	assert.Len(t, aggregates, 1)

	aggregate := aggregates[0]
	assert.Nil(t, aggregate.Err)
	assert.True(t, aggregate.Exists)

	// only the 49.3-valued annotation clears the >=49 threshold
	assert.Equal(t, 1, aggregate.VariantCount)
	assert.Equal(t, 2, aggregate.CallCount)
	assert.Equal(t, 1, aggregate.MatchingSampleCount)

	// frequency derives from the dataset's total sample count
	assert.Equal(t, 0.5, aggregate.Frequency)

	assert.Len(t, aggregate.Variants, 1)
	assert.Equal(t, "C", aggregate.Variants[0].Ref)
}

func TestExecuteQueryPlanUnknownOntologyCode(t *testing.T) {
	store := newTestStore()

	aggregates := execute(store, subQuery(store, "coronavirus-testdata", "FULL", "BOGUS:9999"))
	aggregate := aggregates[0]

	// an unknown code matches nothing; it is never an error
	assert.Nil(t, aggregate.Err)
	assert.False(t, aggregate.Exists)
	assert.Equal(t, 0, aggregate.VariantCount)
	assert.Equal(t, 0, aggregate.MatchingSampleCount)
	assert.Equal(t, 0.0, aggregate.Frequency)
}

func TestExecuteQueryPlanWithoutFilters(t *testing.T) {
	store := newTestStore()

	aggregates := execute(store, subQuery(store, "coronavirus-testdata", "FULL", ""))
	aggregate := aggregates[0]

	assert.True(t, aggregate.Exists)
	assert.Equal(t, 2, aggregate.VariantCount)
	assert.Equal(t, 3, aggregate.CallCount)
	assert.Equal(t, 2, aggregate.MatchingSampleCount)
	assert.Equal(t, 1.0, aggregate.Frequency)
}

func TestExecuteQueryPlanDeduplicatesSamples(t *testing.T) {
	store := newTestStore()

	aggregates := execute(store, subQuery(store, "human-testdata", "FULL_WITH_SAMPLES", "NCIT:0000408"))
	aggregate := aggregates[0]

	// sample-y carries both variants and is linked redundantly on one
	// of them, yet is counted exactly once
	assert.Equal(t, 2, aggregate.VariantCount)
	assert.Equal(t, 3, aggregate.MatchingSampleCount)
	assert.Equal(t, 1.0, aggregate.Frequency)
	assert.Equal(t, []string{"sample-x", "sample-y", "sample-z"}, aggregate.SampleIds)
}

func TestExecuteQueryPlanRedactsByGranularity(t *testing.T) {
	store := newTestStore()

	aggregates := execute(store,
		subQuery(store, "coronavirus-testdata", "SUMMARY", ""),
		subQuery(store, "human-testdata", "FULL", ""))

	summary := aggregates[0]
	assert.True(t, summary.Exists)
	assert.Equal(t, 2, summary.VariantCount)
	// aggregate counts survive; record detail does not
	assert.Nil(t, summary.Variants)
	assert.Nil(t, summary.SampleIds)

	full := aggregates[1]
	assert.Len(t, full.Variants, 2)
	// sample ids require FULL_WITH_SAMPLES
	assert.Nil(t, full.SampleIds)
}

func TestExecuteQueryPlanTimesOutSlowDatasets(t *testing.T) {
	store := newTestStore()
	store.SlowDatasets = map[string]time.Duration{"human-testdata": 2 * time.Second}

	service := variantsService.NewVariantService(store, 50*time.Millisecond)
	aggregates := service.ExecuteQueryPlan(context.Background(), &queryService.QueryPlan{
		Queries: []queryService.DatasetQuery{
			subQuery(store, "coronavirus-testdata", "FULL", ""),
			subQuery(store, "human-testdata", "FULL", ""),
		},
	})

	// the slow dataset is cut off at its own deadline and marked
	// failed; its sibling still answers in full
	assert.Nil(t, aggregates[0].Err)
	assert.True(t, aggregates[0].Exists)

	assert.NotNil(t, aggregates[1].Err)
	assert.False(t, aggregates[1].Exists)
}

func TestExecuteQueryPlanRetriesTransientFailures(t *testing.T) {
	store := newTestStore()
	store.TransientFailures = map[string]int{"coronavirus-testdata": 1}

	aggregates := execute(store, subQuery(store, "coronavirus-testdata", "FULL", ""))
	aggregate := aggregates[0]

	// one transient store failure is absorbed by the retry
	assert.Nil(t, aggregate.Err)
	assert.True(t, aggregate.Exists)
	assert.Equal(t, 2, aggregate.VariantCount)
}

func TestExecuteQueryPlanPropagatesParentCancellation(t *testing.T) {
	store := newTestStore()
	store.SlowDatasets = map[string]time.Duration{"human-testdata": 10 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	service := variantsService.NewVariantService(store, time.Minute)
	aggregates := service.ExecuteQueryPlan(ctx, &queryService.QueryPlan{
		Queries: []queryService.DatasetQuery{
			subQuery(store, "human-testdata", "FULL", ""),
		},
	})

	// cancelling the request unblocks the outstanding sub-query well
	// before its own deadline
	assert.NotNil(t, aggregates[0].Err)
}

func TestExecuteQueryPlanIsolatesDatasetFailures(t *testing.T) {
	store := newTestStore()
	store.FailingDatasets = map[string]bool{"human-testdata": true}

	aggregates := execute(store,
		subQuery(store, "coronavirus-testdata", "FULL", ""),
		subQuery(store, "human-testdata", "FULL", ""))

	// the healthy dataset's slot is unaffected by its sibling's failure
	assert.Nil(t, aggregates[0].Err)
	assert.True(t, aggregates[0].Exists)

	assert.NotNil(t, aggregates[1].Err)
	assert.False(t, aggregates[1].Exists)
	assert.Equal(t, "human-testdata", aggregates[1].Dataset.Id)
}
