package queryService

import (
	"testing"

	assemblyId "beacon/api/models/constants/assembly-id"
	g "beacon/api/models/constants/granularity"
	"beacon/api/models/filters"
	"beacon/api/models/indexes"
	accessService "beacon/api/services/access"

	"github.com/stretchr/testify/assert"
)

func testScope() []accessService.DatasetVisibility {
	return []accessService.DatasetVisibility{
		{Dataset: indexes.Dataset{Id: "dataset-38", ReferenceGenome: "GRCh38"}, Granularity: g.Full},
		{Dataset: indexes.Dataset{Id: "dataset-37", ReferenceGenome: "GRCh37"}, Granularity: g.Summary},
		{Dataset: indexes.Dataset{Id: "dataset-any", ReferenceGenome: ""}, Granularity: g.Full},
	}
}

func TestBuildQueryPlanOneSubQueryPerVisibleDataset(t *testing.T) {
	ordered := []string{"HP:0011007>=49"}
	parsed, err := filters.ParseList(ordered)
	assert.Nil(t, err)

	plan := BuildQueryPlan(assemblyId.GRCh38, GenomicRegion{}, ordered, parsed, testScope())

	// dataset-37 is assembly-incompatible : excluded, not errored
	assert.Len(t, plan.Queries, 2)
	assert.Equal(t, "dataset-38", plan.Queries[0].Dataset.Id)
	assert.Equal(t, "dataset-any", plan.Queries[1].Dataset.Id)

	// each sub-query carries the scope's granularity decision and the
	// combined predicate tree
	assert.Equal(t, g.Full, plan.Queries[0].Granularity)
	for _, query := range plan.Queries {
		assert.NotNil(t, query.Filter)
		assert.Equal(t, "HP:0011007>=49", query.Filter.String())
	}
}

func TestBuildQueryPlanWithoutFiltersIsUnconstrained(t *testing.T) {
	plan := BuildQueryPlan(assemblyId.GRCh37, GenomicRegion{}, nil, nil, testScope())

	assert.Len(t, plan.Queries, 2)
	for _, query := range plan.Queries {
		assert.Nil(t, query.Filter)
	}
}

func TestBuildEsQueryBodyShape(t *testing.T) {
	region := GenomicRegion{
		ReferenceName:  "21",
		Start:          5030000,
		End:            5030847,
		ReferenceBases: "T",
		AlternateBases: "C",
	}
	filter, err := filters.Parse("HP:0011007>=49")
	assert.Nil(t, err)

	body := buildEsQueryBody("dataset-38", assemblyId.GRCh38, region, filter)

	mustMap := body["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]map[string]interface{})[0]["bool"].(map[string]interface{})["must"].([]map[string]interface{})

	// dataset scoping clause always leads
	assert.Equal(t, "dataset-38", mustMap[0]["query_string"].(map[string]interface{})["query"])

	// chrom/ref/alt clauses and both coordinate range clauses are present
	queries := make([]string, 0)
	rangeClauses := 0
	nestedClauses := 0
	for _, clause := range mustMap {
		if queryString, ok := clause["query_string"]; ok {
			if query, ok := queryString.(map[string]interface{})["query"].(string); ok {
				queries = append(queries, query)
			}
		}
		if _, ok := clause["range"]; ok {
			rangeClauses++
		}
		if _, ok := clause["nested"]; ok {
			nestedClauses++
		}
	}
	assert.Contains(t, queries, "chrom:21")
	assert.Contains(t, queries, "ref:T")
	assert.Contains(t, queries, "alt:C")
	assert.Equal(t, 2, rangeClauses)
	assert.Equal(t, 1, nestedClauses)
}

func TestFilterToEsPredicateTermIsNested(t *testing.T) {
	filter, err := filters.Parse("HP:0011007>=49")
	assert.Nil(t, err)

	predicate := filterToEsPredicate(filter)

	nested := predicate["nested"].(map[string]interface{})
	assert.Equal(t, "annotations", nested["path"])

	annotationMust := nested["query"].(map[string]interface{})["bool"].(map[string]interface{})["must"].([]map[string]interface{})
	assert.Equal(t, "HP:0011007",
		annotationMust[0]["match"].(map[string]interface{})["annotations.code.keyword"].(map[string]interface{})["query"])
	assert.Equal(t, map[string]interface{}{"gte": 49.0},
		annotationMust[1]["range"].(map[string]interface{})["annotations.value"])
}

func TestFilterToEsPredicateCombinators(t *testing.T) {
	filter, err := filters.Parse("HP:0011007 or NCIT:0000408")
	assert.Nil(t, err)

	predicate := filterToEsPredicate(filter)
	boolClause := predicate["bool"].(map[string]interface{})

	assert.Len(t, boolClause["should"], 2)
	assert.Equal(t, 1, boolClause["minimum_should_match"])

	filter, err = filters.Parse("HP:0011007 and NCIT:0000408")
	assert.Nil(t, err)

	predicate = filterToEsPredicate(filter)
	assert.Len(t, predicate["bool"].(map[string]interface{})["must"], 2)
}
