package queryService

import (
	c "beacon/api/models/constants"
	assemblyId "beacon/api/models/constants/assembly-id"
	"beacon/api/models/constants/search"
	"beacon/api/models/filters"
	"beacon/api/models/indexes"
	accessService "beacon/api/services/access"
)

type (
	// GenomicRegion scopes a query to coordinates and alleles,
	// in addition to any ontology filters.
	GenomicRegion struct {
		ReferenceName  string
		Start          int
		End            int
		ReferenceBases string
		AlternateBases string
		VariantType    c.VariantType
	}

	// DatasetQuery is one executable sub-query, scoped to a single
	// dataset. Datasets are never cross-joined : each dataset's
	// variants are evaluated independently and assembled per-dataset.
	DatasetQuery struct {
		Dataset     indexes.Dataset
		Granularity c.Granularity
		AssemblyId  c.AssemblyId
		Region      GenomicRegion

		// predicate tree over ontology annotations; nil = unconstrained
		Filter filters.Expression

		// elasticsearch bool-query body for the variant index
		Body map[string]interface{}
	}

	QueryPlan struct {
		AssemblyId c.AssemblyId
		Queries    []DatasetQuery
	}
)

// BuildQueryPlan converts the parsed filters plus the visible dataset
// scope plus assembly/genomic coordinates into one sub-query per
// visible dataset. Datasets whose reference genome is incompatible
// with the requested assembly are excluded from the plan, not errored.
func BuildQueryPlan(assembly c.AssemblyId, region GenomicRegion,
	orderedFilters []string, parsedFilters map[string]filters.Expression,
	scope []accessService.DatasetVisibility) *QueryPlan {

	// filter strings combine with AND across strings
	combined := filters.Combine(orderedFilters, parsedFilters)

	plan := &QueryPlan{
		AssemblyId: assembly,
		Queries:    make([]DatasetQuery, 0, len(scope)),
	}

	for _, visibility := range scope {
		if !assemblyCompatible(visibility.Dataset, assembly) {
			continue
		}

		plan.Queries = append(plan.Queries, DatasetQuery{
			Dataset:     visibility.Dataset,
			Granularity: visibility.Granularity,
			AssemblyId:  assembly,
			Region:      region,
			Filter:      combined,
			Body:        buildEsQueryBody(visibility.Dataset.Id, assembly, region, combined),
		})
	}

	return plan
}

func assemblyCompatible(dataset indexes.Dataset, assembly c.AssemblyId) bool {
	if assembly == assemblyId.Unknown || dataset.ReferenceGenome == "" {
		return true
	}
	return assemblyId.CastToAssemblyId(dataset.ReferenceGenome) == assembly
}

// buildEsQueryBody assembles the elasticsearch bool query for one
// dataset sub-query.
func buildEsQueryBody(datasetId string, assembly c.AssemblyId, region GenomicRegion, filter filters.Expression) map[string]interface{} {
	// begin building the request body.
	mustMap := []map[string]interface{}{{
		"query_string": map[string]interface{}{
			"fields": []string{"dataset.keyword"},
			"query":  datasetId,
		}},
	}

	if assembly != assemblyId.Unknown {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"assemblyId": map[string]interface{}{
					"query": assembly,
				},
			},
		})
	}

	if region.ReferenceName != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": "chrom:" + region.ReferenceName,
			}})
	}

	if region.ReferenceBases != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": "ref:" + region.ReferenceBases,
			}})
	}

	if region.AlternateBases != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": "alt:" + region.AlternateBases,
			}})
	}

	if region.VariantType != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"type": map[string]interface{}{
					"query": region.VariantType,
				},
			},
		})
	}

	rangeMapSlice := []map[string]interface{}{}

	if region.End > 0 {
		rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
			"range": map[string]interface{}{
				"start": map[string]interface{}{
					"lte": region.End,
				},
			},
		})
	}

	if region.Start > 0 {
		rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
			"range": map[string]interface{}{
				"end": map[string]interface{}{
					"gte": region.Start,
				},
			},
		})
	}

	// individually append each range components to the must map
	for _, rms := range rangeMapSlice {
		mustMap = append(mustMap, rms)
	}

	if filter != nil {
		mustMap = append(mustMap, filterToEsPredicate(filter))
	}

	// overall query structure
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{{
					"bool": map[string]interface{}{
						"must": mustMap,
					}},
				},
			},
		},
	}
}

// filterToEsPredicate translates a predicate tree node into its
// elasticsearch clause. Terms become nested queries over the stored
// ontology-annotation relation; a term whose code annotates nothing
// simply matches no documents, it is never an error.
func filterToEsPredicate(expr filters.Expression) map[string]interface{} {
	switch node := expr.(type) {
	case *filters.Term:
		return termToNestedQuery(node)

	case *filters.And:
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					filterToEsPredicate(node.Left),
					filterToEsPredicate(node.Right),
				},
			},
		}

	case *filters.Or:
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []map[string]interface{}{
					filterToEsPredicate(node.Left),
					filterToEsPredicate(node.Right),
				},
				"minimum_should_match": 1,
			},
		}

	default:
		// unreachable with the current tagged union
		return map[string]interface{}{"match_none": map[string]interface{}{}}
	}
}

func termToNestedQuery(term *filters.Term) map[string]interface{} {
	annotationMust := []map[string]interface{}{{
		"match": map[string]interface{}{
			"annotations.code.keyword": map[string]interface{}{
				"query": term.Code,
			},
		}},
	}

	if term.HasComparison {
		annotationMust = append(annotationMust, map[string]interface{}{
			"range": map[string]interface{}{
				"annotations.value": comparisonToRange(term),
			},
		})
	}

	return map[string]interface{}{
		"nested": map[string]interface{}{
			"path": "annotations",
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": annotationMust,
				},
			},
		},
	}
}

func comparisonToRange(term *filters.Term) map[string]interface{} {
	switch term.Operation {
	case search.SEARCH_OP_EQ:
		return map[string]interface{}{"gte": term.Value, "lte": term.Value}
	case search.SEARCH_OP_LT:
		return map[string]interface{}{"lt": term.Value}
	case search.SEARCH_OP_LE:
		return map[string]interface{}{"lte": term.Value}
	case search.SEARCH_OP_GT:
		return map[string]interface{}{"gt": term.Value}
	case search.SEARCH_OP_GE:
		return map[string]interface{}{"gte": term.Value}
	default:
		return map[string]interface{}{}
	}
}
