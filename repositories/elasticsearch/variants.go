package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"beacon/api/models"
	s "beacon/api/models/constants/sort"
	"beacon/api/models/indexes"
	queryService "beacon/api/services/query"
	"beacon/api/utils"

	"github.com/Jeffail/gabs"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/mitchellh/mapstructure"
)

// SearchVariants executes one dataset sub-query body against the
// variant index and decodes the matching rows.
func SearchVariants(cfg *models.Config, es *elasticsearch.Client, ctx context.Context, body map[string]interface{}) ([]indexes.Variant, error) {

	query := make(map[string]interface{}, len(body)+2)
	for key, value := range body {
		query[key] = value
	}
	query["size"] = 10000

	// deterministic row ordering by position
	query["sort"] = map[string]string{
		"start": string(s.Ascending),
	}

	// encode the query
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		log.Printf("Error encoding query: %s\n", err)
		return nil, err
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		fmt.Println(buf.String())
	}

	fmt.Printf("Query Start: %s\n", time.Now())

	// Perform the search request.
	res, searchErr := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(VariantsIndex),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
		es.Search.WithPretty(),
	)
	if searchErr != nil {
		fmt.Printf("Error getting response: %s\n", searchErr)
		return nil, searchErr
	}

	defer res.Body.Close()

	resultString := res.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	// Unmarshal or Decode the JSON to the interface.
	// Known bug: response comes back with a preceding '[200 OK] ' which needs trimming
	bracketString, jsonBodyString := utils.GetLeadingStringInBetweenSquareBrackets(resultString)
	if !strings.Contains(bracketString, "200") {
		return nil, fmt.Errorf("failed to search variants : got '%s'", bracketString)
	}

	result := make(map[string]interface{})
	if umErr := json.Unmarshal([]byte(jsonBodyString), &result); umErr != nil {
		fmt.Printf("Error unmarshalling response: %s\n", umErr)
		return nil, umErr
	}

	// gather data from "hits"
	docsHits := result["hits"].(map[string]interface{})["hits"]
	allDocHits := []map[string]interface{}{}
	mapstructure.Decode(docsHits, &allDocHits)

	variants := make([]indexes.Variant, 0, len(allDocHits))
	for _, hit := range allDocHits {
		source := hit["_source"].(map[string]interface{})

		// cast map[string]interface{} to struct
		var variant indexes.Variant
		if decodeErr := mapstructure.Decode(source, &variant); decodeErr != nil {
			fmt.Printf("Error decoding variant hit: %s\n", decodeErr)
			continue
		}
		variants = append(variants, variant)
	}

	fmt.Printf("Query End: %s ; found %d variants\n", time.Now(), len(variants))

	return variants, nil
}

// CountVariants executes one dataset sub-query body as a count request.
func CountVariants(cfg *models.Config, es *elasticsearch.Client, ctx context.Context, body map[string]interface{}) (int, error) {

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.Printf("Error encoding query: %s\n", err)
		return 0, err
	}

	if cfg.Debug {
		fmt.Println(buf.String())
	}

	res, countErr := es.Count(
		es.Count.WithContext(ctx),
		es.Count.WithIndex(VariantsIndex),
		es.Count.WithBody(&buf),
		es.Count.WithPretty(),
	)
	if countErr != nil {
		fmt.Printf("Error getting response: %s\n", countErr)
		return 0, countErr
	}

	defer res.Body.Close()

	resultString := res.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	bracketString, jsonBodyString := utils.GetLeadingStringInBetweenSquareBrackets(resultString)
	if !strings.Contains(bracketString, "200") {
		return 0, fmt.Errorf("failed to count variants : got '%s'", bracketString)
	}

	jsonParsed, parseErr := gabs.ParseJSON([]byte(jsonBodyString))
	if parseErr != nil {
		fmt.Printf("Parsing error: %s\n", parseErr)
		return 0, parseErr
	}

	count, ok := jsonParsed.Path("count").Data().(float64)
	if !ok {
		return 0, fmt.Errorf("missing 'count' in count response")
	}

	return int(count), nil
}

// GetFilteringTerms aggregates the distinct ontology codes present in
// the stored annotation relation, with their document counts.
func GetFilteringTerms(cfg *models.Config, es *elasticsearch.Client, ctx context.Context) (map[string]int, error) {

	aggMap := map[string]interface{}{
		"size": 0,
		"aggs": map[string]interface{}{
			"annotations": map[string]interface{}{
				"nested": map[string]interface{}{
					"path": "annotations",
				},
				"aggs": map[string]interface{}{
					"codes": map[string]interface{}{
						"terms": map[string]interface{}{
							"field": "annotations.code.keyword",
							"size":  "10000", // increases the number of buckets returned (default is 10)
							"order": map[string]string{
								"_key": "asc",
							},
						},
					},
				},
			},
		},
	}

	// encode the query
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(aggMap); err != nil {
		log.Printf("Error encoding aggMap: %s\n", err)
		return nil, err
	}

	if cfg.Debug {
		fmt.Println(buf.String())
	}

	res, searchErr := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(VariantsIndex),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
		es.Search.WithPretty(),
	)
	if searchErr != nil {
		fmt.Printf("Error getting response: %s\n", searchErr)
		return nil, searchErr
	}

	defer res.Body.Close()

	resultString := res.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	bracketString, jsonBodyString := utils.GetLeadingStringInBetweenSquareBrackets(resultString)
	if !strings.Contains(bracketString, "200") {
		return nil, fmt.Errorf("failed to get filtering terms : got '%s'", bracketString)
	}

	jsonParsed, parseErr := gabs.ParseJSON([]byte(jsonBodyString))
	if parseErr != nil {
		fmt.Printf("Parsing error: %s\n", parseErr)
		return nil, parseErr
	}

	terms := map[string]int{}
	buckets, bucketsErr := jsonParsed.Path("aggregations.annotations.codes.buckets").Children()
	if bucketsErr != nil {
		// no annotations indexed yet
		return terms, nil
	}

	for _, bucket := range buckets {
		code, codeOk := bucket.Path("key").Data().(string)
		docCount, countOk := bucket.Path("doc_count").Data().(float64)
		if codeOk && countOk {
			terms[code] = int(docCount)
		}
	}

	return terms, nil
}

// EsVariantStore adapts the elasticsearch repository functions to the
// aggregator's read-only store surface.
type EsVariantStore struct {
	Config *models.Config
	Client *elasticsearch.Client
}

func (v *EsVariantStore) SearchVariants(ctx context.Context, query queryService.DatasetQuery) ([]indexes.Variant, error) {
	return SearchVariants(v.Config, v.Client, ctx, query.Body)
}

func (v *EsVariantStore) GetDatasets(ctx context.Context, ids []string) ([]indexes.Dataset, error) {
	return GetDatasets(v.Config, v.Client, ctx, ids)
}

func (v *EsVariantStore) GetFilteringTerms(ctx context.Context) (map[string]int, error) {
	return GetFilteringTerms(v.Config, v.Client, ctx)
}
