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
	"beacon/api/models/indexes"
	"beacon/api/utils"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/mitchellh/mapstructure"
)

// GetDatasets fetches dataset metadata records, optionally narrowed to
// the given stable ids. An empty id list returns every dataset.
func GetDatasets(cfg *models.Config, es *elasticsearch.Client, ctx context.Context, ids []string) ([]indexes.Dataset, error) {

	// overall query structure
	query := map[string]interface{}{
		"size": 10000,
		"sort": map[string]string{
			"id.keyword": "asc",
		},
	}

	if len(ids) > 0 {
		query["query"] = map[string]interface{}{
			"terms": map[string]interface{}{
				"id.keyword": ids,
			},
		}
	} else {
		query["query"] = map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
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

	// Perform the search request.
	res, searchErr := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(DatasetsIndex),
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
		return nil, fmt.Errorf("failed to get datasets : got '%s'", bracketString)
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

	datasets := make([]indexes.Dataset, 0, len(allDocHits))
	for _, hit := range allDocHits {
		source := hit["_source"].(map[string]interface{})

		// cast map[string]interface{} to struct
		var dataset indexes.Dataset
		if decodeErr := mapstructure.Decode(source, &dataset); decodeErr != nil {
			fmt.Printf("Error decoding dataset hit: %s\n", decodeErr)
			continue
		}
		datasets = append(datasets, dataset)
	}

	fmt.Printf("[%s] - Found %d datasets\n", time.Now(), len(datasets))

	return datasets, nil
}
