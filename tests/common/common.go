package common

import (
	"context"
	"fmt"
	"os"
	"path"
	"runtime"
	"sort"
	"sync"
	"time"

	"beacon/api/models"
	assemblyId "beacon/api/models/constants/assembly-id"
	"beacon/api/models/filters"
	"beacon/api/models/indexes"
	queryService "beacon/api/services/query"

	yaml "gopkg.in/yaml.v2"
)

func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve common's test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

// FakeVariantStore is an in-memory variant store for tests. It
// evaluates the structured sub-query fields (region and predicate tree)
// directly against its seeded rows, the way the elasticsearch repository
// does against the index.
type FakeVariantStore struct {
	Datasets []indexes.Dataset
	Variants []indexes.Variant

	// dataset ids whose sub-queries fail unconditionally
	FailingDatasets map[string]bool

	// dataset ids whose sub-queries stall until the context expires
	SlowDatasets map[string]time.Duration

	// dataset ids whose sub-queries fail this many times, then recover
	TransientFailures map[string]int

	mux sync.Mutex
}

func (f *FakeVariantStore) SearchVariants(ctx context.Context, query queryService.DatasetQuery) ([]indexes.Variant, error) {
	if f.FailingDatasets[query.Dataset.Id] {
		return nil, fmt.Errorf("store unavailable for dataset %s", query.Dataset.Id)
	}

	if delay := f.SlowDatasets[query.Dataset.Id]; delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// sub-queries run concurrently across datasets
	f.mux.Lock()
	if remaining := f.TransientFailures[query.Dataset.Id]; remaining > 0 {
		f.TransientFailures[query.Dataset.Id] = remaining - 1
		f.mux.Unlock()
		return nil, fmt.Errorf("transient store failure for dataset %s", query.Dataset.Id)
	}
	f.mux.Unlock()

	matched := make([]indexes.Variant, 0)
	for _, variant := range f.Variants {
		if variant.Dataset != query.Dataset.Id {
			continue
		}
		if query.AssemblyId != assemblyId.Unknown && variant.AssemblyId != "" &&
			assemblyId.CastToAssemblyId(variant.AssemblyId) != query.AssemblyId {
			continue
		}
		if !regionMatches(query.Region, variant) {
			continue
		}
		if !filters.Evaluate(query.Filter, func(term *filters.Term) bool {
			return variantMatchesTerm(variant, term)
		}) {
			continue
		}
		matched = append(matched, variant)
	}

	return matched, nil
}

func (f *FakeVariantStore) GetDatasets(_ context.Context, ids []string) ([]indexes.Dataset, error) {
	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	datasets := make([]indexes.Dataset, 0, len(f.Datasets))
	for _, dataset := range f.Datasets {
		if len(ids) == 0 || requested[dataset.Id] {
			datasets = append(datasets, dataset)
		}
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].Id < datasets[j].Id
	})
	return datasets, nil
}

func (f *FakeVariantStore) GetFilteringTerms(_ context.Context) (map[string]int, error) {
	terms := make(map[string]int)
	for _, variant := range f.Variants {
		for _, annotation := range variant.Annotations {
			terms[annotation.Code]++
		}
	}
	return terms, nil
}

func regionMatches(region queryService.GenomicRegion, variant indexes.Variant) bool {
	if region.ReferenceName != "" && variant.Chrom != region.ReferenceName {
		return false
	}
	if region.ReferenceBases != "" && variant.Ref != region.ReferenceBases {
		return false
	}
	if region.AlternateBases != "" && variant.Alt != region.AlternateBases {
		return false
	}
	if region.VariantType != "" && variant.Type != region.VariantType {
		return false
	}
	// coordinate overlap, matching the range clauses of the es body
	if region.End > 0 && variant.Start > region.End {
		return false
	}
	if region.Start > 0 && variant.End < region.Start {
		return false
	}
	return true
}

func variantMatchesTerm(variant indexes.Variant, term *filters.Term) bool {
	for _, annotation := range variant.Annotations {
		if annotation.Code == term.Code && term.MatchValue(annotation.Value, annotation.HasValue) {
			return true
		}
	}
	return false
}
