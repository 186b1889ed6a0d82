package variantsService

import (
	"context"
	"fmt"
	"time"

	g "beacon/api/models/constants/granularity"
	"beacon/api/models/indexes"
	queryService "beacon/api/services/query"

	c "beacon/api/models/constants"

	. "github.com/ahmetb/go-linq"
	"github.com/cenkalti/backoff"
	"golang.org/x/sync/errgroup"
)

// VariantStore is the read-only query surface over the stored variant,
// dataset and sample-linkage records. The store is populated exclusively
// by the external bulk loader, never by the query path.
type VariantStore interface {
	SearchVariants(ctx context.Context, query queryService.DatasetQuery) ([]indexes.Variant, error)
	GetDatasets(ctx context.Context, ids []string) ([]indexes.Dataset, error)
	GetFilteringTerms(ctx context.Context) (map[string]int, error)
}

type (
	VariantService struct {
		Store           VariantStore
		SubQueryTimeout time.Duration
	}

	// DatasetAggregate is the per-dataset result of one executed
	// sub-query : aggregate counts plus optional record detail.
	DatasetAggregate struct {
		Dataset     indexes.Dataset
		Granularity c.Granularity

		Exists              bool
		VariantCount        int
		CallCount           int
		MatchingSampleCount int
		Frequency           float64

		// populated at FULL granularity and above
		Variants []indexes.Variant

		// populated at FULL_WITH_SAMPLES granularity only
		SampleIds []string

		// per-dataset failure marker (store failed after retry);
		// the rest of the response still proceeds
		Err error
	}
)

func NewVariantService(store VariantStore, subQueryTimeout time.Duration) *VariantService {
	return &VariantService{
		Store:           store,
		SubQueryTimeout: subQueryTimeout,
	}
}

// ExecuteQueryPlan fans the plan's independent dataset sub-queries out
// concurrently and fans their results back in. A slow or failing
// sub-query never aborts the whole request : its slot carries an error
// marker instead. Cancelling the parent context cancels all
// outstanding sub-queries.
func (v *VariantService) ExecuteQueryPlan(ctx context.Context, plan *queryService.QueryPlan) []DatasetAggregate {
	aggregates := make([]DatasetAggregate, len(plan.Queries))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, query := range plan.Queries {
		i, query := i, query

		group.Go(func() error {
			aggregates[i] = v.executeSubQuery(groupCtx, query)
			// partial-failure semantics : sub-query errors are
			// isolated per dataset, never propagated to the group
			return nil
		})
	}
	group.Wait()

	return aggregates
}

func (v *VariantService) executeSubQuery(ctx context.Context, query queryService.DatasetQuery) DatasetAggregate {
	aggregate := DatasetAggregate{
		Dataset:     query.Dataset,
		Granularity: query.Granularity,
	}

	subCtx, cancel := context.WithTimeout(ctx, v.SubQueryTimeout)
	defer cancel()

	// retry the sub-query once with backoff before marking the
	// dataset as failed
	var matched []indexes.Variant
	searchOperation := func() error {
		var searchErr error
		matched, searchErr = v.Store.SearchVariants(subCtx, query)
		return searchErr
	}
	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), subCtx)

	if searchErr := backoff.Retry(searchOperation, retryPolicy); searchErr != nil {
		fmt.Printf("[%s] - Sub-query for dataset %s failed : %v\n", time.Now(), query.Dataset.Id, searchErr)
		aggregate.Err = searchErr
		return aggregate
	}

	aggregate.Exists = len(matched) > 0
	aggregate.VariantCount = len(matched)

	// resolve matching samples via the variant<->sample linkage,
	// counting each sample once even if linked redundantly
	allSampleIds := make([]string, 0)
	for _, variant := range matched {
		aggregate.CallCount += variant.CallCount
		allSampleIds = append(allSampleIds, variant.SampleIds...)
	}

	distinctSampleIds := make([]string, 0)
	From(allSampleIds).
		Distinct().
		OrderBy(func(id interface{}) interface{} { return id }).
		ToSlice(&distinctSampleIds)

	aggregate.MatchingSampleCount = len(distinctSampleIds)

	// frequency is recomputed per query from the dataset's total
	// sample count, never cached across differing filter sets
	if query.Dataset.SampleCount > 0 {
		aggregate.Frequency = float64(aggregate.MatchingSampleCount) / float64(query.Dataset.SampleCount)
	}

	// redact record detail the caller's granularity does not allow,
	// regardless of what the sub-query computed internally
	if g.Rank(query.Granularity) >= g.Rank(g.Full) {
		aggregate.Variants = matched
	}
	if g.Rank(query.Granularity) >= g.Rank(g.FullWithSamples) {
		aggregate.SampleIds = distinctSampleIds
	}

	return aggregate
}
