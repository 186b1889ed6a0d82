package overviewService

import (
	"context"
	"fmt"
	"sync"
	"time"

	"beacon/api/models"
	"beacon/api/models/indexes"
	variantsService "beacon/api/services/variants"

	"github.com/go-co-op/gocron"
)

type (
	// OverviewService keeps a periodically refreshed snapshot of the
	// dataset metadata (aggregate counts at rest). The store itself is
	// append-only and populated by the external bulk loader, so a
	// scheduled refresh is enough to pick up newly loaded datasets.
	OverviewService struct {
		Initialized bool
		Store       variantsService.VariantStore
		Config      *models.Config

		mux           sync.RWMutex
		datasets      []indexes.Dataset
		lastRefreshed time.Time
	}
)

func NewOverviewService(store variantsService.VariantStore, cfg *models.Config) *OverviewService {
	service := &OverviewService{
		Initialized: false,
		Store:       store,
		Config:      cfg,
	}

	service.Init()

	return service
}

func (o *OverviewService) Init() {
	// initialization if necessary
	if !o.Initialized {
		// warm the snapshot once at boot
		o.Refresh()

		go func() {
			// setup cron job
			scheduler := gocron.NewScheduler(time.UTC)

			scheduler.Every(o.Config.Overview.RefreshEveryMinutes).Minutes().Do(func() {
				fmt.Printf("[%s] - Running dataset overview refresh..\n", time.Now())
				o.Refresh()
			})

			// starts the scheduler in blocking mode, which blocks
			// the current execution path
			scheduler.StartBlocking()
		}()

		o.Initialized = true
		fmt.Println("Overview Service Initialized ..")
	}
}

func (o *OverviewService) Refresh() {
	datasets, err := o.Store.GetDatasets(context.Background(), nil)
	if err != nil {
		fmt.Printf("[%s] - Error refreshing dataset overview : %v\n", time.Now(), err)
		return
	}

	o.mux.Lock()
	o.datasets = datasets
	o.lastRefreshed = time.Now()
	o.mux.Unlock()
}

// GetDatasets returns the cached dataset metadata snapshot, narrowed
// to the requested stable ids when any are given.
func (o *OverviewService) GetDatasets(requestedIds []string) []indexes.Dataset {
	o.mux.RLock()
	defer o.mux.RUnlock()

	if len(requestedIds) == 0 {
		snapshot := make([]indexes.Dataset, len(o.datasets))
		copy(snapshot, o.datasets)
		return snapshot
	}

	requested := make(map[string]bool, len(requestedIds))
	for _, id := range requestedIds {
		requested[id] = true
	}

	narrowed := make([]indexes.Dataset, 0, len(requestedIds))
	for _, dataset := range o.datasets {
		if requested[dataset.Id] {
			narrowed = append(narrowed, dataset)
		}
	}
	return narrowed
}

func (o *OverviewService) LastRefreshed() time.Time {
	o.mux.RLock()
	defer o.mux.RUnlock()
	return o.lastRefreshed
}
