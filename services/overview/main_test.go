package overviewService_test

import (
	"testing"

	"beacon/api/models"
	"beacon/api/models/indexes"
	overviewService "beacon/api/services/overview"
	"beacon/api/tests/common"

	"github.com/stretchr/testify/assert"
)

func TestOverviewServiceSnapshot(t *testing.T) {
	store := &common.FakeVariantStore{
		Datasets: []indexes.Dataset{
			{Id: "dataset-b"},
			{Id: "dataset-a"},
		},
	}

	var cfg models.Config
	cfg.Overview.RefreshEveryMinutes = 60

	service := overviewService.NewOverviewService(store, &cfg)
	assert.True(t, service.Initialized)
	assert.False(t, service.LastRefreshed().IsZero())

	// snapshot is warmed at construction and ordered by stable id
	datasets := service.GetDatasets(nil)
	assert.Len(t, datasets, 2)
	assert.Equal(t, "dataset-a", datasets[0].Id)
	assert.Equal(t, "dataset-b", datasets[1].Id)

	// narrowing to requested ids; unknown ids are simply absent
	narrowed := service.GetDatasets([]string{"dataset-b", "dataset-zzz"})
	assert.Len(t, narrowed, 1)
	assert.Equal(t, "dataset-b", narrowed[0].Id)
}

func TestOverviewServiceRefreshPicksUpNewDatasets(t *testing.T) {
	store := &common.FakeVariantStore{
		Datasets: []indexes.Dataset{{Id: "dataset-a"}},
	}

	var cfg models.Config
	cfg.Overview.RefreshEveryMinutes = 60

	service := overviewService.NewOverviewService(store, &cfg)
	assert.Len(t, service.GetDatasets(nil), 1)

	// the store is append-only : newly loaded datasets appear on the
	// next refresh
	store.Datasets = append(store.Datasets, indexes.Dataset{Id: "dataset-b"})
	service.Refresh()
	assert.Len(t, service.GetDatasets(nil), 2)
}
