package accessService

import (
	"fmt"
	"os"

	"beacon/api/models"
	"beacon/api/models/authorization"
	c "beacon/api/models/constants"
	accessType "beacon/api/models/constants/access-type"
	g "beacon/api/models/constants/granularity"
	"beacon/api/models/indexes"

	yaml "gopkg.in/yaml.v2"
)

type (
	AccessService struct {
		isEnabled bool
		overrides accessLevelOverrides
	}

	// dataset id -> parent field -> field -> access level
	accessLevelOverrides struct {
		Datasets map[string]map[string]map[string]string `yaml:"datasets"`
	}

	DatasetVisibility struct {
		Dataset     indexes.Dataset
		Granularity c.Granularity
	}
)

func NewAccessService(cfg *models.Config) (*AccessService, error) {
	service := &AccessService{
		isEnabled: cfg.AuthX.IsAuthorizationEnabled,
	}

	// the override table is read once at process start, never per query
	if cfg.Beacon.AccessLevelsPath != "" {
		contents, readErr := os.ReadFile(cfg.Beacon.AccessLevelsPath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read access levels file %s : %w", cfg.Beacon.AccessLevelsPath, readErr)
		}
		if yamlErr := yaml.Unmarshal(contents, &service.overrides); yamlErr != nil {
			return nil, fmt.Errorf("failed to parse access levels file %s : %w", cfg.Beacon.AccessLevelsPath, yamlErr)
		}
	}

	return service, nil
}

func (a *AccessService) IsEnabled() bool {
	return a.isEnabled
}

// VisibleDatasets decides, for each requested dataset, whether it is
// visible to the caller at all and at which granularity. Datasets the
// caller may not see are omitted from the result entirely, never
// reported as errors, so their existence does not leak.
func (a *AccessService) VisibleDatasets(datasets []indexes.Dataset, auth authorization.AuthContext, includeSamples bool) []DatasetVisibility {
	visible := make([]DatasetVisibility, 0, len(datasets))

	for _, dataset := range datasets {
		decided := a.decideGranularity(dataset, auth, includeSamples)
		if decided == g.None {
			continue
		}
		visible = append(visible, DatasetVisibility{
			Dataset:     dataset,
			Granularity: decided,
		})
	}

	return visible
}

func (a *AccessService) decideGranularity(dataset indexes.Dataset, auth authorization.AuthContext, includeSamples bool) c.Granularity {
	// with authorization disabled every dataset is served in full
	if !a.isEnabled {
		return fullOrSamples(includeSamples)
	}

	switch dataset.AccessType {
	case accessType.Public:
		return fullOrSamples(includeSamples)

	case accessType.Registered:
		if auth.RegisteredAccess {
			return fullOrSamples(includeSamples)
		}
		// existence and aggregate counts only
		return g.Summary

	case accessType.Controlled:
		if auth.HasGrant(dataset.Id) {
			return fullOrSamples(includeSamples)
		}
		return g.None

	default:
		// unrecognized access type : treat as most restrictive
		return g.None
	}
}

func fullOrSamples(includeSamples bool) c.Granularity {
	if includeSamples {
		return g.FullWithSamples
	}
	return g.Full
}

// FieldGranularity clamps the dataset-level decision for one response
// field against the override table. The override table is authoritative:
// a "summary response only" override caps the field at SUMMARY even
// when the dataset-level decision was FULL.
func (a *AccessService) FieldGranularity(datasetId string, parentField string, field string, decided c.Granularity) c.Granularity {
	parents, ok := a.overrides.Datasets[datasetId]
	if !ok {
		return decided
	}
	fields, ok := parents[parentField]
	if !ok {
		return decided
	}
	override, ok := fields[field]
	if !ok {
		return decided
	}

	return g.Clamp(decided, g.CastToGranularity(override))
}
