package indexes

import (
	c "beacon/api/models/constants"
	"time"
)

// Dataset is the stored metadata record for one queryable dataset.
// Rows are created once by the external bulk loader and are read-only
// for the lifetime of the query engine.
type Dataset struct {
	Id              string       `json:"id"` // stable id
	Description     string       `json:"description"`
	AccessType      c.AccessType `json:"accessType"`
	ReferenceGenome string       `json:"referenceGenome"`

	// aggregate counts at rest
	VariantCount int `json:"variantCount"`
	CallCount    int `json:"callCount"`
	SampleCount  int `json:"sampleCount"`

	ConsentCodes []string `json:"consentCodes"`

	CreatedTime time.Time `json:"createdTime"`
}

// Variant is one stored variant row, uniquely identified by
// (dataset, chrom, start, variantId, ref, alt, type).
type Variant struct {
	Dataset string `json:"dataset"` // owning dataset stable id

	Chrom string `json:"chrom"`
	Start int    `json:"start"`
	End   int    `json:"end"`

	VariantId string        `json:"variantId"`
	Ref       string        `json:"ref"`
	Alt       string        `json:"alt"`
	Type      c.VariantType `json:"type"`
	SvLength  int           `json:"svLength"`

	VariantCount int     `json:"variantCount"`
	CallCount    int     `json:"callCount"`
	SampleCount  int     `json:"sampleCount"`
	Frequency    float64 `json:"frequency"`

	// ontology-coded phenotypic/experimental annotations
	Annotations []Annotation `json:"annotations"`

	// stable ids of samples carrying this variant
	SampleIds []string `json:"sampleIds"`

	AssemblyId  string    `json:"assemblyId"`
	CreatedTime time.Time `json:"createdTime"`
}

// Annotation is one ontology-coded term attached to a variant row,
// optionally carrying a numeric value (e.g. HP:0011007 -> 49).
type Annotation struct {
	Code     string  `json:"code"` // e.g. "HP:0011007"
	Value    float64 `json:"value"`
	HasValue bool    `json:"hasValue"`
}

var MAPPING_FIELDS_KEYWORD_IG256 = map[string]interface{}{
	"keyword": map[string]interface{}{
		"type":         "keyword",
		"ignore_above": 256,
	},
}
var MAPPING_TEXT = map[string]interface{}{"type": "text", "fields": MAPPING_FIELDS_KEYWORD_IG256}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_FLOAT64 = map[string]interface{}{"type": "double"}
var MAPPING_BOOL = map[string]interface{}{"type": "boolean"}
var MAPPING_DATE = map[string]interface{}{"type": "date"}

var VARIANT_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"dataset":   MAPPING_TEXT,
		"chrom":     MAPPING_TEXT,
		"start":     MAPPING_LONG,
		"end":       MAPPING_LONG,
		"variantId": MAPPING_TEXT,
		"ref":       MAPPING_TEXT,
		"alt":       MAPPING_TEXT,
		"type":      MAPPING_TEXT,
		"svLength":  MAPPING_LONG,
		"annotations": map[string]interface{}{
			"type": "nested",
			"properties": map[string]interface{}{
				"code":     MAPPING_TEXT,
				"value":    MAPPING_FLOAT64,
				"hasValue": MAPPING_BOOL,
			},
		},
		"sampleIds":    MAPPING_TEXT,
		"variantCount": MAPPING_LONG,
		"callCount":    MAPPING_LONG,
		"sampleCount":  MAPPING_LONG,
		"frequency":    MAPPING_FLOAT64,
		"assemblyId":   MAPPING_TEXT,
		"createdTime":  MAPPING_DATE,
	},
}

var DATASET_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"id":              MAPPING_TEXT,
		"description":     MAPPING_TEXT,
		"accessType":      MAPPING_TEXT,
		"referenceGenome": MAPPING_TEXT,
		"variantCount":    MAPPING_LONG,
		"callCount":       MAPPING_LONG,
		"sampleCount":     MAPPING_LONG,
		"consentCodes":    MAPPING_TEXT,
		"createdTime":     MAPPING_DATE,
	},
}
