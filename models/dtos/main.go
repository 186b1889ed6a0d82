package dtos

import (
	"beacon/api/models/constants"
	"beacon/api/models/indexes"
)

// ---- query request

type BeaconQueryRequest struct {
	AssemblyId string `json:"assemblyId" query:"assemblyId"`

	ReferenceName  string `json:"referenceName" query:"referenceName"`
	Start          int    `json:"start" query:"start"`
	End            int    `json:"end" query:"end"`
	ReferenceBases string `json:"referenceBases" query:"referenceBases"`
	AlternateBases string `json:"alternateBases" query:"alternateBases"`
	VariantType    string `json:"variantType" query:"variantType"`

	DatasetIds []string `json:"datasetIds"`
	Filters    []string `json:"filters"`

	IncludeDatasetResponses bool `json:"includeDatasetResponses"`
	IncludeSampleIds        bool `json:"includeSampleIds"`
}

// ---- query response envelope

type BeaconResponse struct {
	Meta  ResponseMeta  `json:"meta"`
	Value ResponseValue `json:"value"`
}

type ResponseMeta struct {
	BeaconId        string          `json:"beaconId"`
	ApiVersion      string          `json:"apiVersion"`
	QueryId         string          `json:"queryId"`
	ReceivedRequest ReceivedRequest `json:"receivedRequest"`
}

type ReceivedRequest struct {
	ApiVersion string             `json:"apiVersion"`
	Query      BeaconQueryRequest `json:"query"`
}

type ResponseValue struct {
	Exists bool         `json:"exists"`
	Error  *BeaconError `json:"error"`

	// global rollup across all visible datasets
	TotalVariantCount int `json:"totalVariantCount"`

	// per-dataset breakdown; omitted when includeDatasetResponses=false
	DatasetAlleleResponses []DatasetAlleleResponse `json:"datasetAlleleResponses,omitempty"`
}

type BeaconError struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
}

type DatasetAlleleResponse struct {
	Id     string `json:"id"`
	Exists bool   `json:"exists"`

	// counts at rest for the dataset
	DatasetVariantCount int `json:"datasetVariantCount"`

	// counts matched by this query
	VariantCount        int     `json:"variantCount"`
	CallCount           int     `json:"callCount"`
	SampleCount         int     `json:"sampleCount"`
	Frequency           float64 `json:"frequency"`
	MatchingSampleCount int     `json:"matchingSampleCount"`

	// populated at FULL granularity and above
	Variants []indexes.Variant `json:"variants,omitempty"`

	// populated at FULL_WITH_SAMPLES granularity only
	SampleIds []string `json:"sampleIds,omitempty"`

	Granularity constants.Granularity `json:"granularity"`

	// per-dataset failure marker; the rest of the response still proceeds
	Error *BeaconError `json:"error,omitempty"`
}

// ---- info / datasets

type BeaconInfoResponse struct {
	Id          string                `json:"id"`
	Name        string                `json:"name"`
	ApiVersion  string                `json:"apiVersion"`
	Description string                `json:"description"`
	WelcomeUrl  string                `json:"welcomeUrl"`
	Org         BeaconOrganization    `json:"organization"`
	Datasets    []DatasetInfoResponse `json:"datasets"`
}

type BeaconOrganization struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	WelcomeUrl string `json:"welcomeUrl"`
	ContactUrl string `json:"contactUrl"`
}

type DatasetInfoResponse struct {
	Id           string                 `json:"id"`
	Description  string                 `json:"description"`
	AssemblyId   string                 `json:"assemblyId"`
	VariantCount int                    `json:"variantCount"`
	CallCount    int                    `json:"callCount"`
	SampleCount  int                    `json:"sampleCount"`
	ConsentCodes []string               `json:"consentCodes,omitempty"`
	Info         map[string]interface{} `json:"info"`
}

// ---- filtering terms

type FilteringTermsResponse struct {
	Terms []FilteringTerm `json:"filteringTerms"`
}

type FilteringTerm struct {
	Code  string `json:"id"`
	Count int    `json:"count"`
}
