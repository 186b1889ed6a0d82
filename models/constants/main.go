package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the Beacon and it's
	associated services.
*/
type AccessType string
type Granularity string
type SearchOperation string
type FilterCombinator string

type AssemblyId string
type VariantType string
type SortDirection string
