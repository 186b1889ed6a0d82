package granularity

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	None            constants.Granularity = "NONE"
	Summary         constants.Granularity = "SUMMARY"
	Full            constants.Granularity = "FULL"
	FullWithSamples constants.Granularity = "FULL_WITH_SAMPLES"
)

// ordered from least to most detailed
var ranks = map[constants.Granularity]int{
	None:            0,
	Summary:         1,
	Full:            2,
	FullWithSamples: 3,
}

func CastToGranularity(text string) constants.Granularity {
	switch strings.ToUpper(text) {
	case "SUMMARY":
		return Summary
	case "FULL":
		return Full
	case "FULL_WITH_SAMPLES":
		return FullWithSamples
	default:
		return None
	}
}

func Rank(g constants.Granularity) int {
	return ranks[g]
}

// Clamp returns the least detailed of the two granularities
func Clamp(g constants.Granularity, ceiling constants.Granularity) constants.Granularity {
	if Rank(g) > Rank(ceiling) {
		return ceiling
	}
	return g
}
