package combinator

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	Undefined constants.FilterCombinator = ""

	And constants.FilterCombinator = "and"
	Or  constants.FilterCombinator = "or"
)

func CastToFilterCombinator(text string) constants.FilterCombinator {
	switch strings.ToLower(text) {
	case "and":
		return And
	case "or":
		return Or
	default:
		return Undefined
	}
}

func IsKnownFilterCombinator(text string) bool {
	return CastToFilterCombinator(text) != Undefined
}
