package utils

import "strings"

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// GetLeadingStringInBetweenSquareBrackets splits off a bracketed status
// marker ('[200 OK] {...}') that the elasticsearch client prepends to
// stringified responses, returning the marker and the remaining body.
// Strings not opening with '[' are returned empty : a bracket further
// in is part of the body, not a marker.
func GetLeadingStringInBetweenSquareBrackets(str string) (bracketString string, theRestString string) {
	if !strings.HasPrefix(str, "[") {
		return
	}

	closing := strings.Index(str, "]")
	if closing == -1 {
		return
	}

	bracketString = strings.TrimSpace(str[:closing+1])
	theRestString = strings.TrimSpace(str[closing+1:])
	return
}
