package accessType

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	Unknown constants.AccessType = "UNKNOWN"

	Public     constants.AccessType = "PUBLIC"
	Registered constants.AccessType = "REGISTERED"
	Controlled constants.AccessType = "CONTROLLED"
)

func CastToAccessType(text string) constants.AccessType {
	switch strings.ToUpper(text) {
	case "PUBLIC":
		return Public
	case "REGISTERED":
		return Registered
	case "CONTROLLED":
		return Controlled
	default:
		return Unknown
	}
}

func IsKnownAccessType(text string) bool {
	return CastToAccessType(text) != Unknown
}
