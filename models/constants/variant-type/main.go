package variantType

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	Unspecified constants.VariantType = ""

	SNP constants.VariantType = "SNP"
	MNP constants.VariantType = "MNP"
	INS constants.VariantType = "INS"
	DEL constants.VariantType = "DEL"
	DUP constants.VariantType = "DUP"
	INV constants.VariantType = "INV"
	SV  constants.VariantType = "SV"
)

func CastToVariantType(text string) constants.VariantType {
	switch strings.ToUpper(text) {
	case "SNP":
		return SNP
	case "MNP":
		return MNP
	case "INS":
		return INS
	case "DEL":
		return DEL
	case "DUP":
		return DUP
	case "INV":
		return INV
	case "SV":
		return SV
	default:
		return Unspecified
	}
}
