package search

import (
	"beacon/api/models/constants"
)

const (
	SEARCH_OP_EQ constants.SearchOperation = "eq"
	SEARCH_OP_LT constants.SearchOperation = "lt"
	SEARCH_OP_LE constants.SearchOperation = "le"
	SEARCH_OP_GT constants.SearchOperation = "gt"
	SEARCH_OP_GE constants.SearchOperation = "ge"
)

// comparator symbols as they appear in filter-expression strings
var symbols = map[string]constants.SearchOperation{
	"=":  SEARCH_OP_EQ,
	"<":  SEARCH_OP_LT,
	"<=": SEARCH_OP_LE,
	">":  SEARCH_OP_GT,
	">=": SEARCH_OP_GE,
}

func CastSymbolToSearchOperation(symbol string) (constants.SearchOperation, bool) {
	op, ok := symbols[symbol]
	return op, ok
}

func SearchOperationToSymbol(op constants.SearchOperation) string {
	for symbol, candidate := range symbols {
		if candidate == op {
			return symbol
		}
	}
	return ""
}
