package filters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	c "beacon/api/models/constants"
	"beacon/api/models/constants/combinator"
	"beacon/api/models/constants/search"
)

/*
	Filter-expression grammar:

		predicate  := term (combinator term)*
		term       := ontology-code [comparator value]
		comparator := "=" | ">=" | "<=" | ">" | "<"
		combinator := "and" | "or"   (case-insensitive, whitespace-delimited)

	Combinators bind left-associatively with equal precedence.
	A list of filter strings combines with logical AND across strings.
*/

// Expression is the parsed predicate tree: a tagged union of
// Term, And and Or nodes walked by a single evaluator.
type Expression interface {
	String() string

	expressionMarker()
}

type Term struct {
	Code string // e.g. "HP:0011007"

	// optional comparison against the annotation's numeric value
	Operation     c.SearchOperation
	Value         float64
	HasComparison bool
}

type And struct {
	Left  Expression
	Right Expression
}

type Or struct {
	Left  Expression
	Right Expression
}

func (t *Term) expressionMarker() {}
func (a *And) expressionMarker()  {}
func (o *Or) expressionMarker()   {}

func (t *Term) String() string {
	if !t.HasComparison {
		return t.Code
	}
	return fmt.Sprintf("%s%s%s", t.Code, search.SearchOperationToSymbol(t.Operation), strconv.FormatFloat(t.Value, 'f', -1, 64))
}

func (a *And) String() string {
	return fmt.Sprintf("%s and %s", a.Left.String(), a.Right.String())
}

func (o *Or) String() string {
	return fmt.Sprintf("%s or %s", o.Left.String(), o.Right.String())
}

// ParseError reports the offending substring of a malformed filter
// expression and the token class that was expected in its place.
type ParseError struct {
	Input     string
	Offending string
	Expected  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %q in filter %q - expected %s", e.Offending, e.Input, e.Expected)
}

var termPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*):([0-9]+)(?:(>=|<=|=|>|<)(-?[0-9]+(?:\.[0-9]+)?))?$`)

// Parse parses a single filter-expression string into a predicate tree.
func Parse(input string) (Expression, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil, &ParseError{Input: input, Offending: input, Expected: "ontology term"}
	}

	// predicate must open with a term
	var expr Expression
	first, err := parseTerm(input, tokens[0])
	if err != nil {
		return nil, err
	}
	expr = first

	i := 1
	for i < len(tokens) {
		// expect a combinator..
		comb := combinator.CastToFilterCombinator(tokens[i])
		if comb == combinator.Undefined {
			return nil, &ParseError{Input: input, Offending: tokens[i], Expected: "combinator ('and' or 'or')"}
		}
		i++

		// ..followed by another term
		if i >= len(tokens) {
			return nil, &ParseError{Input: input, Offending: tokens[i-1], Expected: "ontology term after combinator"}
		}
		right, termErr := parseTerm(input, tokens[i])
		if termErr != nil {
			return nil, termErr
		}
		i++

		// left-associative fold, 'and'/'or' at equal precedence
		if comb == combinator.And {
			expr = &And{Left: expr, Right: right}
		} else {
			expr = &Or{Left: expr, Right: right}
		}
	}

	return expr, nil
}

func parseTerm(input string, token string) (*Term, error) {
	groups := termPattern.FindStringSubmatch(token)
	if groups == nil {
		return nil, &ParseError{Input: input, Offending: token, Expected: "ontology term (PREFIX:DIGITS with optional comparator)"}
	}

	term := &Term{Code: fmt.Sprintf("%s:%s", groups[1], groups[2])}

	if groups[3] != "" {
		op, ok := search.CastSymbolToSearchOperation(groups[3])
		if !ok {
			return nil, &ParseError{Input: input, Offending: token, Expected: "comparator ('=', '>=', '<=', '>' or '<')"}
		}

		value, valueErr := strconv.ParseFloat(groups[4], 64)
		if valueErr != nil {
			return nil, &ParseError{Input: input, Offending: token, Expected: "numeric comparison value"}
		}

		term.Operation = op
		term.Value = value
		term.HasComparison = true
	}

	return term, nil
}

// ParseList parses every filter-expression string of a request,
// producing a mapping from each raw string to its predicate tree.
// The first malformed string fails the whole list.
func ParseList(inputs []string) (map[string]Expression, error) {
	parsed := make(map[string]Expression, len(inputs))
	for _, input := range inputs {
		expr, err := Parse(input)
		if err != nil {
			return nil, err
		}
		parsed[input] = expr
	}
	return parsed, nil
}

// Combine folds the per-string predicate trees into one tree with
// logical AND across strings, preserving the request's string order.
// An empty list yields nil : no filter constraint.
func Combine(ordered []string, parsed map[string]Expression) Expression {
	var combined Expression
	for _, input := range ordered {
		expr, ok := parsed[input]
		if !ok {
			continue
		}
		if combined == nil {
			combined = expr
		} else {
			combined = &And{Left: combined, Right: expr}
		}
	}
	return combined
}

// Evaluate walks the predicate tree with a single match callback
// deciding each leaf term. A nil expression matches everything.
func Evaluate(expr Expression, match func(term *Term) bool) bool {
	if expr == nil {
		return true
	}

	switch node := expr.(type) {
	case *Term:
		return match(node)
	case *And:
		return Evaluate(node.Left, match) && Evaluate(node.Right, match)
	case *Or:
		return Evaluate(node.Left, match) || Evaluate(node.Right, match)
	default:
		return false
	}
}

// MatchValue applies a term's comparison to an annotation's numeric
// value. Terms without a comparison match on code presence alone.
func (t *Term) MatchValue(value float64, hasValue bool) bool {
	if !t.HasComparison {
		return true
	}
	if !hasValue {
		return false
	}

	switch t.Operation {
	case search.SEARCH_OP_EQ:
		return value == t.Value
	case search.SEARCH_OP_LT:
		return value < t.Value
	case search.SEARCH_OP_LE:
		return value <= t.Value
	case search.SEARCH_OP_GT:
		return value > t.Value
	case search.SEARCH_OP_GE:
		return value >= t.Value
	default:
		return false
	}
}
