package search

import (
	"strings"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// ParseQuery splits raw on whitespace and separates the uppercase operator
// tokens AND, OR and NOT from the terms. Operators are consumed greedily left
// to right: an operator with no term on its left, one directly following
// another operator, or one with no term after it is dropped. Only operators
// that were written out appear in Operators; a gap without one is an implicit
// AND. ParseQuery never fails.
func ParseQuery(raw string) models.SearchQuery {
	terms, gaps := scanQuery(raw)

	query := models.SearchQuery{
		Terms:     terms,
		Operators: []models.Operator{},
		Filters:   map[string]string{},
	}
	for _, op := range gaps {
		if op != "" {
			query.Operators = append(query.Operators, op)
		}
	}
	return query
}

// scanQuery returns the terms and, for every gap between consecutive terms,
// the explicit operator written there or "" when there was none.
func scanQuery(raw string) ([]string, []models.Operator) {
	terms := []string{}
	gaps := []models.Operator{}

	var pending models.Operator
	for _, token := range strings.Fields(raw) {
		if op, ok := asOperator(token); ok {
			if len(terms) > 0 && pending == "" {
				pending = op
			}
			continue
		}

		if len(terms) > 0 {
			gaps = append(gaps, pending)
		}
		terms = append(terms, token)
		pending = ""
	}

	return terms, gaps
}

// IsValidQuery reports whether raw has balanced double quotes. The parser
// itself accepts anything; callers use this to flag input in the UI.
func IsValidQuery(raw string) bool {
	return strings.Count(raw, `"`)%2 == 0
}

func asOperator(token string) (models.Operator, bool) {
	switch token {
	case string(models.OperatorAnd):
		return models.OperatorAnd, true
	case string(models.OperatorOr):
		return models.OperatorOr, true
	case string(models.OperatorNot):
		return models.OperatorNot, true
	}
	return "", false
}
